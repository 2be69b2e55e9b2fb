package logger

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("queued %s", "item")

	if buf.String() != "[DEBUG] queued item\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestQuietLevels_WhenNotVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("debug")
	Info("info")
	Warn("warn")
	Section("section")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Relay")

	if buf.String() != "\n=== Relay ===\n" {
		t.Errorf("unexpected section output: %q", buf.String())
	}
}

func TestInfoAndWarn(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("sent %d bytes", 42)
	Warn("missing timestamp")

	want := "[INFO] sent 42 bytes\n[WARN] missing timestamp\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("upload failed: %v", "connection refused")

	if buf.String() != "[ERROR] upload failed: connection refused\n" {
		t.Errorf("unexpected error output: %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		kv   []any
		want string
	}{
		{"empty", nil, ""},
		{"plain", []any{"outcome", "sent", "bytes", 10}, "outcome=sent bytes=10"},
		{"quoted", []any{"reason", "size limit exceeded"}, `reason="size limit exceeded"`},
		{"empty value", []any{"error", ""}, `error=""`},
		{"dangling key", []any{"id"}, "id="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fields(tt.kv...); got != tt.want {
				t.Errorf("Fields() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer resetLogger()

	SetOutput(io.Discard)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			Error("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
