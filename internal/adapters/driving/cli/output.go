package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// interactiveOutput is true when the command writes to a terminal.
func interactiveOutput(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}

func printOutcome(cmd *cobra.Command, o domain.Outcome) {
	cmd.Printf("%s %s (%s)\n", o.Status, o.Reason, o.Schema)
	if o.URL != "" {
		cmd.Printf("  URL:      %s\n", o.URL)
	}
	if o.StatusCode != 0 {
		cmd.Printf("  HTTP:     %d\n", o.StatusCode)
	}
	cmd.Printf("  Item:     %d bytes\n", o.ItemBytes)
	if o.PayloadBytes > 0 {
		cmd.Printf("  Payload:  %d bytes\n", o.PayloadBytes)
	}
	if o.Hash != "" {
		cmd.Printf("  Hash:     %s\n", o.Hash)
	}
	if o.Error != "" {
		cmd.Printf("  Error:    %s\n", o.Error)
	}
	cmd.Printf("  ID:       %s\n", o.ID)
	cmd.Printf("  Duration: %s\n", o.Duration.Round(time.Millisecond))
}

func outcomeLine(o domain.Outcome) string {
	line := fmt.Sprintf("%s  %-7s  %-10s  %-10s  %7d B",
		o.StartedAt.Local().Format("2006-01-02 15:04:05"), o.Status, o.Reason, o.Schema, o.ItemBytes)
	if o.Error != "" {
		line += "  " + o.Error
	}
	return line
}

func printStats(w io.Writer, s domain.DeliveryStats) {
	fmt.Fprintf(w, "Sent: %d  Skipped: %d  Failed: %d  Total: %d\n", s.Sent, s.Skipped, s.Failed, s.Total())
	if s.LastError != "" {
		fmt.Fprintf(w, "Last failure: %s (%s)\n", s.LastError, s.LastFailure.Local().Format(time.RFC3339))
	}
}
