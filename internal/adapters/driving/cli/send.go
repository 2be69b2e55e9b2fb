package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

var (
	sendText      string
	sendTime      int64
	sendFormats   []string
	sendStdin     string
	sendClipboard bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Relay one clipboard item now",
	Long: `Build a clipboard item from flags and relay it synchronously.

Formats can be combined. The item is skipped when its summed size reaches
the configured threshold, otherwise it is packed, wrapped in the active
schema's envelope and posted once.

Exit status is 0 when the item was skipped or delivered and 1 when
encoding, the network or the endpoint failed. An HTTP 409 answer counts
as delivered (reason "duplicate"): the endpoint already holds that hash
or time, so the command exits 0 although the status is not 2xx.

Examples:
  cliprelay send --text "hello"
  cliprelay send --text "hello" --time 1712345678901
  cliprelay send --format image/png=shot.png --format text/plain=caption.txt
  pbpaste | cliprelay send --stdin text/plain
  cliprelay send --clipboard`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendText, "text", "t", "", "plain text to send")
	sendCmd.Flags().Int64Var(&sendTime, "time", 0, "user copy time in unix milliseconds")
	sendCmd.Flags().StringArrayVarP(&sendFormats, "format", "f", nil, "add a format from a file as mime=path")
	sendCmd.Flags().StringVar(&sendStdin, "stdin", "", "read a format from stdin under this mime type")
	sendCmd.Flags().BoolVar(&sendClipboard, "clipboard", false, "start from the current system clipboard")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Relay == nil {
		return errors.New("relay service not configured")
	}

	item, err := buildSendItem(cmd, s)
	if err != nil {
		return err
	}

	out := s.Relay.Process(cmd.Context(), item)
	printOutcome(cmd, out)
	if !out.Succeeded() {
		return fmt.Errorf("relay failed: %s", out.Reason)
	}
	return nil
}

// buildSendItem assembles the item from the send flags.
func buildSendItem(cmd *cobra.Command, s *Services) (*domain.ClipboardItem, error) {
	formats := make(map[domain.Format][]byte)

	if sendClipboard {
		if s.Clipboard == nil {
			return nil, domain.ErrClipboardUnavailable
		}
		current, err := s.Clipboard.CurrentItem(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("reading clipboard: %w", err)
		}
		for _, f := range current.Formats() {
			formats[f] = current.Data(f)
		}
	}

	for _, spec := range sendFormats {
		mime, path, ok := strings.Cut(spec, "=")
		if !ok || mime == "" || path == "" {
			return nil, fmt.Errorf("%w: format %q must be mime=path", domain.ErrInvalidInput, spec)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		formats[domain.Format(mime)] = data
	}

	if sendStdin != "" {
		if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
			cmd.PrintErrln("Reading from stdin, end with Ctrl-D")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		formats[domain.Format(sendStdin)] = data
	}

	if cmd.Flags().Changed("text") {
		formats[domain.FormatText] = []byte(sendText)
	}

	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: nothing to send, use --text, --format, --stdin or --clipboard", domain.ErrInvalidInput)
	}

	item := domain.NewClipboardItem(formats)
	if sendTime != 0 {
		item = item.With(domain.FormatUserCopyTime, []byte(strconv.FormatInt(sendTime, 10)))
	}
	return item, nil
}
