package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/receiver"
)

var (
	receiveAddr string
	receiveKeep int
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Run a local endpoint that accepts relayed items",
	Long: `Serve the v1 and v2 item APIs so a relay can be tested end to end.

Accepted items are printed and kept in memory. Payloads are checked the
way an archive server checks them: v1 hashes must match the data, every
payload must unpack, and repeated times or hashes are answered with 409.

Routes:
  GET  /api/v1/ping
  GET  /api/v1/version
  POST /api/v1/ClipboardItem
  GET  /api/v1/ClipboardItem
  GET  /api/v1/ClipboardItem/count
  GET  /api/v1/ClipboardItem/{time}
  POST /api/v2/Item
  POST /api/v2/Item{time}
  GET  /api/v2/Item
  GET  /api/v2/Item/count
  GET  /api/v2/Item/{time}`,
	Args: cobra.NoArgs,
	RunE: runReceive,
}

func init() {
	receiveCmd.Flags().StringVarP(&receiveAddr, "addr", "a", "127.0.0.1:8080", "listen address")
	receiveCmd.Flags().IntVar(&receiveKeep, "keep", receiver.DefaultKeep, "number of items kept in memory")
	rootCmd.AddCommand(receiveCmd)
}

func runReceive(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Packer == nil {
		return errors.New("item packer not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := receiver.New(s.Packer, receiveKeep).WithVersion(version)
	out := cmd.OutOrStdout()
	r.OnItem(func(rec receiver.Record) {
		fmt.Fprintln(out, recordLine(rec))
	})

	cmd.Printf("Receiving on http://%s\n", receiveAddr)
	return r.Run(ctx, receiveAddr)
}

func recordLine(rec receiver.Record) string {
	t := "-"
	if rec.Time != nil {
		t = fmt.Sprintf("%d", *rec.Time)
	}
	text := rec.Item.Text()
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return fmt.Sprintf("%s  %-10s  time=%s  formats=%d  %d B  %q",
		rec.ReceivedAt.Local().Format("15:04:05"), rec.Schema, t, rec.Item.Len(), rec.Bytes, text)
}
