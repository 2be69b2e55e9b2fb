package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent relay outcomes",
	Long: `List recorded outcomes, most recent first, followed by totals.

Outcomes hold metadata only: status, reason, schema, sizes and hash.
Clipboard contents are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of outcomes to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

// outcomeJSON is the JSON form of an outcome.
type outcomeJSON struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
	Schema       string `json:"schema"`
	URL          string `json:"url,omitempty"`
	ItemBytes    int    `json:"item_bytes"`
	PayloadBytes int    `json:"payload_bytes"`
	StatusCode   int    `json:"status_code,omitempty"`
	Hash         string `json:"hash,omitempty"`
	Error        string `json:"error,omitempty"`
	StartedAt    string `json:"started_at"`
	DurationMs   int64  `json:"duration_ms"`
}

type historyJSONOutput struct {
	Outcomes []outcomeJSON `json:"outcomes"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
}

func toOutcomeJSON(o domain.Outcome) outcomeJSON {
	return outcomeJSON{
		ID:           o.ID,
		Status:       o.Status.String(),
		Reason:       o.Reason,
		Schema:       o.Schema.String(),
		URL:          o.URL,
		ItemBytes:    o.ItemBytes,
		PayloadBytes: o.PayloadBytes,
		StatusCode:   o.StatusCode,
		Hash:         o.Hash,
		Error:        o.Error,
		StartedAt:    o.StartedAt.UTC().Format(time.RFC3339Nano),
		DurationMs:   o.Duration.Milliseconds(),
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.History == nil {
		return errors.New("history service not configured")
	}
	if historyLimit <= 0 {
		return fmt.Errorf("%w: --limit must be positive", domain.ErrInvalidInput)
	}

	outcomes, err := s.History.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	stats, err := s.History.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	if historyJSON {
		out := historyJSONOutput{
			Outcomes: make([]outcomeJSON, 0, len(outcomes)),
			Sent:     stats.Sent,
			Skipped:  stats.Skipped,
			Failed:   stats.Failed,
		}
		for _, o := range outcomes {
			out.Outcomes = append(out.Outcomes, toOutcomeJSON(o))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(outcomes) == 0 {
		cmd.Println("No outcomes recorded.")
	} else {
		if interactiveOutput(cmd) {
			cmd.Printf("%-19s  %-7s  %-10s  %-10s  %9s\n", "TIME", "STATUS", "REASON", "SCHEMA", "SIZE")
		}
		for _, o := range outcomes {
			cmd.Println(outcomeLine(o))
		}
	}
	cmd.Println()
	printStats(cmd.OutOrStdout(), stats)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.History == nil {
		return errors.New("history service not configured")
	}

	o, err := s.History.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("outcome %s: %w", args[0], err)
	}
	printOutcome(cmd, *o)
	return nil
}
