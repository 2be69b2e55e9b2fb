package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Watch the clipboard with a live delivery monitor",
	Long: `Relay clipboard changes like 'watch' while showing each outcome in a
terminal monitor.

Controls:
  ↑/k, ↓/j - Navigate outcomes
  Enter    - Outcome details
  p        - Pause the live list
  c        - Clear the list
  r        - Reload history
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the monitor runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.History == nil {
		return errors.New("history service not configured")
	}
	if !isTerminal(os.Stdout) {
		return errors.New("tui requires a terminal, use 'cliprelay watch' instead")
	}

	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ports := &tui.Ports{History: s.History}
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	w, err := startWatching(ctx, s, app.Notify)
	if err != nil {
		return err
	}
	ports.Dispatcher = w.dispatcher

	runErr := app.Run()
	cancel()
	if err := w.wait(); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// redirectLogs sends log output to path, or discards it when path is
// empty, so the monitor screen is not overwritten.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close() //nolint:errcheck
	}, nil
}
