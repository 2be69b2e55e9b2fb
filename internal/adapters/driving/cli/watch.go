package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/trigger"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Relay every clipboard change until interrupted",
	Long: `Watch for clipboard changes and relay each new item in the background.

The trigger is chosen by the watch.mode setting:
  poll   - read the system clipboard every watch.interval_ms
  spool  - pick up .cbor and .json item files dropped into watch.spool_dir

Items are queued and sent one at a time. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return watchLoop(ctx, s, func(o domain.Outcome) {
		fmt.Fprintln(out, outcomeLine(o))
	})
}

// runner is a trigger that feeds a sink until ctx ends.
type runner interface {
	Run(ctx context.Context) error
}

// newTrigger builds the trigger selected by settings.
func newTrigger(settings *domain.AppSettings, s *Services, sink trigger.Sink) (runner, error) {
	switch settings.Watch.Mode {
	case domain.WatchSpool:
		return trigger.NewSpoolWatcher(settings.Watch.SpoolDir, s.Packer, sink), nil
	case domain.WatchPoll, "":
		if s.Clipboard == nil {
			return nil, domain.ErrClipboardUnavailable
		}
		return trigger.NewPoller(s.Clipboard, settings.Watch.Interval, sink), nil
	default:
		return nil, fmt.Errorf("%w: watch mode %q", domain.ErrInvalidInput, settings.Watch.Mode)
	}
}

// watchLoop runs a dispatcher and the configured trigger until ctx ends.
// onOutcome is called from the dispatcher goroutine.
func watchLoop(ctx context.Context, s *Services, onOutcome func(domain.Outcome)) error {
	w, err := startWatching(ctx, s, onOutcome)
	if err != nil {
		return err
	}
	return w.wait()
}

// watching is a dispatcher and trigger running in the background.
type watching struct {
	dispatcher driving.Dispatcher
	done       chan error
}

// Pending returns the number of queued items.
func (w *watching) Pending() int {
	return w.dispatcher.Pending()
}

// wait blocks until the trigger exits, then stops the dispatcher.
func (w *watching) wait() error {
	err := <-w.done
	if stopErr := w.dispatcher.Stop(); stopErr != nil {
		logger.Warn("watch: stopping dispatcher: %v", stopErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func startWatching(ctx context.Context, s *Services, onOutcome func(domain.Outcome)) (*watching, error) {
	if s.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	if s.NewDispatcher == nil {
		return nil, errors.New("dispatcher not configured")
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	dispatcher := s.NewDispatcher(onOutcome)
	trig, err := newTrigger(settings, s, trigger.SubmitTo(dispatcher))
	if err != nil {
		return nil, err
	}

	go func() {
		if err := dispatcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watch: dispatcher stopped: %v", err)
		}
	}()

	w := &watching{dispatcher: dispatcher, done: make(chan error, 1)}
	go func() {
		logger.Info("watch: %s mode, relaying to %s (%s)",
			settings.Watch.Mode, settings.Endpoint.URL(""), settings.Endpoint.Schema)
		w.done <- trig.Run(ctx)
	}()
	return w, nil
}
