package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

const (
	// historyLimit is the number of recorded outcomes loaded on start.
	historyLimit = 200

	// eventBuffer is the number of outcomes held while the UI is busy.
	eventBuffer = 64

	tickInterval = time.Second
)

// App is the monitor application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	list *list.OutcomeList
	bar  *status.Bar

	// events receives outcomes from the dispatcher goroutine.
	events chan domain.Outcome

	stats       domain.DeliveryStats
	paused      bool
	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new monitor with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrMissingHistoryService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		list:        list.NewOutcomeList(s),
		bar:         status.NewBar(s, km),
		events:      make(chan domain.Outcome, eventBuffer),
		currentView: messages.ViewMonitor,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Notify reports an outcome to the monitor. It never blocks; when the
// buffer is full the outcome is dropped from the live view only.
// Safe to call from any goroutine.
func (a *App) Notify(o domain.Outcome) {
	select {
	case a.events <- o:
	default:
		logger.Debug("tui: monitor busy, outcome %s not shown", o.ID)
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cliprelay"),
		a.loadHistory(),
		a.waitForOutcome(),
		tick(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.list.SetDimensions(msg.Width, msg.Height-4)
		a.bar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.OutcomeReceived:
		a.stats.Add(msg.Outcome)
		a.bar.SetStats(a.stats)
		if !a.paused {
			a.list.Prepend(msg.Outcome)
		}
		return a, a.waitForOutcome()

	case messages.HistoryLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.list.SetOutcomes(msg.Outcomes)
		a.stats = msg.Stats
		a.bar.SetStats(a.stats)
		return a, nil

	case messages.Tick:
		if a.ports.Dispatcher != nil {
			a.bar.SetPending(a.ports.Dispatcher.Pending())
		}
		return a, tick()

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return tea.Quit
	}

	switch a.currentView {
	case messages.ViewDetail, messages.ViewHelp:
		switch {
		case keymap.Matches(keyStr, a.keymap.Back):
			a.setView(messages.ViewMonitor)
		case keymap.Matches(keyStr, a.keymap.Quit):
			return tea.Quit
		}
		return nil

	case messages.ViewMonitor:
		switch {
		case keymap.Matches(keyStr, a.keymap.Quit):
			return tea.Quit
		case keymap.Matches(keyStr, a.keymap.Help):
			a.setView(messages.ViewHelp)
		case keymap.Matches(keyStr, a.keymap.Details):
			if a.list.SelectedOutcome() != nil {
				a.setView(messages.ViewDetail)
			}
		case keymap.Matches(keyStr, a.keymap.Pause):
			a.paused = !a.paused
			a.restoreState()
		case keymap.Matches(keyStr, a.keymap.Clear):
			a.list.Clear()
		case keymap.Matches(keyStr, a.keymap.Reload):
			a.err = nil
			a.restoreState()
			return a.loadHistory()
		default:
			a.list, _ = a.list.Update(msg)
		}
	}
	return nil
}

func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	a.restoreState()
}

func (a *App) setError(err error) {
	a.err = err
	a.bar.SetState(status.StateError)
	a.bar.SetMessage(err.Error())
}

// restoreState derives the status bar state from the view and pause flag.
func (a *App) restoreState() {
	switch {
	case a.err != nil:
		return
	case a.currentView == messages.ViewDetail:
		a.bar.SetState(status.StateDetail)
	case a.paused:
		a.bar.SetState(status.StatePaused)
	default:
		a.bar.SetState(status.StateWatching)
	}
	a.bar.SetMessage("")
}

func (a *App) loadHistory() tea.Cmd {
	history := a.ports.History
	ctx := a.ctx
	return func() tea.Msg {
		outcomes, err := history.Recent(ctx, historyLimit)
		if err != nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("loading history: %w", err)}
		}
		stats, err := history.Stats(ctx)
		if err != nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("loading stats: %w", err)}
		}
		return messages.HistoryLoaded{Outcomes: outcomes, Stats: stats}
	}
}

// waitForOutcome blocks on the event channel; it is re-armed after each outcome.
func (a *App) waitForOutcome() tea.Cmd {
	events := a.events
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case o := <-events:
			return messages.OutcomeReceived{Outcome: o}
		case <-ctx.Done():
			return messages.Quit{}
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return messages.Tick{}
	})
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDetail:
		body = a.viewDetail()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.list.View()
	}

	header := a.styles.Title.Render("cliprelay") + "  " + a.styles.Muted.Render("live deliveries")
	return header + "\n\n" + body + "\n\n" + a.bar.View()
}

func (a *App) viewDetail() string {
	o := a.list.SelectedOutcome()
	if o == nil {
		return a.styles.Muted.Render("No outcome selected")
	}

	rows := [][2]string{
		{"ID", o.ID},
		{"Status", a.styles.ForStatus(o.Status).Render(o.Status.String())},
		{"Reason", o.Reason},
		{"Schema", o.Schema.String()},
		{"URL", o.URL},
		{"Item bytes", fmt.Sprintf("%d", o.ItemBytes)},
		{"Payload bytes", fmt.Sprintf("%d", o.PayloadBytes)},
	}
	if o.StatusCode != 0 {
		rows = append(rows, [2]string{"HTTP status", fmt.Sprintf("%d", o.StatusCode)})
	}
	if o.Hash != "" {
		rows = append(rows, [2]string{"Hash", o.Hash})
	}
	if !o.StartedAt.IsZero() {
		rows = append(rows, [2]string{"Started", o.StartedAt.Local().Format(time.RFC3339)})
	}
	rows = append(rows, [2]string{"Duration", o.Duration.String()})
	if o.Error != "" {
		rows = append(rows, [2]string{"Error", a.styles.Error.Render(o.Error)})
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, a.styles.Label.Render(r[0])+r[1])
	}
	return a.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render("Keys") + "\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Paused reports whether the live list is frozen.
func (a *App) Paused() bool {
	return a.paused
}

// Stats returns the counters shown in the status bar.
func (a *App) Stats() domain.DeliveryStats {
	return a.stats
}

// Outcomes returns the outcomes in the live list.
func (a *App) Outcomes() []domain.Outcome {
	return a.list.Outcomes()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
