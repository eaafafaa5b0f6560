// Package tui provides the terminal user interface for resched.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/resched/internal/config"
	"github.com/javiermolinar/resched/internal/debuglog"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
	"github.com/javiermolinar/resched/internal/tui/commands"
	"github.com/javiermolinar/resched/internal/tui/theme"
	"github.com/javiermolinar/resched/internal/watch"
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	config   *config.Config
	provider event.Provider
	sched    *scheduler.Scheduler
	fetch    *fetcher

	// Theme and styles
	styles *Styles

	// Components
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Cursor: focused cell index into sched.Cells() and slot row inside it
	focus  int
	row    int
	offset int

	// Overlays
	detail   *scheduler.PositionedEvent
	showHelp bool

	loading bool

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusWarn bool
	statusTime time.Time

	now        func() time.Time
	changes    <-chan string
	configPath string
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow sets the clock used for today and status expiry.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithChanges feeds file change notifications into the model. Changes of
// configPath reload the configuration; anything else reloads the events.
func WithChanges(changes <-chan string, configPath string) ModelOption {
	return func(m *Model) {
		m.changes = changes
		m.configPath = configPath
	}
}

// New creates a new TUI model. Events are requested from provider whenever
// the visible range changes.
func New(provider event.Provider, cfg *config.Config, opts ...ModelOption) *Model {
	m := &Model{
		config:   cfg,
		provider: provider,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.styles = loadStyles(cfg.UI.Theme)
	m.spinner.Style = m.styles.InfoStyle
	m.fetch = newFetcher(provider)

	m.sched = scheduler.New(cfg.SchedulerOptions(time.Time{}),
		scheduler.WithLogger(debuglog.L()),
		scheduler.WithNow(m.now),
	)
	m.sched.SetResources(cfg.EventResources())
	m.sched.OnRangeChange(m.fetch.collect)
	m.sched.OnStartDateChange(func(sc scheduler.StartDateChange) {
		debuglog.Range("start_date", sc.StartDate.Format(time.DateOnly))
	})
	m.sched.OnSlotClick(func(sc scheduler.SlotClick) {
		l := debuglog.L()
		l.Debug().Str("event", "slot_click").
			Str("resource", sc.ResourceID).Time("instant", sc.Instant).Send()
	})
	m.sched.OnEventClick(func(ec scheduler.EventClick) {
		l := debuglog.L()
		l.Debug().Str("event", "event_click").Str("id", ec.Event.ID).Send()
	})
	m.sched.Recompute()
	m.loading = len(m.fetch.queued) > 0
	m.focusNow()

	return m
}

func loadStyles(name string) *Styles {
	t, err := theme.Load(name)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	return NewStyles(t)
}

// Init starts the first events request.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.WaitForChange(m.changes)}
	if cmd := m.fetch.flush(); cmd != nil {
		cmds = append(cmds, cmd, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI against provider.
func Run(provider event.Provider, cfg *config.Config, opts ...ModelOption) error {
	model := New(provider, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.fetch.stop()
	return err
}

// RunWithDebug opens the configured provider, watches the config and store
// files, and starts the TUI with optional debug logging.
func RunWithDebug(cfg *config.Config, configPath string, debug bool) error {
	if err := debuglog.Init(debug, debuglog.DefaultPath); err != nil {
		return err
	}
	defer debuglog.Close()

	if _, err := ensureConfig(cfg, configPath); err != nil {
		return err
	}

	provider, closeProvider, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeProvider() }()

	changes := make(chan string, 8)
	fw, err := watch.New(func(path string) {
		select {
		case changes <- path:
		default:
		}
	}, watch.DefaultDebounce, debuglog.L())
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	paths := []string{configPath}
	if !cfg.UI.Demo {
		paths = append(paths, cfg.Storage.DBPath)
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := fw.Add(path); err != nil {
			debuglog.Error("watch", err)
		}
	}

	return Run(provider, cfg, WithChanges(changes, configPath))
}

// focusedCell returns the cell under the cursor.
func (m Model) focusedCell() (grid.Cell, bool) {
	cells := m.sched.Cells()
	if m.focus < 0 || m.focus >= len(cells) {
		return grid.Cell{}, false
	}
	return cells[m.focus], true
}

// focusNow moves the cursor to the first cell of today and the current slot.
func (m *Model) focusNow() {
	now := m.now()
	for i, c := range m.sched.Cells() {
		if !m.sched.IsToday(c.Day) {
			continue
		}
		m.focus = i
		w := m.sched.Window(c.Day)
		if w.Contains(now) {
			m.row = int(now.Sub(w.Start).Minutes()) / m.sched.SlotMinutes()
		}
		break
	}
	m.clampCursor()
}

// focusCell moves the focus to the cell with key, if visible.
func (m *Model) focusCell(key string) {
	for i, c := range m.sched.Cells() {
		if c.Key() == key {
			m.focus = i
			return
		}
	}
}

func (m *Model) moveFocus(delta int) {
	n := len(m.sched.Cells())
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

func (m *Model) moveRow(delta int) {
	m.row += delta
	m.clampCursor()
}

// clampCursor keeps focus and row inside the grid and the row on screen.
func (m *Model) clampCursor() {
	if n := len(m.sched.Cells()); m.focus >= n {
		m.focus = max(0, n-1)
	}
	_, rows := timelineRows(m.sched.Timeline())
	m.row = max(0, min(m.row, rows-1))

	h := m.gridHeight()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+h {
		m.offset = m.row - h + 1
	}
	m.offset = max(0, min(m.offset, rows-h))
}

// gridHeight is the number of grid rows that fit the terminal.
func (m Model) gridHeight() int {
	if m.height <= 0 {
		_, rows := timelineRows(m.sched.Timeline())
		return max(1, rows)
	}
	return max(1, m.height-titleHeight-headerHeight-footerHeight)
}

func (m Model) resourceTitle(id string) string {
	for _, r := range m.sched.Resources() {
		if r.ID == id {
			return r.Title
		}
	}
	return id
}

func (m Model) setStatus(msg string, warn bool) (Model, tea.Cmd) {
	const ttl = 3 * time.Second
	m.statusMsg = msg
	m.statusWarn = warn
	m.statusTime = m.now().Add(ttl)
	return m, commands.ClearStatusAfter(ttl)
}
