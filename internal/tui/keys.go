package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/resched/internal/debuglog"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
	"github.com/javiermolinar/resched/internal/tui/commands"
)

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Today     key.Binding
	Axis      key.Binding
	MoreDays  key.Binding
	FewerDays key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Select    key.Binding
	Yank      key.Binding
	Refresh   key.Binding
	Close     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev")),
		Next:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Axis:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "axis")),
		MoreDays:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more days")),
		FewerDays: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer days")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev cell")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Axis, k.FocusNext, k.Select, k.Yank, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Refresh},
		{k.Axis, k.MoreDays, k.FewerDays},
		{k.FocusNext, k.FocusPrev, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Select, k.Yank, k.Close, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	debuglog.Key(msg.String())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.detail != nil || m.showHelp {
		if key.Matches(msg, m.keys.Close, m.keys.Select, m.keys.Help, m.keys.Quit) {
			m.detail = nil
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		m.sched.Prev()
	case key.Matches(msg, m.keys.Next):
		m.sched.Next()
	case key.Matches(msg, m.keys.Today):
		m.sched.Today()
		m.focusNow()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch.refetch()

	case key.Matches(msg, m.keys.Axis):
		focused, ok := m.focusedCell()
		opts := m.sched.Options()
		opts.StartDate = m.sched.StartDate()
		opts.PrimaryAxis = m.sched.PrimaryAxis().Toggle()
		m.sched.SetOptions(opts)
		m.sched.Recompute()
		if ok {
			m.focusCell(focused.Key())
		}
	case key.Matches(msg, m.keys.MoreDays):
		m.setDays(m.sched.Days() + 1)
	case key.Matches(msg, m.keys.FewerDays):
		m.setDays(m.sched.Days() - 1)

	case key.Matches(msg, m.keys.FocusNext):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.FocusPrev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveRow(m.gridHeight())
	case key.Matches(msg, m.keys.PageUp):
		m.moveRow(-m.gridHeight())

	case key.Matches(msg, m.keys.Select):
		return m.activate(msg.String())
	case key.Matches(msg, m.keys.Yank):
		summary, ok := m.cellSummary()
		if !ok {
			return m, nil
		}
		return m, commands.CopyToClipboard(summary, "cell summary")
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	m.clampCursor()
	return m, nil
}

func (m *Model) setDays(n int) {
	opts := m.sched.Options()
	opts.StartDate = m.sched.StartDate()
	opts.Days = grid.ClampDays(n)
	m.sched.SetOptions(opts)
	m.sched.Recompute()
}

// activate raises an event click for the event under the cursor, or a slot
// click for the empty slot.
func (m Model) activate(raw string) (Model, tea.Cmd) {
	cell, ok := m.focusedCell()
	if !ok {
		return m, nil
	}
	if pe, ok := m.eventAtCursor(cell); ok {
		m.sched.ClickEvent(pe.Event, raw)
		m.detail = &pe
		return m, nil
	}

	rowPx, _ := timelineRows(m.sched.Timeline())
	sc, ok := m.sched.ClickSlot(cell, float64(m.row)*rowPx)
	if !ok {
		return m.setStatus("Read-only view", true)
	}
	return m.setStatus(fmt.Sprintf("Free slot %s %s · %s",
		sc.Day.Format("Mon Jan 2"), m.sched.FormatTime(sc.Instant), m.resourceTitle(sc.ResourceID)), false)
}

// cellSummary renders the focused cell as plain text for the clipboard.
func (m Model) cellSummary() (string, bool) {
	cell, ok := m.focusedCell()
	if !ok {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s\n", cell.Day.Format("Mon, Jan 2"), m.resourceTitle(cell.ResourceID))
	events := m.sched.CellEvents(cell)
	if len(events) == 0 {
		b.WriteString("(no events)\n")
	}
	for _, pe := range events {
		fmt.Fprintf(&b, "%s–%s %s\n", m.sched.FormatTime(pe.Start), m.sched.FormatTime(pe.End), pe.Title)
	}
	return b.String(), true
}

func (m Model) eventAtCursor(cell grid.Cell) (scheduler.PositionedEvent, bool) {
	rowPx, rows := timelineRows(m.sched.Timeline())
	for _, pe := range m.sched.CellEvents(cell) {
		if pe.Box.Hidden {
			continue
		}
		row, n := rowSpan(pe.Box.Top, pe.Box.Height, rowPx, rows)
		if m.row >= row && m.row < row+n {
			return pe, true
		}
	}
	return scheduler.PositionedEvent{}, false
}
