package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/resched/internal/config"
	"github.com/javiermolinar/resched/internal/debuglog"
	"github.com/javiermolinar/resched/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		return updated.withFetch(cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case commands.EventsLoadedMsg:
		return m.handleEventsLoaded(msg)

	case commands.FileChangedMsg:
		return m.handleFileChanged(msg)

	case commands.ErrMsg:
		debuglog.Error("tui", msg.Err)
		return m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsg:
		return m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusWarn = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// withFetch starts a request when the last operation changed the range.
func (m Model) withFetch(cmd tea.Cmd) (Model, tea.Cmd) {
	fetchCmd := m.fetch.flush()
	if fetchCmd == nil {
		return m, cmd
	}
	m.clampCursor()
	if m.loading {
		return m, tea.Batch(cmd, fetchCmd)
	}
	m.loading = true
	return m, tea.Batch(cmd, fetchCmd, m.spinner.Tick)
}

func (m Model) handleEventsLoaded(msg commands.EventsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.fetch.accept(msg) {
		return m, nil
	}
	m.loading = false
	if msg.Err != nil {
		debuglog.Error("fetch", msg.Err)
		return m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
	}

	m.sched.SetEvents(msg.Events)
	m.sched.Recompute()
	return m.withFetch(nil)
}

func (m Model) handleFileChanged(msg commands.FileChangedMsg) (tea.Model, tea.Cmd) {
	next := commands.WaitForChange(m.changes)

	if m.configPath == "" || !samePath(msg.Path, m.configPath) {
		return m, tea.Batch(next, m.fetch.refetch())
	}

	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		updated, cmd := m.setStatus(fmt.Sprintf("Config not reloaded: %v", err), true)
		return updated, tea.Batch(next, cmd)
	}
	m.config = cfg
	m.styles = loadStyles(cfg.UI.Theme)
	m.spinner.Style = m.styles.InfoStyle

	m.sched.SetOptions(cfg.SchedulerOptions(time.Time{}))
	m.sched.SetResources(cfg.EventResources())
	m.sched.Recompute()

	updated, cmd := m.setStatus("Config reloaded", false)
	updated, fetchCmd := updated.withFetch(cmd)
	return updated, tea.Batch(next, fetchCmd)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
