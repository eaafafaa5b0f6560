// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/resched/internal/event"
)

// EventsLoadedMsg carries the result of one events fetch. Key identifies the
// request so the model can drop results of superseded ranges.
type EventsLoadedMsg struct {
	Key    string
	Start  time.Time
	End    time.Time
	Events []event.Event
	Err    error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FileChangedMsg is sent when a watched file changed on disk.
type FileChangedMsg struct {
	Path string
}

// FetchEvents asks the provider for the events of [start, end).
// Cancelling ctx abandons the request.
func FetchEvents(ctx context.Context, p event.Provider, key string, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return EventsLoadedMsg{Key: key, Start: start, End: end}
		}
		events, err := p.EventsInRange(ctx, start, end)
		if err != nil {
			return EventsLoadedMsg{Key: key, Start: start, End: end, Err: fmt.Errorf("loading events: %w", err)}
		}
		return EventsLoadedMsg{Key: key, Start: start, End: end, Events: events}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// WaitForChange blocks until the watcher reports a path. It returns nil once
// the channel is closed.
func WaitForChange(changes <-chan string) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return FileChangedMsg{Path: path}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsg{Msg: "Copied " + what}
	}
}
