package tui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/resched/internal/debuglog"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
	"github.com/javiermolinar/resched/internal/tui/commands"
)

const fetchTimeout = 10 * time.Second

// fetcher owns the events request of the visible range. Only the newest
// request is live: starting one cancels the previous context, and results
// carrying an older key are dropped.
type fetcher struct {
	provider event.Provider
	timeout  time.Duration

	queued  []scheduler.RangeChange
	current scheduler.RangeChange
	seq     int
	key     string
	cancel  context.CancelFunc
}

func newFetcher(p event.Provider) *fetcher {
	return &fetcher{provider: p, timeout: fetchTimeout}
}

// collect is the engine's range change handler.
func (f *fetcher) collect(rc scheduler.RangeChange) {
	f.queued = append(f.queued, rc)
}

// flush starts a request for the newest collected range. It returns nil when
// nothing changed since the last flush.
func (f *fetcher) flush() tea.Cmd {
	if len(f.queued) == 0 {
		return nil
	}
	rc := f.queued[len(f.queued)-1]
	f.queued = f.queued[:0]
	return f.start(rc)
}

// refetch reloads the current range, superseding any request in flight.
func (f *fetcher) refetch() tea.Cmd {
	if f.key == "" {
		return nil
	}
	return f.start(f.current)
}

func (f *fetcher) start(rc scheduler.RangeChange) tea.Cmd {
	f.stop()
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	f.seq++
	f.current = rc
	f.key = rangeKey(rc) + "#" + strconv.Itoa(f.seq)
	f.cancel = cancel
	debuglog.Range("fetch", f.key)
	return commands.FetchEvents(ctx, f.provider, f.key, rc.Start, rc.End)
}

// accept reports whether msg answers the live request.
func (f *fetcher) accept(msg commands.EventsLoadedMsg) bool {
	stale := msg.Key != f.key
	debuglog.Fetch(msg.Key, len(msg.Events), stale, msg.Err)
	if stale {
		return false
	}
	f.stop()
	return true
}

func (f *fetcher) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func rangeKey(rc scheduler.RangeChange) string {
	return grid.VisibleRange{
		Start:       rc.Start,
		End:         rc.End,
		Days:        rc.Days,
		PrimaryAxis: rc.PrimaryAxis,
		View:        rc.View,
	}.Key()
}
