// Package layout assigns side-by-side columns to overlapping events of one
// grid cell.
package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

// Positioned is an event with its column inside its overlap cluster.
// Column is zero-based; Columns is the column count of the whole cluster.
type Positioned struct {
	event.Event
	Column  int
	Columns int
}

// FilterCell keeps the events of resourceID intersecting [start, end) and
// sorts them by start time. Ties keep their input order.
func FilterCell(events []event.Event, resourceID string, start, end time.Time) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.ResourceID == resourceID && e.Intersects(start, end) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b event.Event) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Clusters splits events sorted by start into maximal runs of transitively
// overlapping events.
func Clusters(sorted []event.Event) [][]event.Event {
	var (
		clusters   [][]event.Event
		current    []event.Event
		clusterEnd time.Time
	)

	for _, e := range sorted {
		if len(current) == 0 {
			current = []event.Event{e}
			clusterEnd = e.End
			continue
		}

		// Sorted by start: nothing later can reach back into the cluster.
		if !e.Start.Before(clusterEnd) {
			clusters = append(clusters, current)
			current = []event.Event{e}
			clusterEnd = e.End
			continue
		}

		current = append(current, e)
		if e.End.After(clusterEnd) {
			clusterEnd = e.End
		}
	}

	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

// Layout positions events sorted by start. Events sharing a column never
// overlap, and the column count of each cluster equals its peak concurrency.
func Layout(sorted []event.Event) []Positioned {
	out := make([]Positioned, 0, len(sorted))
	for _, cluster := range Clusters(sorted) {
		out = append(out, assignColumns(cluster)...)
	}
	return out
}

// assignColumns places each event in the first column whose last event has
// ended (first-fit), opening a new column when none is free.
func assignColumns(cluster []event.Event) []Positioned {
	var columnEnds []time.Time
	out := make([]Positioned, 0, len(cluster))

	for _, e := range cluster {
		col := 0
		for ; col < len(columnEnds); col++ {
			if !e.Start.Before(columnEnds[col]) {
				break
			}
		}

		if col == len(columnEnds) {
			columnEnds = append(columnEnds, e.End)
		} else {
			columnEnds[col] = e.End
		}

		out = append(out, Positioned{Event: e, Column: col})
	}

	for i := range out {
		out[i].Columns = len(columnEnds)
	}
	return out
}
