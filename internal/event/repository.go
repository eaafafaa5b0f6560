package event

import (
	"context"
	"fmt"
	"time"
)

// Provider supplies the events intersecting a UTC range.
// Implementations are not trusted to filter exactly; the layout engine
// re-filters per cell.
type Provider interface {
	EventsInRange(ctx context.Context, start, end time.Time) ([]Event, error)
}

// Repository defines the storage interface for events.
type Repository interface {
	Provider

	// CreateEvent adds a new event to the repository.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events in a batch.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID. Returns nil if missing.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// UpdateEvent replaces the stored fields of an existing event.
	UpdateEvent(ctx context.Context, e *Event) error

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}

// ResourceIndex maps resource ids for membership checks.
type ResourceIndex map[string]Resource

// IndexResources builds a ResourceIndex and rejects duplicate or empty ids.
func IndexResources(resources []Resource) (ResourceIndex, error) {
	idx := make(ResourceIndex, len(resources))
	for _, r := range resources {
		if r.ID == "" {
			return nil, ErrEmptyResource
		}
		if _, ok := idx[r.ID]; ok {
			return nil, fmt.Errorf("resource %q: %w", r.ID, ErrDuplicateID)
		}
		idx[r.ID] = r
	}
	return idx, nil
}

// Check validates e and verifies that it references a known resource.
func (idx ResourceIndex) Check(e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if _, ok := idx[e.ResourceID]; !ok {
		return fmt.Errorf("resource %q: %w", e.ResourceID, ErrUnknownResource)
	}
	return nil
}
