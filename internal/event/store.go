package event

import (
	"context"
	"time"
)

// Store defines the persistence interface for events. The scheduling
// core consumes List output and calls Update on every successful move;
// everything else is CLI surface.
type Store interface {
	// Create persists a new event and assigns its ID.
	Create(ctx context.Context, ev *Event) error

	// Get retrieves an event by ID. Returns ErrEventNotFound if absent.
	Get(ctx context.Context, id string) (*Event, error)

	// Update replaces the stored event with the same ID.
	// Returns ErrEventNotFound if absent.
	Update(ctx context.Context, ev Event) error

	// Delete removes an event by ID. Deleting an unknown ID is not an
	// error; the caller only cares that it is gone.
	Delete(ctx context.Context, id string) error

	// List returns all events whose start date falls within the range
	// (inclusive), ordered by start instant.
	List(ctx context.Context, start, end time.Time) ([]Event, error)

	// ListAll returns every stored event, ordered by start instant.
	ListAll(ctx context.Context) ([]Event, error)

	// Close releases any resources held by the store.
	Close() error
}
