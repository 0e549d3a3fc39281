// Package event defines the core domain types for slotcal.
package event

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrMissingStart   = errors.New("start time is required")
	ErrEndBeforeStart = errors.New("end time must not be before start time")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// DefaultSlotMinutes is the length of one grid slot. An event whose end
// is unknown is assumed to fill a single slot.
const DefaultSlotMinutes = 15

// Event represents a calendar entry as held by the store.
//
// Start and End use the zero time.Time to mean "absent"; the scheduling
// layer decides how to treat incomplete events (see schedule.Index).
// The ID is assigned by the store on create and is opaque to callers.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Category    string
	Color       string
	CreatedAt   time.Time
}

// New creates a new Event with validation. All-day events carry their
// date in Start; End is normalized to the same date.
func New(title, description, category, color string, start, end time.Time, allDay bool) (*Event, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if start.IsZero() {
		return nil, ErrMissingStart
	}

	if allDay {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		start, end = day, day
	} else {
		if end.IsZero() {
			end = start.Add(DefaultSlotMinutes * time.Minute)
		}
		if end.Before(start) {
			return nil, ErrEndBeforeStart
		}
	}

	return &Event{
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Category:    category,
		Color:       color,
		CreatedAt:   time.Now(),
	}, nil
}

// Duration returns the event length in minutes, never negative.
// All-day events and events without a usable end report zero.
func (e *Event) Duration() int {
	if e.AllDay || e.Start.IsZero() || e.End.IsZero() {
		return 0
	}
	mins := int(e.End.Sub(e.Start).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// SameDay reports whether the event starts on the given calendar date.
func (e *Event) SameDay(t time.Time) bool {
	y1, m1, d1 := e.Start.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
