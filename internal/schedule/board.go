package schedule

import (
	"sort"
	"time"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/event"
)

// ScheduledEvent is the board-internal projection of an event: start and
// end are known-valid instants and the slot geometry is precomputed.
// Instances are values; every move produces a fresh copy, never an
// in-place mutation of a previous one.
type ScheduledEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Duration    int // minutes, never negative
	AllDay      bool
	Slot        int // quarter-hour index within the hour, timed only
	Category    string
	Color       string
}

// ToEvent converts back to the store's event shape for write-back.
func (s ScheduledEvent) ToEvent() event.Event {
	return event.Event{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Start:       s.Start,
		End:         s.End,
		AllDay:      s.AllDay,
		Category:    s.Category,
		Color:       s.Color,
	}
}

// Board owns the bucket map: cell key → events filed under that cell,
// in arrival order. It also maintains a reverse index from event ID to
// bucket key so drag-start never has to scan.
//
// Invariants: every event appears in exactly one bucket; empty buckets
// are deleted rather than kept as empty lists; the reverse index and
// the bucket map never diverge. All mutation funnels through Insert,
// Remove, and RemoveEverywhere to keep those holding.
type Board struct {
	buckets map[string][]ScheduledEvent
	index   map[string]string // event ID → bucket key
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{
		buckets: make(map[string][]ScheduledEvent),
		index:   make(map[string]string),
	}
}

// Insert appends ev to the bucket at key, creating the bucket if
// absent. If the event is already filed elsewhere it is removed from
// its old bucket first, preserving the one-bucket-per-event invariant.
func (b *Board) Insert(key string, ev ScheduledEvent) {
	if old, ok := b.index[ev.ID]; ok && old != key {
		b.Remove(old, ev.ID)
	}
	b.buckets[key] = append(b.buckets[key], ev)
	b.index[ev.ID] = key
}

// Remove deletes the event with the given ID from the bucket at key.
// The bucket entry itself is deleted when it becomes empty. Reports
// whether anything was removed.
func (b *Board) Remove(key, id string) bool {
	list, ok := b.buckets[key]
	if !ok {
		return false
	}
	for i, ev := range list {
		if ev.ID != id {
			continue
		}
		list = append(list[:i], list[i+1:]...)
		if len(list) == 0 {
			delete(b.buckets, key)
		} else {
			b.buckets[key] = list
		}
		if b.index[id] == key {
			delete(b.index, id)
		}
		return true
	}
	return false
}

// RemoveEverywhere deletes the event from every bucket it appears in,
// by ID match. Origin tracking can be stale, so this sweeps the whole
// map instead of trusting the index. Returns the number of removals.
func (b *Board) RemoveEverywhere(id string) int {
	removed := 0
	for key := range b.buckets {
		if b.Remove(key, id) {
			removed++
		}
	}
	delete(b.index, id)
	return removed
}

// BucketKey returns the bucket key currently holding the event.
func (b *Board) BucketKey(id string) (string, bool) {
	key, ok := b.index[id]
	return key, ok
}

// Find returns the event with the given ID and its bucket key.
func (b *Board) Find(id string) (ScheduledEvent, string, bool) {
	key, ok := b.index[id]
	if !ok {
		return ScheduledEvent{}, "", false
	}
	for _, ev := range b.buckets[key] {
		if ev.ID == id {
			return ev, key, true
		}
	}
	return ScheduledEvent{}, "", false
}

// Bucket returns the events filed under key, in arrival order.
// The returned slice is a copy.
func (b *Board) Bucket(key string) []ScheduledEvent {
	list, ok := b.buckets[key]
	if !ok {
		return nil
	}
	out := make([]ScheduledEvent, len(list))
	copy(out, list)
	return out
}

// Keys returns all bucket keys, sorted for deterministic iteration.
func (b *Board) Keys() []string {
	keys := make([]string, 0, len(b.buckets))
	for k := range b.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of scheduled events on the board.
func (b *Board) Len() int {
	return len(b.index)
}

// DayEvents returns the timed events of the given date, gathered across
// its quarter-hour buckets.
func (b *Board) DayEvents(date time.Time) []ScheduledEvent {
	return b.collect(date, false)
}

// AllDayEvents returns the all-day events of the given date.
func (b *Board) AllDayEvents(date time.Time) []ScheduledEvent {
	return b.collect(date, true)
}

func (b *Board) collect(date time.Time, allDay bool) []ScheduledEvent {
	var out []ScheduledEvent
	for _, key := range b.Keys() {
		ck, ok := ParseCellKey(key)
		if !ok || ck.AllDay != allDay {
			continue
		}
		if !dateutil.SameDate(ck.Date(date.Location()), date) {
			continue
		}
		out = append(out, b.buckets[key]...)
	}
	return out
}
