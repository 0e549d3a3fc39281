package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/jfarrow/slotcal/internal/event"
)

// monthFixture builds a board with one timed event at 2023-10-27 10:30
// and a month drag handler with a controllable clock.
func monthFixture(t *testing.T) (*Board, *memStore, *MonthDrag, *time.Time) {
	t.Helper()

	start := time.Date(2023, 10, 27, 10, 30, 0, 0, time.UTC)
	src := event.Event{ID: "a", Title: "meeting", Start: start, End: start.Add(time.Hour)}

	store := newMemStore()
	store.events[src.ID] = src
	board := Index([]event.Event{src})

	month := NewMonthDrag(board, store)
	now := time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)
	month.now = func() time.Time { return now }

	return board, store, month, &now
}

func TestMonthDragPreservesTimeOfDay(t *testing.T) {
	board, store, month, _ := monthFixture(t)

	// Month cells drop at slot 0; the event's own 10:30 must survive.
	result := month.DragEnd(context.Background(), "a", "event-2023-11-03-0-0")

	if !result.Moved {
		t.Fatal("expected a move")
	}
	wantStart := time.Date(2023, 11, 3, 10, 30, 0, 0, time.UTC)
	if !result.Event.Start.Equal(wantStart) {
		t.Errorf("moved start = %v, want %v", result.Event.Start, wantStart)
	}
	if key, _ := board.BucketKey("a"); key != "event-2023-11-03-10-2" {
		t.Errorf("board position = %q, want origin hour/slot on new date", key)
	}
	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
}

func TestMonthDragSameDateIsNoOp(t *testing.T) {
	board, store, month, _ := monthFixture(t)

	result := month.DragEnd(context.Background(), "a", "event-2023-10-27-0-0")

	if result.Moved {
		t.Error("same-date drop reported a move")
	}
	if store.updates != 0 {
		t.Errorf("store updates = %d, want 0", store.updates)
	}
	if key, _ := board.BucketKey("a"); key != "event-2023-10-27-10-2" {
		t.Errorf("board position = %q, want untouched", key)
	}
}

func TestMonthDragDuplicateDropSuppressed(t *testing.T) {
	board, store, month, now := monthFixture(t)
	ctx := context.Background()

	first := month.DragEnd(ctx, "a", "event-2023-11-03-0-0")
	if !first.Moved {
		t.Fatal("first drop did not move")
	}

	// Identical notification 100ms later: ignored entirely.
	*now = now.Add(100 * time.Millisecond)
	second := month.DragEnd(ctx, "a", "event-2023-11-03-0-0")
	if second.Moved {
		t.Error("duplicate drop within the window was processed")
	}

	if store.updates != 1 {
		t.Errorf("store updates = %d, want exactly 1", store.updates)
	}
	if key, _ := board.BucketKey("a"); key != "event-2023-11-03-10-2" {
		t.Errorf("board position = %q after duplicate", key)
	}
}

func TestMonthDragDuplicateAfterWindowProcessed(t *testing.T) {
	_, _, month, now := monthFixture(t)
	ctx := context.Background()

	month.DragEnd(ctx, "a", "event-2023-11-03-0-0")

	// Outside the window the same pair is a fresh notification; it lands
	// on the event's now-current date, so it resolves as a no-op rather
	// than being swallowed by the debounce.
	*now = now.Add(500 * time.Millisecond)
	result := month.DragEnd(ctx, "a", "event-2023-11-03-0-0")
	if result.Moved {
		t.Error("drop on the event's current date moved it again")
	}
}

func TestMonthDragDifferentPairNotSuppressed(t *testing.T) {
	_, store, month, now := monthFixture(t)
	ctx := context.Background()

	month.DragEnd(ctx, "a", "event-2023-11-03-0-0")

	*now = now.Add(100 * time.Millisecond)
	result := month.DragEnd(ctx, "a", "event-2023-11-05-0-0")
	if !result.Moved {
		t.Error("distinct target within the window was suppressed")
	}
	if store.updates != 2 {
		t.Errorf("store updates = %d, want 2", store.updates)
	}
}

func TestMonthDragAllDayStaysAllDay(t *testing.T) {
	day := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)
	src := event.Event{ID: "h", Title: "holiday", Start: day, AllDay: true}

	store := newMemStore()
	store.events[src.ID] = src
	board := Index([]event.Event{src})
	month := NewMonthDrag(board, store)

	result := month.DragEnd(context.Background(), "h", "event-2023-11-03-0-0")

	if !result.Moved {
		t.Fatal("expected a move")
	}
	if !result.Event.AllDay {
		t.Error("all-day event lost all-day status in a month move")
	}
	if key, _ := board.BucketKey("h"); key != "all-day-2023-11-03" {
		t.Errorf("board position = %q, want all-day lane of new date", key)
	}
}

func TestMonthDragUnknownSourceIsNoOp(t *testing.T) {
	board, store, month, _ := monthFixture(t)

	result := month.DragEnd(context.Background(), "ghost", "event-2023-11-03-0-0")

	if result.Moved {
		t.Error("unknown source reported a move")
	}
	if board.Len() != 1 || store.updates != 0 {
		t.Error("unknown source mutated state")
	}
}

func TestMonthDragMalformedTargetIsNoOp(t *testing.T) {
	board, store, month, _ := monthFixture(t)

	result := month.DragEnd(context.Background(), "a", "event-2023-11")

	if result.Moved {
		t.Error("malformed target reported a move")
	}
	if board.Len() != 1 || store.updates != 0 {
		t.Error("malformed target mutated state")
	}
}
