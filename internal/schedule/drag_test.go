package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfarrow/slotcal/internal/event"
)

// memStore is an in-memory event.Store for engine tests. It counts
// Update calls and can be told to fail them.
type memStore struct {
	events     map[string]event.Event
	updates    int
	failUpdate error
}

func newMemStore() *memStore {
	return &memStore{events: make(map[string]event.Event)}
}

func (m *memStore) Create(_ context.Context, ev *event.Event) error {
	m.events[ev.ID] = *ev
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return &ev, nil
}

func (m *memStore) Update(_ context.Context, ev event.Event) error {
	m.updates++
	if m.failUpdate != nil {
		return m.failUpdate
	}
	m.events[ev.ID] = ev
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *memStore) List(_ context.Context, _, _ time.Time) ([]event.Event, error) {
	return m.listAll(), nil
}

func (m *memStore) ListAll(_ context.Context) ([]event.Event, error) {
	return m.listAll(), nil
}

func (m *memStore) listAll() []event.Event {
	out := make([]event.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out
}

func (m *memStore) Close() error { return nil }

// dragFixture builds a board with one timed one-hour event at
// 2023-10-27 10:00 and an engine over it.
func dragFixture(t *testing.T) (*Board, *memStore, *DragEngine, ScheduledEvent) {
	t.Helper()

	start := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	src := event.Event{ID: "a", Title: "meeting", Start: start, End: start.Add(time.Hour), Color: "blue"}

	store := newMemStore()
	store.events[src.ID] = src

	board := Index([]event.Event{src})
	engine := NewDragEngine(board, store)

	active, _, ok := board.Find("a")
	if !ok {
		t.Fatal("fixture event not on board")
	}
	return board, store, engine, active
}

func TestDragMovePreservesDuration(t *testing.T) {
	board, store, engine, active := dragFixture(t)

	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), "event-2023-10-28-14-2")

	if !result.Moved {
		t.Fatal("expected a move")
	}
	moved := result.Event
	if got := moved.End.Sub(moved.Start); got != time.Hour {
		t.Errorf("moved duration = %v, want 1h", got)
	}
	wantStart := time.Date(2023, 10, 28, 14, 30, 0, 0, time.UTC)
	if !moved.Start.Equal(wantStart) {
		t.Errorf("moved start = %v, want %v", moved.Start, wantStart)
	}

	// Gone from origin, exactly once in destination.
	if got := board.Bucket("event-2023-10-27-10-0"); got != nil {
		t.Errorf("origin bucket still holds %v", got)
	}
	dest := board.Bucket("event-2023-10-28-14-2")
	if len(dest) != 1 || dest[0].ID != "a" {
		t.Errorf("destination bucket = %v, want exactly the moved event", dest)
	}

	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
	if stored := store.events["a"]; !stored.Start.Equal(wantStart) {
		t.Errorf("persisted start = %v, want %v", stored.Start, wantStart)
	}
}

func TestDragAllDayToTimedGetsHourDefault(t *testing.T) {
	day := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)
	src := event.Event{ID: "h", Title: "holiday", Start: day, AllDay: true}

	store := newMemStore()
	store.events[src.ID] = src
	board := Index([]event.Event{src})
	engine := NewDragEngine(board, store)

	active, _, _ := board.Find("h")
	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), "event-2023-10-27-10-0")

	if !result.Moved {
		t.Fatal("expected a move")
	}
	moved := result.Event
	if moved.AllDay {
		t.Error("moved copy still all-day")
	}
	if moved.Duration != 60 {
		t.Errorf("duration = %d, want 60", moved.Duration)
	}
	if got := moved.End.Sub(moved.Start); got != time.Hour {
		t.Errorf("end-start = %v, want 1h", got)
	}
	if got := board.Bucket("all-day-2023-10-27"); got != nil {
		t.Errorf("all-day bucket still holds %v", got)
	}
}

func TestDragTimedToAllDay(t *testing.T) {
	board, store, engine, active := dragFixture(t)

	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), "all-day-2023-11-01")

	if !result.Moved {
		t.Fatal("expected a move")
	}
	moved := result.Event
	if !moved.AllDay {
		t.Error("moved copy not all-day")
	}
	wantDate := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	if !moved.Start.Equal(wantDate) || !moved.End.Equal(wantDate) {
		t.Errorf("start/end = %v/%v, want both %v", moved.Start, moved.End, wantDate)
	}
	if moved.Slot != 0 {
		t.Errorf("slot = %d, want cleared", moved.Slot)
	}
	if got := board.Bucket("all-day-2023-11-01"); len(got) != 1 {
		t.Errorf("destination bucket = %v, want one event", got)
	}
	if !store.events["a"].AllDay {
		t.Error("persisted event not all-day")
	}
}

func TestDragSamePositionIsNoOp(t *testing.T) {
	board, store, engine, active := dragFixture(t)

	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), "event-2023-10-27-10-0")

	if result.Moved {
		t.Error("drop on current bucket reported a move")
	}
	if store.updates != 0 {
		t.Errorf("store updates = %d, want 0", store.updates)
	}
	if got := board.Bucket("event-2023-10-27-10-0"); len(got) != 1 {
		t.Errorf("origin bucket = %v, want untouched", got)
	}
}

func TestDragMalformedTargetIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "empty", target: ""},
		{name: "garbage", target: "event-10-0"},
		{name: "wrong field count", target: "event-2023-10-27-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, store, engine, active := dragFixture(t)

			engine.DragStart(active)
			result := engine.DragEnd(context.Background(), tt.target)

			if result.Moved {
				t.Error("malformed target produced a move")
			}
			if store.updates != 0 {
				t.Errorf("store updates = %d, want 0", store.updates)
			}
			if board.Len() != 1 {
				t.Errorf("board has %d events, want untouched 1", board.Len())
			}
			if engine.Dragging() {
				t.Error("engine still dragging after malformed target")
			}
		})
	}
}

func TestDragUnscheduledTargetSweeps(t *testing.T) {
	board, store, engine, active := dragFixture(t)

	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), UnscheduledTarget)

	if result.Moved {
		t.Error("unschedule reported a move")
	}
	if board.Len() != 0 {
		t.Errorf("board has %d events, want 0", board.Len())
	}
	if store.updates != 0 {
		t.Errorf("store updates = %d, want 0", store.updates)
	}
}

func TestDragEndAlwaysClearsState(t *testing.T) {
	targets := []string{
		"",
		"bogus",
		UnscheduledTarget,
		"event-2023-10-27-10-0", // same position
		"event-2023-10-28-9-0",  // a real move
	}

	for _, target := range targets {
		_, _, engine, active := dragFixture(t)
		engine.DragStart(active)
		engine.DragEnd(context.Background(), target)
		if engine.Dragging() {
			t.Errorf("target %q: engine still dragging", target)
		}
		if engine.Origin() != "" {
			t.Errorf("target %q: origin not cleared", target)
		}
	}
}

func TestDragEndWithoutStartIsNoOp(t *testing.T) {
	board, store, engine, _ := dragFixture(t)

	result := engine.DragEnd(context.Background(), "event-2023-10-28-9-0")

	if result.Moved {
		t.Error("drag-end without drag-start reported a move")
	}
	if board.Len() != 1 || store.updates != 0 {
		t.Error("drag-end without drag-start mutated state")
	}
}

func TestDragPersistFailureKeepsOptimisticState(t *testing.T) {
	board, store, engine, active := dragFixture(t)
	store.failUpdate = errors.New("disk full")

	engine.DragStart(active)
	result := engine.DragEnd(context.Background(), "event-2023-10-28-9-0")

	if !result.Moved {
		t.Fatal("expected a move despite persist failure")
	}
	if result.PersistErr == nil {
		t.Fatal("expected PersistErr")
	}
	// No rollback: the board keeps the new position.
	if key, _ := board.BucketKey("a"); key != "event-2023-10-28-9-0" {
		t.Errorf("board position = %q, want optimistic destination", key)
	}
}

func TestDragStartFromUnscheduledOrigin(t *testing.T) {
	start := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.events["u"] = event.Event{ID: "u", Title: "backlog item", Start: start, End: start.Add(30 * time.Minute)}

	board := NewBoard() // event is not on the board
	engine := NewDragEngine(board, store)

	scheduled, _, _ := Place(store.events["u"])
	engine.DragStart(scheduled)
	if engine.Origin() != UnscheduledTarget {
		t.Errorf("origin = %q, want unscheduled sentinel", engine.Origin())
	}

	result := engine.DragEnd(context.Background(), "event-2023-10-27-11-0")
	if !result.Moved {
		t.Fatal("expected a move from the unscheduled list")
	}
	if key, _ := board.BucketKey("u"); key != "event-2023-10-27-11-0" {
		t.Errorf("board position = %q, want destination bucket", key)
	}
}

func TestDragOverIsAdvisory(t *testing.T) {
	board, store, engine, active := dragFixture(t)

	engine.DragStart(active)
	key, ok := engine.DragOver("event-2023-10-28-9-0")
	if !ok {
		t.Fatal("DragOver rejected a valid key")
	}
	if key.Hour != 9 || key.Day != 28 {
		t.Errorf("DragOver key = %+v, want hour 9 day 28", key)
	}

	if _, ok := engine.DragOver("junk"); ok {
		t.Error("DragOver accepted a malformed key")
	}

	// No mutation from hovering.
	if board.Len() != 1 || store.updates != 0 {
		t.Error("DragOver mutated state")
	}
	if k, _ := board.BucketKey("a"); k != "event-2023-10-27-10-0" {
		t.Errorf("event moved to %q during hover", k)
	}

	engine.DragEnd(context.Background(), "")
	if _, ok := engine.DragOver("event-2023-10-28-9-0"); ok {
		t.Error("DragOver ok while idle")
	}
}
