package schedule

import (
	"context"
	"time"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/log"
)

// UnscheduledTarget is the sentinel drop target (and origin marker) for
// the unscheduled list, which lives outside the bucket map.
const UnscheduledTarget = "unscheduled-list"

// allDayMoveMinutes is the duration given to an event that leaves
// all-day status by being dropped on a timed cell. An all-day event has
// no meaningful duration to inherit, so the move settles on one hour.
const allDayMoveMinutes = 60

// Geometry supplies the pixel dimensions of a drop cell. It only feeds
// the drag preview; bucket computation never depends on it.
type Geometry interface {
	CellSize(key string) (width, height int)
}

// MoveResult is the outcome of a drag-end.
//
// PersistErr carries a store failure without implying rollback: the
// board keeps the optimistic new state either way, and the caller
// decides whether to reconcile or just report.
type MoveResult struct {
	Moved      bool
	Event      ScheduledEvent // the moved copy, valid when Moved
	PersistErr error
}

// DragEngine reconciles a drag gesture against the board: one active
// event at a time, from DragStart through DragEnd. Whatever happens in
// between, DragEnd always returns the engine to idle.
type DragEngine struct {
	board *Board
	store event.Store
	geom  Geometry

	active    *ScheduledEvent
	originKey string
}

// NewDragEngine creates a drag engine operating on the given board and
// persisting moves through the given store.
func NewDragEngine(board *Board, store event.Store) *DragEngine {
	return &DragEngine{board: board, store: store}
}

// SetGeometry attaches an optional geometry provider for preview sizing.
func (d *DragEngine) SetGeometry(g Geometry) {
	d.geom = g
}

// Dragging reports whether a gesture is in flight.
func (d *DragEngine) Dragging() bool {
	return d.active != nil
}

// Origin returns the bucket key the active event was picked up from,
// or UnscheduledTarget if it was not on the board.
func (d *DragEngine) Origin() string {
	return d.originKey
}

// DragStart begins a gesture for ev. The event's current bucket is
// recorded as the origin; an event not on the board gets the
// unscheduled sentinel as its origin.
func (d *DragEngine) DragStart(ev ScheduledEvent) {
	copyEv := ev
	d.active = &copyEv

	if key, ok := d.board.BucketKey(ev.ID); ok {
		d.originKey = key
	} else {
		d.originKey = UnscheduledTarget
	}

	if d.geom != nil {
		// Preview sizing only; the result is advisory.
		d.geom.CellSize(d.originKey)
	}
}

// DragOver reports where the active event would land if dropped on
// candidateKey. Purely advisory: no board state changes. ok is false
// when nothing is being dragged or the key is not a cell.
func (d *DragEngine) DragOver(candidateKey string) (CellKey, bool) {
	if d.active == nil {
		return CellKey{}, false
	}
	return ParseCellKey(candidateKey)
}

// DragEnd resolves the gesture against targetKey and returns to idle.
//
// Timed targets move the event preserving its duration; all-day events
// dropped on a timed cell become timed with a one-hour default. All-day
// targets strip the time-of-day. Dropping an event where it already is
// is a logical cancel: no board change, no store call. The unscheduled
// sentinel sweeps the event off the board entirely. Malformed keys are
// no-op targets. State clears on every path.
func (d *DragEngine) DragEnd(ctx context.Context, targetKey string) MoveResult {
	defer d.clear()

	if d.active == nil || targetKey == "" {
		return MoveResult{}
	}
	active := *d.active

	if targetKey == UnscheduledTarget {
		d.board.RemoveEverywhere(active.ID)
		return MoveResult{}
	}

	target, ok := ParseCellKey(targetKey)
	if !ok {
		log.Debug("ignoring malformed drop target", "key", targetKey)
		return MoveResult{}
	}

	moved, ok := movedCopy(active, target)
	if !ok {
		return MoveResult{} // already in place
	}

	return d.commit(ctx, active, moved, target)
}

// commit applies the move to the board and persists it. The board keeps
// the new state even when the store fails; the error is surfaced, not
// retried.
func (d *DragEngine) commit(ctx context.Context, active, moved ScheduledEvent, target CellKey) MoveResult {
	if d.originKey == UnscheduledTarget {
		// Origin tracking could not name a bucket; sweep defensively.
		d.board.RemoveEverywhere(active.ID)
	} else {
		d.board.Remove(d.originKey, active.ID)
	}
	d.board.Insert(target.String(), moved)

	err := d.store.Update(ctx, moved.ToEvent())
	if err != nil {
		log.Error("persisting moved event failed", err, "id", moved.ID, "target", target.String())
	}
	return MoveResult{Moved: true, Event: moved, PersistErr: err}
}

// movedCopy builds the event value resulting from dropping active on
// target. ok is false when the drop would not change anything.
func movedCopy(active ScheduledEvent, target CellKey) (ScheduledEvent, bool) {
	loc := active.Start.Location()

	if target.AllDay {
		dest := target.Date(loc)
		if active.AllDay && dateutil.SameDate(active.Start, dest) {
			return ScheduledEvent{}, false
		}
		moved := active
		moved.AllDay = true
		moved.Start = dest
		moved.End = dest
		moved.Duration = 0
		moved.Slot = 0
		return moved, true
	}

	dest := target.Time(loc)
	// Full date+time comparison: the same wall-clock time on another
	// day, or the same time across an AM/PM boundary, is still a move.
	if !active.AllDay && dest.Equal(active.Start) {
		return ScheduledEvent{}, false
	}

	moved := active
	moved.AllDay = false
	moved.Slot = target.Slot
	moved.Start = dest
	if active.AllDay {
		moved.Duration = allDayMoveMinutes
	}
	moved.End = dest.Add(time.Duration(moved.Duration) * time.Minute)
	return moved, true
}

// clear returns the engine to idle. Runs on every DragEnd exit path,
// including early returns.
func (d *DragEngine) clear() {
	d.active = nil
	d.originKey = ""
}
