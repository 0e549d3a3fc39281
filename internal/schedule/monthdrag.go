package schedule

import (
	"context"
	"time"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/log"
)

// dedupWindow is how long an identical (source, target) drop
// notification is ignored after one has been processed. Month-view drop
// events double-fire on some platforms; this is a debounce, not a
// cancellation mechanism.
const dedupWindow = 300 * time.Millisecond

// MonthDrag is the month-granularity drag-end. Month cells address a
// whole day, so a drop changes the event's date while keeping its
// time-of-day; the quarter-hour resolution of the underlying engine is
// recovered from the origin bucket key.
type MonthDrag struct {
	engine *DragEngine
	board  *Board

	lastDrop   string
	lastDropAt time.Time
	inFlight   bool

	now func() time.Time // injectable for the debounce window
}

// NewMonthDrag creates a month-view drag handler over the given board
// and store.
func NewMonthDrag(board *Board, store event.Store) *MonthDrag {
	return &MonthDrag{
		engine: NewDragEngine(board, store),
		board:  board,
		now:    time.Now,
	}
}

// DragEnd moves the event with sourceID to the day addressed by
// targetKey.
//
// Guards, in order: a re-entrant call while a drop is still being
// processed is rejected; an identical (source, target) notification
// within the debounce window is ignored entirely; an unknown source or
// malformed target is a no-op; a drop on the event's current date is a
// no-op. The surviving drop keeps the event's hour and slot from its
// origin bucket key when that key is parseable, falling back to the
// drop target's own hour and slot otherwise.
func (m *MonthDrag) DragEnd(ctx context.Context, sourceID, targetKey string) MoveResult {
	if m.inFlight {
		log.Debug("rejecting re-entrant month drop", "source", sourceID, "target", targetKey)
		return MoveResult{}
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	stamp := sourceID + "|" + targetKey
	now := m.now()
	if stamp == m.lastDrop && now.Sub(m.lastDropAt) < dedupWindow {
		log.Debug("suppressing duplicate month drop", "source", sourceID, "target", targetKey)
		return MoveResult{}
	}
	m.lastDrop = stamp
	m.lastDropAt = now

	ev, originKey, found := m.board.Find(sourceID)
	if !found {
		return MoveResult{}
	}

	target, ok := ParseCellKey(targetKey)
	if !ok {
		log.Debug("ignoring malformed month drop target", "key", targetKey)
		return MoveResult{}
	}
	if dateutil.SameDate(target.Date(ev.Start.Location()), ev.Start) {
		return MoveResult{}
	}

	effective := monthTarget(target, originKey)
	m.engine.DragStart(ev)
	return m.engine.DragEnd(ctx, effective.String())
}

// monthTarget rewrites a month-cell drop onto the target date while
// preserving the origin cell's kind and time-of-day where determinable.
func monthTarget(target CellKey, originKey string) CellKey {
	origin, ok := ParseCellKey(originKey)
	if !ok {
		return target
	}
	if origin.AllDay {
		return CellKey{AllDay: true, Year: target.Year, Month: target.Month, Day: target.Day}
	}
	target.AllDay = false
	target.Hour = origin.Hour
	target.Slot = origin.Slot
	return target
}
