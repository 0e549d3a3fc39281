package schedule

import (
	"time"

	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/log"
)

// Index converts a flat list of events into a freshly built board.
// Events without a usable start instant cannot be placed on a grid and
// are skipped, not errored; the grid simply renders without them.
func Index(events []event.Event) *Board {
	board := NewBoard()
	for _, ev := range events {
		scheduled, key, ok := Place(ev)
		if !ok {
			log.Debug("skipping event without start", "id", ev.ID, "title", ev.Title)
			continue
		}
		board.Insert(key.String(), scheduled)
	}
	return board
}

// Place derives the ScheduledEvent projection and bucket key for a
// single event. ok is false when the event has no start instant.
//
// A missing end defaults to one slot after start. Duration is clamped
// at zero so an inverted range never yields a negative length.
func Place(ev event.Event) (ScheduledEvent, CellKey, bool) {
	if ev.Start.IsZero() {
		return ScheduledEvent{}, CellKey{}, false
	}

	end := ev.End
	if end.IsZero() {
		end = ev.Start.Add(SlotMinutes * time.Minute)
	}

	duration := int(end.Sub(ev.Start).Minutes())
	if duration < 0 {
		duration = 0
	}

	scheduled := ScheduledEvent{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Start:       ev.Start,
		End:         end,
		Duration:    duration,
		AllDay:      ev.AllDay,
		Category:    ev.Category,
		Color:       ev.Color,
	}

	if ev.AllDay {
		return scheduled, AllDayKey(ev.Start), true
	}

	key := TimedKey(ev.Start)
	scheduled.Slot = key.Slot
	return scheduled, key, true
}
