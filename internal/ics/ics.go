// Package ics converts between the event store and iCalendar payloads.
package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/log"
)

// ErrEmptyPayload is returned when there is nothing to parse.
var ErrEmptyPayload = errors.New("empty ICS payload")

// Parse converts an ICS payload into events. A VEVENT that cannot be
// understood is logged and skipped; one broken entry should not sink a
// whole calendar import. Events keep their UID as ID when present.
func Parse(body []byte) ([]event.Event, error) {
	if len(body) == 0 {
		return nil, ErrEmptyPayload
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			log.Warn("skipping unreadable VEVENT", "reason", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (event.Event, error) {
	var ev event.Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.ID = p.Value
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if ev.Title == "" {
		return ev, errors.New("missing SUMMARY")
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		ev.Category = p.Value
	}

	// The library resolves VTIMEZONE/TZID handling; a missing DTEND is
	// left zero and defaulted at scheduling time.
	if start, err := ve.GetStartAt(); err == nil {
		ev.Start = start
	}
	if end, err := ve.GetEndAt(); err == nil {
		ev.End = end
	}
	if ev.Start.IsZero() {
		return ev, errors.New("missing DTSTART")
	}

	ev.AllDay = isAllDay(ve)
	return ev, nil
}

// isAllDay reports whether DTSTART is a date value (VALUE=DATE or a
// bare YYYYMMDD form without a time component).
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// Export serializes events to an ICS payload.
func Export(events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//slotcal//slotcal//EN")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(time.Now())
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, ev.Category)
		}

		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			ve.SetAllDayEndAt(ev.Start.AddDate(0, 0, 1))
			continue
		}
		ve.SetStartAt(ev.Start)
		if !ev.End.IsZero() {
			ve.SetEndAt(ev.End)
		}
	}

	return cal.Serialize()
}
