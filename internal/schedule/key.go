package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Key string prefixes. The rendering layer scans bucket keys by prefix,
// so the exact shape (including the unpadded hour) must stay stable.
const (
	timedKeyPrefix  = "event"
	allDayKeyPrefix = "all-day"
)

// SlotsPerHour is the number of quarter-hour slots in one hour.
const SlotsPerHour = 4

// SlotMinutes is the length of one quarter-hour slot.
const SlotMinutes = 15

// CellKey addresses one bucket on the board: either a quarter-hour cell
// of a day (timed) or the day's all-day lane. Hour and Slot are only
// meaningful when AllDay is false.
type CellKey struct {
	AllDay bool
	Year   int
	Month  time.Month
	Day    int
	Hour   int // 0..23
	Slot   int // 0..3, quarter-hour index within Hour
}

// TimedKey returns the timed cell key containing the instant t.
func TimedKey(t time.Time) CellKey {
	return CellKey{
		Year:  t.Year(),
		Month: t.Month(),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Slot:  t.Minute() / SlotMinutes,
	}
}

// AllDayKey returns the all-day cell key for the date of t.
// The time-of-day component is ignored.
func AllDayKey(t time.Time) CellKey {
	return CellKey{
		AllDay: true,
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
	}
}

// String encodes the key in its wire form:
//
//	event-<year>-<mm>-<dd>-<hour>-<slot>   (hour unpadded, slot 0..3)
//	all-day-<year>-<mm>-<dd>
func (k CellKey) String() string {
	if k.AllDay {
		return fmt.Sprintf("%s-%d-%02d-%02d", allDayKeyPrefix, k.Year, k.Month, k.Day)
	}
	return fmt.Sprintf("%s-%d-%02d-%02d-%d-%d", timedKeyPrefix, k.Year, k.Month, k.Day, k.Hour, k.Slot)
}

// Date returns midnight of the key's date in loc.
func (k CellKey) Date(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// Time returns the instant the key's cell begins in loc. For all-day
// keys this is midnight.
func (k CellKey) Time(loc *time.Location) time.Time {
	if k.AllDay {
		return k.Date(loc)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, k.Hour, k.Slot*SlotMinutes, 0, 0, loc)
}

// ParseCellKey decodes a bucket key. Malformed input (wrong prefix,
// wrong field count, out-of-range parts) yields ok=false; callers scan
// heterogeneous key sets and must be able to skip strangers quietly.
func ParseCellKey(s string) (CellKey, bool) {
	fields := strings.Split(s, "-")
	switch {
	case len(fields) == 6 && fields[0] == timedKeyPrefix:
		return parseTimedKey(fields[1:])
	case len(fields) == 5 && fields[0] == "all" && fields[1] == "day":
		return parseAllDayKey(fields[2:])
	default:
		return CellKey{}, false
	}
}

func parseTimedKey(fields []string) (CellKey, bool) {
	nums, ok := parseInts(fields)
	if !ok {
		return CellKey{}, false
	}
	k := CellKey{
		Year:  nums[0],
		Month: time.Month(nums[1]),
		Day:   nums[2],
		Hour:  nums[3],
		Slot:  nums[4],
	}
	if !validDate(k) || k.Hour < 0 || k.Hour > 23 || k.Slot < 0 || k.Slot >= SlotsPerHour {
		return CellKey{}, false
	}
	return k, true
}

func parseAllDayKey(fields []string) (CellKey, bool) {
	nums, ok := parseInts(fields)
	if !ok {
		return CellKey{}, false
	}
	k := CellKey{
		AllDay: true,
		Year:   nums[0],
		Month:  time.Month(nums[1]),
		Day:    nums[2],
	}
	if !validDate(k) {
		return CellKey{}, false
	}
	return k, true
}

func parseInts(fields []string) ([]int, bool) {
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

func validDate(k CellKey) bool {
	return k.Year > 0 && k.Month >= time.January && k.Month <= time.December && k.Day >= 1 && k.Day <= 31
}
