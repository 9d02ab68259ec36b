package slots

import (
	"fmt"
	"math"
	"time"
)

// Defaults applied when a request leaves a field empty.
const (
	DefaultBlockHours      = 0.5
	DefaultWeekdayEarliest = "16:00"
	DefaultWeekdayLatest   = "21:00"
	DefaultWeekendEarliest = "09:00"
	DefaultWeekendLatest   = "18:00"
)

// BufferPercent is the share of a day's theoretical capacity that is
// handed out; the rest stays free for rescheduling.
const BufferPercent = 80

// Slot is a concrete study window that avoids all blocked time.
type Slot struct {
	Day             time.Weekday
	StartTime       string
	DurationMinutes int
	Start           time.Time
	End             time.Time
	Index           int
}

// Valid reports whether the slot has a usable time range.
func (s Slot) Valid() bool {
	return !s.Start.IsZero() && !s.End.IsZero() && s.End.After(s.Start)
}

// Interval is an absolute period the student is unavailable.
type Interval struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Overlaps is a half-open overlap test against [start, end).
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// Preferences bounds the time of day study may happen.
type Preferences struct {
	WeekdayEarliest     string `json:"weekdayEarliest" yaml:"weekdayEarliest"`
	WeekdayLatest       string `json:"weekdayLatest" yaml:"weekdayLatest"`
	WeekendEarliest     string `json:"weekendEarliest" yaml:"weekendEarliest"`
	WeekendLatest       string `json:"weekendLatest" yaml:"weekendLatest"`
	UseSameWeekendTimes bool   `json:"useSameWeekendTimes" yaml:"useSameWeekendTimes"`
}

// Window returns the earliest and latest minutes from midnight for a day.
func (p Preferences) Window(d time.Weekday) (int, int, error) {
	earliest, latest := orDefault(p.WeekdayEarliest, DefaultWeekdayEarliest), orDefault(p.WeekdayLatest, DefaultWeekdayLatest)
	if IsWeekend(d) && !p.UseSameWeekendTimes {
		earliest, latest = orDefault(p.WeekendEarliest, DefaultWeekendEarliest), orDefault(p.WeekendLatest, DefaultWeekendLatest)
	}

	from, err := ParseClock(earliest)
	if err != nil {
		return 0, 0, fmt.Errorf("earliest for %s: %w", DayName(d), err)
	}
	to, err := ParseClock(latest)
	if err != nil {
		return 0, 0, fmt.Errorf("latest for %s: %w", DayName(d), err)
	}
	return from, to, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Request describes one week of slot building.
type Request struct {
	// WeekStart is midnight of the target Monday; its location is used
	// for every slot.
	WeekStart    time.Time
	Availability map[time.Weekday]float64
	Preferences  Preferences
	Blocked      []Interval
	BlockHours   float64
	// NotBefore skips days before this date (partial first weeks).
	NotBefore time.Time
}

// BlockMinutes returns the slot length in whole minutes.
func (r Request) BlockMinutes() int {
	hours := r.BlockHours
	if hours <= 0 {
		hours = DefaultBlockHours
	}
	m := int(math.Round(hours * 60))
	if m < 1 {
		m = 1
	}
	return m
}

// Build produces the week's slots, Monday first, in chronological order.
// Each available day yields at most 80% of the blocks its hours allow
// (at least one), stepping through the day's window and skipping any
// candidate that overlaps blocked time.
func Build(req Request) ([]Slot, error) {
	blockMin := req.BlockMinutes()
	var notBefore time.Time
	if !req.NotBefore.IsZero() {
		notBefore = StartOfDay(req.NotBefore.In(req.WeekStart.Location()))
	}

	var out []Slot
	for offset := 0; offset < 7; offset++ {
		date := req.WeekStart.AddDate(0, 0, offset)
		day := date.Weekday()

		hours := req.Availability[day]
		if hours <= 0 {
			continue
		}
		if !notBefore.IsZero() && date.Before(notBefore) {
			continue
		}

		possible := int(math.Floor(hours*60/float64(blockMin) + 1e-9))
		if possible == 0 {
			continue
		}
		count := max(1, possible*BufferPercent/100)

		from, to, err := req.Preferences.Window(day)
		if err != nil {
			return nil, err
		}

		accepted := 0
		for start := from; accepted < count && start+blockMin <= to; start += blockMin {
			slotStart := time.Date(date.Year(), date.Month(), date.Day(), start/60, start%60, 0, 0, date.Location())
			slotEnd := slotStart.Add(time.Duration(blockMin) * time.Minute)
			if blocked(req.Blocked, slotStart, slotEnd) {
				continue
			}
			out = append(out, Slot{
				Day:             day,
				StartTime:       FormatClock(start),
				DurationMinutes: blockMin,
				Start:           slotStart,
				End:             slotEnd,
				Index:           len(out),
			})
			accepted++
		}
	}
	return out, nil
}

func blocked(intervals []Interval, start, end time.Time) bool {
	for _, iv := range intervals {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}
