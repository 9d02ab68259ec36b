package planner

import (
	"time"

	"github.com/abhisek/studyplan/internal/slots"
)

// RealignBlocked maps blocked intervals onto the week starting at
// weekStart. Intervals that overlap the week at all pass through as
// given, including ones that start before Monday or run past Sunday.
// Intervals wholly outside the week keep their weekday and clock times
// and move into the target week; an end that would not come after the
// start rolls over to the next day.
func RealignBlocked(blocked []slots.Interval, weekStart time.Time) []slots.Interval {
	if len(blocked) == 0 {
		return nil
	}
	loc := weekStart.Location()
	weekEnd := weekStart.AddDate(0, 0, 7)

	out := make([]slots.Interval, 0, len(blocked))
	for _, iv := range blocked {
		if iv.Overlaps(weekStart, weekEnd) {
			out = append(out, iv)
			continue
		}

		start := iv.Start.In(loc)
		end := iv.End.In(loc)
		spanDays := daysBetween(start, end)
		day := weekStart.AddDate(0, 0, slots.DayOffset(start.Weekday()))

		newStart := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), start.Second(), 0, loc)
		endDay := day.AddDate(0, 0, spanDays)
		newEnd := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), end.Hour(), end.Minute(), end.Second(), 0, loc)
		if !newEnd.After(newStart) {
			newEnd = newEnd.AddDate(0, 0, 1)
		}
		out = append(out, slots.Interval{Start: newStart, End: newEnd})
	}
	return out
}

// daysBetween counts calendar days from a's date to b's date.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
