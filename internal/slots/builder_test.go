package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-26 is a Monday.
var monday = time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)

func at(dayOffset, hour, minute int) time.Time {
	return time.Date(2026, 10, 26+dayOffset, hour, minute, 0, 0, time.UTC)
}

func startTimes(ss []Slot) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.StartTime
	}
	return out
}

func TestBuild_CapsAtEightyPercent(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 4},
		BlockHours:   0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"16:00", "16:30", "17:00", "17:30", "18:00", "18:30"}, startTimes(got))
	for i, s := range got {
		assert.Equal(t, time.Monday, s.Day)
		assert.Equal(t, 30, s.DurationMinutes)
		assert.Equal(t, i, s.Index)
		assert.Equal(t, s.Start.Add(30*time.Minute), s.End)
	}
	assert.Equal(t, at(0, 16, 0), got[0].Start)
}

func TestBuild_SkipsBlockedTime(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 4},
		Blocked:      []Interval{{Start: at(0, 16, 30), End: at(0, 17, 30)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"16:00", "17:30", "18:00", "18:30", "19:00", "19:30"}, startTimes(got))
}

func TestBuild_BlockedWholeDayShiftsToNextDay(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 2, time.Tuesday: 2},
		Blocked:      []Interval{{Start: at(0, 0, 0), End: at(1, 0, 0)}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Equal(t, time.Tuesday, s.Day)
	}
	assert.Len(t, got, 3)
}

func TestBuild_BlockedEdgesAreHalfOpen(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 1.5},
		Blocked:      []Interval{{Start: at(0, 15, 0), End: at(0, 16, 0)}},
	})
	require.NoError(t, err)
	// A block ending exactly at 16:00 does not touch the 16:00 slot.
	assert.Equal(t, []string{"16:00", "16:30"}, startTimes(got))
}

func TestBuild_StopsAtLatest(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 10},
		Preferences:  Preferences{WeekdayEarliest: "19:00", WeekdayLatest: "21:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00", "19:30", "20:00", "20:30"}, startTimes(got))
}

func TestBuild_WeekendWindow(t *testing.T) {
	prefs := Preferences{
		WeekdayEarliest: "17:00",
		WeekdayLatest:   "20:00",
		WeekendEarliest: "10:00",
		WeekendLatest:   "12:00",
	}
	avail := map[time.Weekday]float64{time.Saturday: 1}

	got, err := Build(Request{WeekStart: monday, Availability: avail, Preferences: prefs})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10:00", got[0].StartTime)
	assert.Equal(t, at(5, 10, 0), got[0].Start)

	prefs.UseSameWeekendTimes = true
	got, err = Build(Request{WeekStart: monday, Availability: avail, Preferences: prefs})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "17:00", got[0].StartTime)
}

func TestBuild_SmallAvailability(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  int
	}{
		{"less than one block", 0.25, 0},
		{"exactly one block", 0.5, 1},
		{"two blocks", 1, 1},
		{"five blocks", 2.5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(Request{
				WeekStart:    monday,
				Availability: map[time.Weekday]float64{time.Wednesday: tt.hours},
			})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestBuild_NotBefore(t *testing.T) {
	got, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 1, time.Thursday: 1},
		NotBefore:    at(2, 13, 0),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Thursday, got[0].Day)
}

func TestBuild_InvalidPreference(t *testing.T) {
	_, err := Build(Request{
		WeekStart:    monday,
		Availability: map[time.Weekday]float64{time.Monday: 1},
		Preferences:  Preferences{WeekdayEarliest: "late"},
	})
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{" Sat ", time.Saturday, false},
		{"0", time.Sunday, false},
		{"funday", 0, true},
		{"7", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDay(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDay(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{at(0, 9, 0), monday},
		{at(6, 23, 59), monday},
		{at(7, 0, 0), monday.AddDate(0, 0, 7)},
	}
	for _, tt := range tests {
		if got := MondayOf(tt.in); !got.Equal(tt.want) {
			t.Errorf("MondayOf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	m, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 465, m)
	assert.Equal(t, "07:45", FormatClock(m))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
