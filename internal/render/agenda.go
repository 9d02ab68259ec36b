// Package render draws planned weeks for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/slots"
)

// Options tweaks the agenda.
type Options struct {
	// Rationale prints each session's rationale under it.
	Rationale bool
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Agenda renders blocks as a week grouped by day, Monday first. Blocks
// are expected in start order, as the planner returns them.
func Agenda(blocks []planner.ScheduledBlock, opts Options) string {
	if len(blocks) == 0 {
		return hintStyle.Render("No sessions scheduled.")
	}

	byDay := make(map[string][]planner.ScheduledBlock)
	for _, b := range blocks {
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	var sections []string
	sections = append(sections, titleStyle.Render(weekTitle(blocks[0].WeekStart)))
	for _, wd := range weekdays {
		name := slots.DayName(wd)
		day := byDay[name]

		var lines []string
		lines = append(lines, dayStyle.Render(strings.ToUpper(name[:1])+name[1:]))
		if len(day) == 0 {
			lines = append(lines, hintStyle.Render("  rest"))
		}
		for _, b := range day {
			lines = append(lines, row(b))
			if opts.Rationale && b.AIRationale != "" {
				lines = append(lines, hintStyle.Render("  "+b.AIRationale))
			}
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	sections = append(sections, "", labelStyle.Render(Summary(blocks)))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func row(b planner.ScheduledBlock) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		"  ",
		timeStyle.Render(timeRange(b.StartTime, b.DurationMinutes)),
		subjectStyle.Render(b.Subject),
		topicStyle.Render(b.TopicName),
		labelStyle.Render(b.SessionLabel),
	)
}

// Summary is a one-line count of sessions, hours and topics.
func Summary(blocks []planner.ScheduledBlock) string {
	minutes := 0
	topics := make(map[string]struct{})
	for _, b := range blocks {
		minutes += b.DurationMinutes
		topics[b.TopicID] = struct{}{}
	}
	return fmt.Sprintf("%d sessions, %s across %d topics", len(blocks), hours(minutes), len(topics))
}

func hours(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

func timeRange(start string, minutes int) string {
	t, err := time.Parse(slots.TimeFormat, start)
	if err != nil {
		return start
	}
	return start + "-" + t.Add(time.Duration(minutes)*time.Minute).Format(slots.TimeFormat)
}

func weekTitle(weekStart string) string {
	t, err := time.Parse(slots.DateFormat, weekStart)
	if err != nil {
		return "Study plan"
	}
	return "Week of " + t.Format("Mon 2 Jan 2006")
}
