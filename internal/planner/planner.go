// Package planner turns a plan request into a week of scheduled study
// blocks.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/assign"
	"github.com/abhisek/studyplan/internal/curriculum"
	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/slots"
	"github.com/abhisek/studyplan/internal/topics"
)

// Planner wires the filter, prioritizer, slot builder and assigner.
// A Planner holds no per-run state and may be reused.
type Planner struct {
	Loader curriculum.Loader
	// Location is the student's time zone. Defaults to time.Local.
	Location *time.Location
	// Now is the clock used to pick the default target week.
	Now func() time.Time
	// Rand spaces clusters apart. Nil uses the global source.
	Rand assign.Rand
	// AllowGapFallback lets the assigner break the gap rule when no
	// topic can otherwise take a slot.
	AllowGapFallback bool
}

// New creates a Planner that loads topics from loader.
func New(loader curriculum.Loader) *Planner {
	return &Planner{
		Loader:   loader,
		Location: time.Local,
		Now:      time.Now,
	}
}

// Generate loads the requested subjects' topics and plans the week.
// No subjects is not an error and yields an empty plan.
func (p *Planner) Generate(ctx context.Context, in Input) ([]ScheduledBlock, error) {
	if len(in.Subjects) == 0 {
		return nil, nil
	}
	if p.Loader == nil {
		return nil, fmt.Errorf("load topics: no topic loader configured")
	}

	all, err := p.Loader.LoadTopics(ctx, in.Subjects)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	return p.Plan(in, all)
}

// Plan runs the scheduling pipeline over already loaded topics.
func (p *Planner) Plan(in Input, all []curriculum.Topic) ([]ScheduledBlock, error) {
	loc := p.location()

	weekStart, err := p.ResolveWeekStart(in.TargetWeekStart)
	if err != nil {
		return nil, err
	}
	availability, err := parseAvailability(in.Availability)
	if err != nil {
		return nil, err
	}
	var notBefore time.Time
	if in.ActualStartDate != "" {
		if notBefore, err = parseDate("actualStartDate", in.ActualStartDate, loc); err != nil {
			return nil, err
		}
	}

	eligible := topics.Filter(all, in.Ratings, in.TopicStatus, in.AllowUnratedTopics)
	if len(eligible) == 0 {
		logger.Debug("no eligible topics", "loaded", len(all))
		return nil, nil
	}
	prioritized := topics.Prioritize(eligible, in.Ratings, topics.Options{
		MissedTopicIDs:  in.MissedTopicIDs,
		ReratedTopicIDs: in.ReratedTopicIDs,
	})

	built, err := slots.Build(slots.Request{
		WeekStart:    weekStart,
		Availability: availability,
		Preferences:  in.TimePreferences,
		Blocked:      RealignBlocked(in.BlockedTimes, weekStart),
		BlockHours:   in.StudyBlockDuration,
		NotBefore:    notBefore,
	})
	if err != nil {
		return nil, fmt.Errorf("build slots: %w", err)
	}
	week := validSlots(built)
	if len(week) == 0 {
		logger.Debug("no usable slots", "week_start", weekStart.Format(slots.DateFormat))
		return nil, nil
	}

	assignments := assign.Assign(prioritized, week, assign.Options{
		Ongoing:          in.OngoingTopics,
		Restart:          in.ReratedTopicIDs,
		AllowGapFallback: p.AllowGapFallback,
		Rand:             p.Rand,
	})

	blocks := make([]ScheduledBlock, 0, len(assignments))
	for _, a := range assignments {
		blocks = append(blocks, toBlock(a, weekStart))
	}
	logger.Debug("plan generated",
		"week_start", weekStart.Format(slots.DateFormat),
		"topics", len(prioritized),
		"slots", len(week),
		"blocks", len(blocks),
	)
	return blocks, nil
}

// ResolveWeekStart returns midnight of the target Monday. An empty value
// picks the first Monday on or after tomorrow; any other date is moved
// back to the Monday of its week.
func (p *Planner) ResolveWeekStart(target string) (time.Time, error) {
	loc := p.location()
	if target != "" {
		t, err := parseDate("targetWeekStart", target, loc)
		if err != nil {
			return time.Time{}, err
		}
		return slots.MondayOf(t), nil
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	tomorrow := slots.StartOfDay(now().In(loc)).AddDate(0, 0, 1)
	ahead := (int(time.Monday) - int(tomorrow.Weekday()) + 7) % 7
	return tomorrow.AddDate(0, 0, ahead), nil
}

func (p *Planner) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// validSlots drops slots with unusable times.
func validSlots(in []slots.Slot) []slots.Slot {
	out := make([]slots.Slot, 0, len(in))
	for _, s := range in {
		if !s.Valid() {
			logger.Warn("dropping malformed slot", "day", slots.DayName(s.Day), "start_time", s.StartTime, "index", s.Index)
			continue
		}
		out = append(out, s)
	}
	return out
}

func toBlock(a assign.Assignment, weekStart time.Time) ScheduledBlock {
	return ScheduledBlock{
		Day:             slots.DayName(a.Slot.Day),
		StartTime:       a.Slot.StartTime,
		DurationMinutes: a.Slot.DurationMinutes,
		Subject:         a.Topic.Subject,
		TopicID:         a.Topic.ID,
		TopicName:       a.Topic.Title,
		ExamBoard:       a.Topic.ExamBoard,
		Rating:          a.Topic.Rating,
		ScheduledAt:     a.Slot.Start,
		EndAt:           a.Slot.End,
		SessionNumber:   a.SessionNumber,
		SessionTotal:    a.SessionTotal,
		SessionType:     a.Topic.SessionType,
		SessionLabel:    sessionLabel(a),
		AIRationale:     rationale(a),
		WeekStart:       weekStart.Format(slots.DateFormat),
	}
}
