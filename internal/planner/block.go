package planner

import (
	"time"

	"github.com/abhisek/studyplan/internal/spacedrep"
)

// ScheduledBlock is one study session in a produced week.
type ScheduledBlock struct {
	Day             string                `json:"day" yaml:"day"`
	StartTime       string                `json:"start_time" yaml:"start_time"`
	DurationMinutes int                   `json:"duration_minutes" yaml:"duration_minutes"`
	Subject         string                `json:"subject" yaml:"subject"`
	TopicID         string                `json:"topic_id" yaml:"topic_id"`
	TopicName       string                `json:"topic_name" yaml:"topic_name"`
	ExamBoard       string                `json:"exam_board" yaml:"exam_board"`
	Rating          int                   `json:"rating" yaml:"rating"`
	ScheduledAt     time.Time             `json:"scheduled_at" yaml:"scheduled_at"`
	EndAt           time.Time             `json:"end_at" yaml:"end_at"`
	SessionNumber   int                   `json:"session_number" yaml:"session_number"`
	SessionTotal    int                   `json:"session_total" yaml:"session_total"`
	SessionType     spacedrep.SessionType `json:"session_type" yaml:"session_type"`
	SessionLabel    string                `json:"session_label" yaml:"session_label"`
	AIRationale     string                `json:"ai_rationale" yaml:"ai_rationale"`
	WeekStart       string                `json:"week_start" yaml:"week_start"`
}

// CarryForward derives the ongoing cycles to feed into the next week's
// request from this week's blocks.
func CarryForward(prior map[string]spacedrep.OngoingTopic, blocks []ScheduledBlock) map[string]spacedrep.OngoingTopic {
	records := make([]spacedrep.SessionRecord, len(blocks))
	for i, b := range blocks {
		records[i] = spacedrep.SessionRecord{
			TopicID:       b.TopicID,
			ScheduledAt:   b.ScheduledAt,
			SessionNumber: b.SessionNumber,
			SessionTotal:  b.SessionTotal,
		}
	}
	return spacedrep.CarryForward(prior, records)
}
