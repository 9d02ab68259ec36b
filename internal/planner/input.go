package planner

import (
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/slots"
	"github.com/abhisek/studyplan/internal/spacedrep"
)

// Input is one plan request. Field names follow the request documents
// accepted by the CLI (JSON or YAML).
type Input struct {
	Subjects    []string          `json:"subjects" yaml:"subjects"`
	Ratings     map[string]int    `json:"ratings" yaml:"ratings"`
	TopicStatus map[string]string `json:"topicStatus" yaml:"topicStatus"`
	// Availability maps weekday names to study hours.
	Availability    map[string]float64 `json:"availability" yaml:"availability"`
	TimePreferences slots.Preferences  `json:"timePreferences" yaml:"timePreferences"`
	BlockedTimes    []slots.Interval   `json:"blockedTimes" yaml:"blockedTimes"`
	// StudyBlockDuration is the slot length in hours.
	StudyBlockDuration float64 `json:"studyBlockDuration" yaml:"studyBlockDuration"`
	// TargetWeekStart and ActualStartDate are YYYY-MM-DD dates.
	TargetWeekStart    string                            `json:"targetWeekStart,omitempty" yaml:"targetWeekStart,omitempty"`
	ActualStartDate    string                            `json:"actualStartDate,omitempty" yaml:"actualStartDate,omitempty"`
	MissedTopicIDs     []string                          `json:"missedTopicIds" yaml:"missedTopicIds"`
	ReratedTopicIDs    []string                          `json:"reratedTopicIds" yaml:"reratedTopicIds"`
	OngoingTopics      map[string]spacedrep.OngoingTopic `json:"ongoingTopics" yaml:"ongoingTopics"`
	AllowUnratedTopics bool                              `json:"allowUnratedTopics" yaml:"allowUnratedTopics"`
}

func parseAvailability(in map[string]float64) (map[time.Weekday]float64, error) {
	out := make(map[time.Weekday]float64, len(in))
	for name, hours := range in {
		day, err := slots.ParseDay(name)
		if err != nil {
			return nil, fmt.Errorf("availability: %w", err)
		}
		out[day] += hours
	}
	return out, nil
}

func parseDate(field, s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(slots.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q, want YYYY-MM-DD", field, s)
	}
	return t, nil
}
