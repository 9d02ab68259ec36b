package curriculum

import "context"

// TopicLevel is the depth of a node in a curriculum specification.
// Level 1 is a subject area, level 2 a unit, level 3 a revisable topic.
type TopicLevel int

// SchedulableLevel is the only level the planner schedules.
const SchedulableLevel TopicLevel = 3

// Topic is a single revisable curriculum topic.
type Topic struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Subject    string     `json:"subject" yaml:"subject"`
	ExamBoard  string     `json:"exam_board" yaml:"exam_board"`
	OrderIndex int        `json:"order_index" yaml:"order_index"`
	Level      TopicLevel `json:"level,omitempty" yaml:"level,omitempty"`
}

// Loader supplies the level-3 topics for the requested subjects,
// ordered by subject then curriculum order.
type Loader interface {
	LoadTopics(ctx context.Context, subjects []string) ([]Topic, error)
}
