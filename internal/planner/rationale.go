package planner

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/assign"
	"github.com/abhisek/studyplan/internal/spacedrep"
	"github.com/abhisek/studyplan/internal/topics"
)

func sessionLabel(a assign.Assignment) string {
	if a.SessionTotal > 1 {
		return fmt.Sprintf("Session %d of %d", a.SessionNumber, a.SessionTotal)
	}
	if a.Topic.SessionType == spacedrep.SessionExam {
		return "Exam practice"
	}
	return "Single review"
}

// rationale explains in plain words why a session sits where it does.
func rationale(a assign.Assignment) string {
	var parts []string

	switch {
	case a.SessionTotal > 1:
		parts = append(parts, fmt.Sprintf("Confidence %d/5, so this topic gets %d spaced sessions.", a.Topic.Rating, a.SessionTotal))
	case a.Topic.SessionType == spacedrep.SessionExam:
		parts = append(parts, fmt.Sprintf("Confidence %d/5, so one exam-style session to keep it fresh.", a.Topic.Rating))
	default:
		parts = append(parts, fmt.Sprintf("Confidence %d/5, so one consolidation session.", a.Topic.Rating))
	}

	if a.SessionNumber > 1 {
		gap := a.Topic.Policy().GapAfter(a.SessionNumber - 1)
		parts = append(parts, fmt.Sprintf("Placed at least %d days after session %d.", gap, a.SessionNumber-1))
	}
	if a.Continued {
		parts = append(parts, "Continues a cycle started in an earlier week.")
	}

	switch a.Topic.Boost {
	case topics.BoostMissed:
		parts = append(parts, "Moved up because a session was missed.")
	case topics.BoostRerated:
		parts = append(parts, "Moved up after the rating changed.")
	}
	return strings.Join(parts, " ")
}
