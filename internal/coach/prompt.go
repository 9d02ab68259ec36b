package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/planner"
)

const systemPrompt = `You are a calm, practical study coach for students preparing for school exams. You write short notes that tell a student how to spend the revision sessions planned for them this week.`

// topicSummary is one topic's share of the week, in first-seen order.
type topicSummary struct {
	id       string
	name     string
	subject  string
	rating   int
	sessions []string
}

func summarize(blocks []planner.ScheduledBlock) []topicSummary {
	var out []topicSummary
	index := make(map[string]int)
	for _, b := range blocks {
		i, ok := index[b.TopicID]
		if !ok {
			i = len(out)
			index[b.TopicID] = i
			out = append(out, topicSummary{id: b.TopicID, name: b.TopicName, subject: b.Subject, rating: b.Rating})
		}
		out[i].sessions = append(out[i].sessions, fmt.Sprintf("%s %s (%s)", b.Day, b.StartTime, b.SessionLabel))
	}
	return out
}

func buildUserMessage(topics []topicSummary, maxWords int) string {
	var b strings.Builder
	b.WriteString("Topics this week:\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "- id=%s | %s: %s | confidence %d/5 | %s\n",
			t.id, t.subject, t.name, t.rating, strings.Join(t.sessions, ", "))
	}
	fmt.Fprintf(&b, "\nWrite one note per topic, at most %d words, in the second person. "+
		"Low confidence topics need fundamentals; high confidence topics need exam-style practice. "+
		"Use each topic id exactly as given.", maxWords)
	return b.String()
}
