package topics

import "github.com/abhisek/studyplan/internal/curriculum"

// StatusSkip marks a topic the student has chosen not to revise.
const StatusSkip = "skip"

// Filter drops topics the student has not rated or has marked skip.
// With allowUnrated, topics without a positive rating pass through and
// later receive spacedrep.DefaultRating. Input order is preserved.
func Filter(all []curriculum.Topic, ratings map[string]int, status map[string]string, allowUnrated bool) []curriculum.Topic {
	out := make([]curriculum.Topic, 0, len(all))
	for _, t := range all {
		if status[t.ID] == StatusSkip {
			continue
		}
		if ratings[t.ID] <= 0 && !allowUnrated {
			continue
		}
		out = append(out, t)
	}
	return out
}
