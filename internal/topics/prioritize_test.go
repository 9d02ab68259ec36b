package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/curriculum"
	"github.com/abhisek/studyplan/internal/spacedrep"
)

func prioritizedIDs(ps []Prioritized) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestPrioritize_BucketRoundRobin(t *testing.T) {
	eligible := []curriculum.Topic{
		{ID: "e", Subject: "Maths", OrderIndex: 4},
		{ID: "b", Subject: "Maths", OrderIndex: 1},
		{ID: "a", Subject: "Maths", OrderIndex: 0},
		{ID: "c", Subject: "Maths", OrderIndex: 2},
		{ID: "d", Subject: "Maths", OrderIndex: 3},
	}
	ratings := map[string]int{"a": 1, "b": 1, "c": 2, "d": 3, "e": 5}

	got := Prioritize(eligible, ratings, Options{})
	require.Len(t, got, 5)
	assert.Equal(t, []string{"a", "c", "d", "e", "b"}, prioritizedIDs(got))

	for i, p := range got {
		assert.Equal(t, i, p.PriorityIndex)
	}
}

func TestPrioritize_AnnotatesPolicy(t *testing.T) {
	eligible := []curriculum.Topic{
		{ID: "low", Subject: "Maths"},
		{ID: "unrated", Subject: "Maths", OrderIndex: 1},
		{ID: "exam", Subject: "Maths", OrderIndex: 2},
	}
	ratings := map[string]int{"low": 1, "exam": 4}

	got := Prioritize(eligible, ratings, Options{})
	byID := make(map[string]Prioritized)
	for _, p := range got {
		byID[p.ID] = p
	}

	low := byID["low"]
	assert.Equal(t, BucketR1, low.Bucket)
	assert.Equal(t, 3, low.SessionsRequired)
	assert.Equal(t, []int{2, 3}, low.GapDays)
	assert.Equal(t, spacedrep.SessionRevision, low.SessionType)

	unrated := byID["unrated"]
	assert.Equal(t, spacedrep.DefaultRating, unrated.Rating)
	assert.Equal(t, BucketR3, unrated.Bucket)

	exam := byID["exam"]
	assert.Equal(t, BucketExam, exam.Bucket)
	assert.Equal(t, spacedrep.SessionExam, exam.SessionType)
	assert.Equal(t, 1, exam.Policy().SessionsRequired)
}

func TestPrioritize_SubjectsInterleave(t *testing.T) {
	var eligible []curriculum.Topic
	ratings := make(map[string]int)
	for i := 0; i < 5; i++ {
		m := curriculum.Topic{ID: "m" + string(rune('0'+i)), Subject: "Maths", OrderIndex: i}
		p := curriculum.Topic{ID: "p" + string(rune('0'+i)), Subject: "Physics", OrderIndex: i}
		eligible = append(eligible, m, p)
		ratings[m.ID] = 1 + i%4
		ratings[p.ID] = 4 - i%3
	}

	got := Prioritize(eligible, ratings, Options{})
	require.Len(t, got, 10)

	for i := 1; i < len(got); i++ {
		if got[i].Subject == got[i-1].Subject {
			t.Errorf("positions %d and %d share subject %q: %v", i-1, i, got[i].Subject, prioritizedIDs(got))
		}
	}
}

func TestPrioritize_UnevenSubjects(t *testing.T) {
	eligible := []curriculum.Topic{
		{ID: "m1", Subject: "Maths", OrderIndex: 1},
		{ID: "m2", Subject: "Maths", OrderIndex: 2},
		{ID: "m3", Subject: "Maths", OrderIndex: 3},
		{ID: "p1", Subject: "Physics", OrderIndex: 1},
	}
	ratings := map[string]int{"m1": 1, "m2": 1, "m3": 1, "p1": 1}

	got := Prioritize(eligible, ratings, Options{})
	// Once Physics runs out, Maths fills the tail.
	assert.Equal(t, []string{"m1", "p1", "m2", "m3"}, prioritizedIDs(got))
}

func TestPrioritize_Boosts(t *testing.T) {
	eligible := []curriculum.Topic{
		{ID: "a", Subject: "Maths", OrderIndex: 0},
		{ID: "b", Subject: "Maths", OrderIndex: 1},
		{ID: "c", Subject: "Maths", OrderIndex: 2},
		{ID: "d", Subject: "Maths", OrderIndex: 3},
	}
	ratings := map[string]int{"a": 1, "b": 1, "c": 4, "d": 4}

	got := Prioritize(eligible, ratings, Options{
		MissedTopicIDs:  []string{"d", "c"},
		ReratedTopicIDs: []string{"b", "c"},
	})

	// c is in both lists and counts as missed; missed keep their
	// prioritized relative order.
	assert.Equal(t, []string{"c", "d", "b", "a"}, prioritizedIDs(got))
	assert.Equal(t, BoostMissed, got[0].Boost)
	assert.Equal(t, BoostRerated, got[2].Boost)
	assert.Equal(t, BoostNone, got[3].Boost)
}

func TestPrioritize_Empty(t *testing.T) {
	if got := Prioritize(nil, nil, Options{}); got != nil {
		t.Errorf("Prioritize(nil) = %v, want nil", got)
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		rating int
		want   Bucket
	}{
		{1, BucketR1}, {2, BucketR2}, {3, BucketR3}, {4, BucketExam}, {5, BucketExam},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.rating); got != tt.want {
			t.Errorf("BucketFor(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}
