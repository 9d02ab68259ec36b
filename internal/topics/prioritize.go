package topics

import (
	"sort"

	"github.com/abhisek/studyplan/internal/curriculum"
	"github.com/abhisek/studyplan/internal/spacedrep"
)

// Prioritized is a topic annotated with its scheduling priority and the
// spaced-repetition cycle implied by its rating.
type Prioritized struct {
	curriculum.Topic
	Rating           int
	Bucket           Bucket
	PriorityIndex    int
	SessionsRequired int
	GapDays          []int
	SessionType      spacedrep.SessionType
	Boost            Boost
}

// Boost marks topics promoted ahead of their bucket's natural position.
type Boost int

const (
	BoostNone Boost = iota
	BoostRerated
	BoostMissed
)

// Policy returns the spaced-repetition policy carried by the topic.
func (p Prioritized) Policy() spacedrep.Policy {
	return spacedrep.Policy{
		SessionsRequired: p.SessionsRequired,
		GapDays:          p.GapDays,
		SessionType:      p.SessionType,
	}
}

// Options carries the priority-boost signals.
type Options struct {
	MissedTopicIDs  []string
	ReratedTopicIDs []string
}

// Prioritize orders eligible topics for scheduling.
//
// Topics are bucketed by rating and drawn round-robin across buckets
// using largest-remainder quotas (45/25/20/10). The result is then
// spread evenly across subjects with the same procedure. Missed topics
// go first, then re-rated ones, each group keeping its order; a topic in
// both lists counts as missed. PriorityIndex is the final position.
func Prioritize(eligible []curriculum.Topic, ratings map[string]int, opts Options) []Prioritized {
	if len(eligible) == 0 {
		return nil
	}

	boosts := make(map[string]Boost)
	for _, id := range opts.ReratedTopicIDs {
		boosts[id] = BoostRerated
	}
	for _, id := range opts.MissedTopicIDs {
		boosts[id] = BoostMissed
	}

	byBucket := make(map[Bucket][]Prioritized, len(Buckets))
	for _, t := range eligible {
		rating := spacedrep.ClampRating(ratings[t.ID])
		policy := spacedrep.PolicyFor(rating)
		b := BucketFor(rating)
		byBucket[b] = append(byBucket[b], Prioritized{
			Topic:            t,
			Rating:           rating,
			Bucket:           b,
			SessionsRequired: policy.SessionsRequired,
			GapDays:          policy.GapDays,
			SessionType:      policy.SessionType,
			Boost:            boosts[t.ID],
		})
	}

	queues := make([][]Prioritized, len(Buckets))
	weights := make([]int, len(Buckets))
	capacity := make([]int, len(Buckets))
	for i, b := range Buckets {
		q := byBucket[b]
		sort.SliceStable(q, func(x, y int) bool {
			return q[x].OrderIndex < q[y].OrderIndex
		})
		queues[i] = q
		weights[i] = BucketQuotas[b]
		capacity[i] = len(q)
	}

	selected := roundRobin(queues, Apportion(len(eligible), weights, capacity))
	ordered := balanceSubjects(selected)
	ordered = applyBoosts(ordered)

	for i := range ordered {
		ordered[i].PriorityIndex = i
	}
	return ordered
}

// balanceSubjects interleaves topics across subjects in equal shares,
// keeping the relative order within each subject.
func balanceSubjects(list []Prioritized) []Prioritized {
	var subjects []string
	bySubject := make(map[string][]Prioritized)
	for _, p := range list {
		if _, ok := bySubject[p.Subject]; !ok {
			subjects = append(subjects, p.Subject)
		}
		bySubject[p.Subject] = append(bySubject[p.Subject], p)
	}
	if len(subjects) < 2 {
		return list
	}

	queues := make([][]Prioritized, len(subjects))
	weights := make([]int, len(subjects))
	capacity := make([]int, len(subjects))
	for i, s := range subjects {
		queues[i] = bySubject[s]
		weights[i] = 1
		capacity[i] = len(queues[i])
	}
	return roundRobin(queues, Apportion(len(list), weights, capacity))
}

func applyBoosts(list []Prioritized) []Prioritized {
	out := make([]Prioritized, 0, len(list))
	for _, level := range []Boost{BoostMissed, BoostRerated, BoostNone} {
		for _, p := range list {
			if p.Boost == level {
				out = append(out, p)
			}
		}
	}
	return out
}
