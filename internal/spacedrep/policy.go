package spacedrep

// SessionType labels what kind of study a session is.
type SessionType string

const (
	SessionRevision SessionType = "revision"
	SessionExam     SessionType = "exam"
)

// DefaultRating is applied to topics admitted without a confidence rating.
const DefaultRating = 3

// DefaultGapDays is used when a cycle has no gap configured for a session.
const DefaultGapDays = 1

// MinRating and MaxRating bound the confidence scale.
const (
	MinRating = 1
	MaxRating = 5
)

// Policy is the spaced-repetition cycle for one confidence rating.
type Policy struct {
	SessionsRequired int
	// GapDays[i] is the minimum number of calendar days between
	// session i+1 and session i+2.
	GapDays     []int
	SessionType SessionType
}

var policies = map[int]Policy{
	1: {SessionsRequired: 3, GapDays: []int{2, 3}, SessionType: SessionRevision},
	2: {SessionsRequired: 2, GapDays: []int{2}, SessionType: SessionRevision},
	3: {SessionsRequired: 1, GapDays: []int{0}, SessionType: SessionRevision},
	4: {SessionsRequired: 1, GapDays: []int{0}, SessionType: SessionExam},
}

// ClampRating maps any rating onto the 1-5 scale. Ratings of zero or
// below are treated as unrated and become DefaultRating.
func ClampRating(rating int) int {
	switch {
	case rating <= 0:
		return DefaultRating
	case rating > MaxRating:
		return MaxRating
	default:
		return rating
	}
}

// PolicyFor returns the cycle for a rating. Ratings of 4 and 5 share
// the exam policy.
func PolicyFor(rating int) Policy {
	r := ClampRating(rating)
	if r >= 4 {
		r = 4
	}
	p := policies[r]
	gaps := make([]int, len(p.GapDays))
	copy(gaps, p.GapDays)
	p.GapDays = gaps
	return p
}

// PolicyForSessions returns the revision cycle whose length is n. It
// reports false when no rating produces a cycle of that length.
func PolicyForSessions(n int) (Policy, bool) {
	for r := MinRating; r <= 4; r++ {
		if policies[r].SessionsRequired == n {
			return PolicyFor(r), true
		}
	}
	return Policy{}, false
}

// GapAfter returns the minimum calendar days required after the given
// session number (1-based) before the next one may start. It is never
// less than one day.
func (p Policy) GapAfter(session int) int {
	idx := session - 1
	gap := DefaultGapDays
	if idx >= 0 && idx < len(p.GapDays) {
		gap = p.GapDays[idx]
	}
	if gap < 1 {
		gap = 1
	}
	return gap
}
