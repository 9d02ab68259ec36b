package assign

import (
	"time"

	"github.com/abhisek/studyplan/internal/slots"
	"github.com/abhisek/studyplan/internal/spacedrep"
	"github.com/abhisek/studyplan/internal/topics"
)

// topicState is the per-run scheduling state of one topic.
type topicState struct {
	topic    topics.Prioritized
	policy   spacedrep.Policy
	required int
	// scheduled counts sessions of the cycle, including carried ones.
	scheduled int
	// next is the earliest start of the next session. It is only
	// meaningful while the cycle is incomplete.
	next    time.Time
	carried bool
}

func (s *topicState) remaining() int {
	return s.required - s.scheduled
}

func (s *topicState) done() bool {
	return s.scheduled >= s.required
}

// eligible reports whether the topic can take a session starting at t.
func (s *topicState) eligible(t time.Time, ignoreGap bool) bool {
	if s.done() {
		return false
	}
	return ignoreGap || !s.next.After(t)
}

// record books the next session at slotStart.
func (s *topicState) record(slotStart time.Time) {
	s.scheduled++
	if s.done() {
		s.next = time.Time{}
		return
	}
	s.next = slots.StartOfDay(slotStart).AddDate(0, 0, s.policy.GapAfter(s.scheduled))
}

// newStates seeds per-topic state. A carried cycle keeps the gap policy
// of its own length even when the topic's rating has since changed.
func newStates(list []topics.Prioritized, ongoing map[string]spacedrep.OngoingTopic, fresh map[string]bool, loc *time.Location) []*topicState {
	states := make([]*topicState, 0, len(list))
	for _, p := range list {
		st := &topicState{
			topic:    p,
			policy:   p.Policy(),
			required: p.SessionsRequired,
		}
		if o, ok := ongoing[p.ID]; ok && !fresh[p.ID] && !o.Complete() {
			if o.SessionsRequired > 0 {
				st.required = o.SessionsRequired
				if o.SessionsRequired != st.policy.SessionsRequired {
					if pol, ok := spacedrep.PolicyForSessions(o.SessionsRequired); ok {
						st.policy = pol
					}
				}
			}
			st.scheduled = min(max(o.SessionsScheduled, 0), st.required)
			st.next = o.NextAvailable(st.policy, loc)
			st.carried = true
		}
		states = append(states, st)
	}
	return states
}
