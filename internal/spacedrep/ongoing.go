package spacedrep

import (
	"time"
)

// OngoingTopic carries an unfinished cycle from a previous week.
type OngoingTopic struct {
	SessionsScheduled int       `json:"sessionsScheduled" yaml:"sessionsScheduled"`
	SessionsRequired  int       `json:"sessionsRequired" yaml:"sessionsRequired"`
	LastSessionDate   time.Time `json:"lastSessionDate" yaml:"lastSessionDate"`
}

// Complete reports whether the carried cycle has no sessions left.
func (o OngoingTopic) Complete() bool {
	return o.SessionsScheduled >= o.SessionsRequired
}

// SessionRecord is the minimal view of a scheduled session needed to
// carry a cycle forward.
type SessionRecord struct {
	TopicID       string
	ScheduledAt   time.Time
	SessionNumber int
	SessionTotal  int
}

// CarryForward derives the OngoingTopic entries for the week after the
// given sessions. Only cycles that are still incomplete are returned;
// entries in prior carry the cycles that saw no session this week.
func CarryForward(prior map[string]OngoingTopic, sessions []SessionRecord) map[string]OngoingTopic {
	out := make(map[string]OngoingTopic, len(prior))
	for id, o := range prior {
		if !o.Complete() {
			out[id] = o
		}
	}

	latest := make(map[string]SessionRecord)
	for _, s := range sessions {
		cur, ok := latest[s.TopicID]
		if !ok || s.SessionNumber > cur.SessionNumber ||
			(s.SessionNumber == cur.SessionNumber && s.ScheduledAt.After(cur.ScheduledAt)) {
			latest[s.TopicID] = s
		}
	}

	for id, s := range latest {
		o := OngoingTopic{
			SessionsScheduled: s.SessionNumber,
			SessionsRequired:  s.SessionTotal,
			LastSessionDate:   s.ScheduledAt,
		}
		if o.Complete() {
			delete(out, id)
			continue
		}
		out[id] = o
	}
	return out
}

// NextAvailable returns the earliest calendar day the next session of a
// carried cycle may start. Days are counted in loc; a nil loc keeps the
// location of LastSessionDate.
func (o OngoingTopic) NextAvailable(p Policy, loc *time.Location) time.Time {
	d := o.LastSessionDate
	if loc != nil {
		d = d.In(loc)
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return day.AddDate(0, 0, p.GapAfter(o.SessionsScheduled))
}
