// Package assign places prioritized topics into a week of study slots.
package assign

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/slots"
	"github.com/abhisek/studyplan/internal/spacedrep"
	"github.com/abhisek/studyplan/internal/topics"
)

// ClusterSize is the number of consecutive slots that make up one study
// sitting. Shorter runs are dropped.
const ClusterSize = 3

// MaxSkip is the largest number of slots left open between clusters.
const MaxSkip = 2

// Rand is the random source used to space clusters apart.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// Options tunes a single assignment run.
type Options struct {
	// Ongoing seeds cycles started in earlier weeks, keyed by topic ID.
	Ongoing map[string]spacedrep.OngoingTopic
	// Restart lists topics whose ongoing entry is ignored so a new cycle
	// starts from their current rating.
	Restart []string
	// AllowGapFallback lets a slot that no topic may take under the
	// gap rule go to any topic with sessions left.
	AllowGapFallback bool
	// Rand picks how many slots to leave open after each cluster.
	// Defaults to the global math/rand/v2 source.
	Rand Rand
}

// Assignment is one session placed into a slot.
type Assignment struct {
	Slot          slots.Slot
	Topic         topics.Prioritized
	SessionNumber int
	SessionTotal  int
	// Continued is set when the cycle began in an earlier week.
	Continued bool
}

// Assign fills the week's slots with sessions of the given topics, which
// must be in priority order. Slots that nothing can take stay open.
// The result is ordered by start time.
func Assign(list []topics.Prioritized, week []slots.Slot, opts Options) []Assignment {
	if len(list) == 0 || len(week) == 0 {
		return nil
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = defaultRand{}
	}

	fresh := make(map[string]bool, len(opts.Restart))
	for _, id := range opts.Restart {
		fresh[id] = true
	}
	states := newStates(list, opts.Ongoing, fresh, week[0].Start.Location())

	need, active := 0, 0
	for _, st := range states {
		if r := st.remaining(); r > 0 {
			need += r
			active++
		}
	}
	if active == 0 {
		return nil
	}
	// Runs can never be longer than the number of topics with work left,
	// since a topic appears at most once per day.
	minRun := min(ClusterSize, active)

	days := groupByDay(week)
	sizes := make([]int, len(days))
	for i, d := range days {
		sizes[i] = len(d)
	}
	budgets := dayBudgets(need, sizes, minRun)

	var out []Assignment
	for i, d := range days {
		if budgets[i] == 0 {
			continue
		}
		f := &dayFill{
			states:  states,
			minRun:  minRun,
			today:   make(map[string]bool),
			rnd:     rnd,
			relaxed: opts.AllowGapFallback,
		}
		out = append(out, f.fill(d, budgets[i])...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot.Start.Before(out[j].Slot.Start)
	})
	return out
}

// groupByDay splits slots into calendar days, each in start order.
func groupByDay(week []slots.Slot) [][]slots.Slot {
	sorted := make([]slots.Slot, len(week))
	copy(sorted, week)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var days [][]slots.Slot
	var current time.Time
	for _, s := range sorted {
		day := slots.StartOfDay(s.Start)
		if len(days) == 0 || !day.Equal(current) {
			days = append(days, nil)
			current = day
		}
		days[len(days)-1] = append(days[len(days)-1], s)
	}
	return days
}

type placement struct {
	assignment Assignment
	state      *topicState
	prevNext   time.Time
}

// dayFill is the state of one day's fill loop.
type dayFill struct {
	states  []*topicState
	minRun  int
	today   map[string]bool
	rnd     Rand
	relaxed bool

	kept []Assignment
	run  []placement
}

func (f *dayFill) fill(day []slots.Slot, target int) []Assignment {
	for i := 0; i < len(day); {
		filled := len(f.kept) + len(f.run)
		if filled >= target && (len(f.run) == 0 || len(f.run) >= f.minRun) {
			break
		}
		// Only start a run when it can reach full length.
		if len(f.run) == 0 && len(day)-i < f.minRun {
			break
		}

		slot := day[i]
		i++
		st := f.pick(slot)
		if st == nil {
			f.closeRun()
			continue
		}
		f.place(slot, st)

		if len(f.run) == ClusterSize {
			f.closeRun()
			i += 1 + f.rnd.IntN(MaxSkip)
		}
	}
	f.closeRun()
	return f.kept
}

// pick returns the best candidate for slot, or nil.
func (f *dayFill) pick(slot slots.Slot) *topicState {
	candidates := f.candidates(slot, false)
	if len(candidates) == 0 && f.relaxed {
		candidates = f.candidates(slot, true)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.topic.PriorityIndex != b.topic.PriorityIndex {
			return a.topic.PriorityIndex < b.topic.PriorityIndex
		}
		if a.scheduled != b.scheduled {
			return a.scheduled < b.scheduled
		}
		return a.topic.OrderIndex < b.topic.OrderIndex
	})
	return candidates[0]
}

func (f *dayFill) candidates(slot slots.Slot, ignoreGap bool) []*topicState {
	var out []*topicState
	for _, st := range f.states {
		if f.today[st.topic.ID] {
			continue
		}
		if st.eligible(slot.Start, ignoreGap) {
			out = append(out, st)
		}
	}
	return out
}

func (f *dayFill) place(slot slots.Slot, st *topicState) {
	prev := st.next
	st.record(slot.Start)
	f.today[st.topic.ID] = true
	f.run = append(f.run, placement{
		assignment: Assignment{
			Slot:          slot,
			Topic:         st.topic,
			SessionNumber: st.scheduled,
			SessionTotal:  st.required,
			Continued:     st.carried,
		},
		state:    st,
		prevNext: prev,
	})
}

// closeRun keeps the current run if it is long enough and reverts it
// otherwise, freeing its topics for later slots and days.
func (f *dayFill) closeRun() {
	if len(f.run) >= f.minRun {
		for _, p := range f.run {
			f.kept = append(f.kept, p.assignment)
		}
		f.run = f.run[:0]
		return
	}
	for j := len(f.run) - 1; j >= 0; j-- {
		p := f.run[j]
		p.state.scheduled--
		p.state.next = p.prevNext
		delete(f.today, p.state.topic.ID)
	}
	f.run = f.run[:0]
}
