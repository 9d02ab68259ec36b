package spacedrep

import (
	"testing"
	"time"
)

func TestCarryForward(t *testing.T) {
	mon := time.Date(2026, 10, 26, 17, 0, 0, 0, time.UTC)

	prior := map[string]OngoingTopic{
		"idle":     {SessionsScheduled: 1, SessionsRequired: 2, LastSessionDate: mon.AddDate(0, 0, -7)},
		"finished": {SessionsScheduled: 2, SessionsRequired: 2, LastSessionDate: mon.AddDate(0, 0, -7)},
	}
	sessions := []SessionRecord{
		{TopicID: "a", ScheduledAt: mon, SessionNumber: 1, SessionTotal: 3},
		{TopicID: "a", ScheduledAt: mon.AddDate(0, 0, 2), SessionNumber: 2, SessionTotal: 3},
		{TopicID: "b", ScheduledAt: mon, SessionNumber: 1, SessionTotal: 1},
	}

	got := CarryForward(prior, sessions)

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	a, ok := got["a"]
	if !ok {
		t.Fatal("expected entry for topic a")
	}
	if a.SessionsScheduled != 2 || a.SessionsRequired != 3 {
		t.Errorf("a = %+v, want 2 of 3", a)
	}
	if !a.LastSessionDate.Equal(mon.AddDate(0, 0, 2)) {
		t.Errorf("a.LastSessionDate = %v, want %v", a.LastSessionDate, mon.AddDate(0, 0, 2))
	}
	if _, ok := got["b"]; ok {
		t.Error("completed cycle b should not carry forward")
	}
	if _, ok := got["idle"]; !ok {
		t.Error("incomplete prior cycle should carry forward")
	}
	if _, ok := got["finished"]; ok {
		t.Error("completed prior cycle should not carry forward")
	}
}

func TestNextAvailable(t *testing.T) {
	last := time.Date(2026, 10, 28, 19, 30, 0, 0, time.UTC)
	o := OngoingTopic{SessionsScheduled: 1, SessionsRequired: 3, LastSessionDate: last}

	got := o.NextAvailable(PolicyFor(1), nil)
	want := time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", got, want)
	}
}

func TestNextAvailable_CountsDaysInLocation(t *testing.T) {
	sydney := time.FixedZone("AEDT", 11*60*60)
	// Saturday 09:30 in Sydney is still Friday in UTC.
	last := time.Date(2026, 10, 31, 9, 30, 0, 0, sydney).UTC()
	o := OngoingTopic{SessionsScheduled: 2, SessionsRequired: 3, LastSessionDate: last}

	got := o.NextAvailable(PolicyFor(1), sydney)
	want := time.Date(2026, 11, 3, 0, 0, 0, 0, sydney)
	if !got.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", got, want)
	}

	utc := o.NextAvailable(PolicyFor(1), nil)
	if want := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC); !utc.Equal(want) {
		t.Errorf("NextAvailable without location = %v, want %v", utc, want)
	}
}
