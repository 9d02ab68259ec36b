package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/planner"
)

func testBlocks() []planner.ScheduledBlock {
	return []planner.ScheduledBlock{
		{Day: "monday", StartTime: "16:00", Subject: "Biology", TopicID: "bio-cells", TopicName: "Cell structure",
			Rating: 1, SessionNumber: 1, SessionTotal: 3, SessionLabel: "Session 1 of 3", AIRationale: "fixed-1"},
		{Day: "monday", StartTime: "16:30", Subject: "Maths", TopicID: "ma-alg", TopicName: "Algebra",
			Rating: 5, SessionNumber: 1, SessionTotal: 1, SessionLabel: "Exam practice", AIRationale: "fixed-2"},
		{Day: "wednesday", StartTime: "16:00", Subject: "Biology", TopicID: "bio-cells", TopicName: "Cell structure",
			Rating: 1, SessionNumber: 2, SessionTotal: 3, SessionLabel: "Session 2 of 3", AIRationale: "fixed-3"},
	}
}

func TestAnnotate_ReplacesRationale(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"notes":[
		{"topic_id":"bio-cells","note":"Start by labelling a cell diagram from memory."}
	]}`)})
	c := New(mock, DefaultConfig())

	blocks := testBlocks()
	got, err := c.Annotate(t.Context(), blocks)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	if got[0].AIRationale != "Start by labelling a cell diagram from memory." || got[2].AIRationale != got[0].AIRationale {
		t.Errorf("bio-cells rationale = %q / %q", got[0].AIRationale, got[2].AIRationale)
	}
	if got[1].AIRationale != "fixed-2" {
		t.Errorf("topic without note changed: %q", got[1].AIRationale)
	}
	if blocks[0].AIRationale != "fixed-1" {
		t.Error("input blocks were modified")
	}
}

func TestAnnotate_Request(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"notes":[]}`)})
	if _, err := New(mock, DefaultConfig()).Annotate(t.Context(), testBlocks()); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != NotesSchema {
		t.Error("request does not use NotesSchema")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"id=bio-cells", "id=ma-alg", "confidence 1/5", "wednesday 16:00 (Session 2 of 3)", "at most 30 words"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
	if strings.Count(msg, "id=bio-cells") != 1 {
		t.Error("topic listed more than once")
	}
}

func TestAnnotate_FailureKeepsRationale(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"schema violation", llm.MockResponse{Content: json.RawMessage(`{"notes":"none"}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			got, err := c.Annotate(t.Context(), testBlocks())
			if err == nil {
				t.Fatal("expected error")
			}
			for i, b := range got {
				if b.AIRationale != testBlocks()[i].AIRationale {
					t.Errorf("block %d rationale = %q, want unchanged", i, b.AIRationale)
				}
			}
		})
	}
}

func TestAnnotate_Empty(t *testing.T) {
	mock := llm.NewMockProvider()
	got, err := New(mock, DefaultConfig()).Annotate(t.Context(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider called for an empty week")
	}
}

func TestAnnotate_EveryTopic(t *testing.T) {
	ids := regexp.MustCompile(`id=(\S+)`)
	mock := &llm.MockProvider{Reply: func(req llm.Request) llm.MockResponse {
		var notes []string
		for _, m := range ids.FindAllStringSubmatch(req.Messages[0].Content, -1) {
			notes = append(notes, fmt.Sprintf(`{"topic_id":%q,"note":"Note for %s."}`, m[1], m[1]))
		}
		return llm.MockResponse{Content: json.RawMessage(`{"notes":[` + strings.Join(notes, ",") + `]}`)}
	}}

	got, err := New(mock, DefaultConfig()).Annotate(t.Context(), testBlocks())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	for _, b := range got {
		if want := "Note for " + b.TopicID + "."; b.AIRationale != want {
			t.Errorf("%s rationale = %q, want %q", b.TopicID, b.AIRationale, want)
		}
	}
}
