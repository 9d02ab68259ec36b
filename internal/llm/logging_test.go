package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/studyplan/internal/store"
)

type fakeRecorder struct {
	records []store.LLMRequest
	err     error
}

func (f *fakeRecorder) AppendLLMRequest(_ context.Context, r store.LLMRequest) error {
	f.records = append(f.records, r)
	return f.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	rec := &fakeRecorder{}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(validNotes), Usage: newUsage(12, 8)})
	p := WithLogging(mock, ProviderMock, rec)

	ctx := WithPurpose(context.Background(), "rationale")
	if _, err := p.Generate(ctx, NewRequest("", "hi", notesSchema, 64)); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	r := rec.records[0]
	if !r.Success || r.Purpose != "rationale" || r.Provider != ProviderMock || r.Model != "mock" {
		t.Errorf("record = %+v", r)
	}
	if r.InputTokens != 12 || r.OutputTokens != 8 {
		t.Errorf("tokens = %d/%d, want 12/8", r.InputTokens, r.OutputTokens)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	rec := &fakeRecorder{}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	p := WithLogging(mock, ProviderMock, rec)

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
	if len(rec.records) != 1 || rec.records[0].Success || rec.records[0].ErrorMessage == "" {
		t.Errorf("records = %+v", rec.records)
	}
	if rec.records[0].Purpose != "unknown" {
		t.Errorf("Purpose = %q, want unknown", rec.records[0].Purpose)
	}
}

func TestLogging_RecorderErrorIgnored(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := WithLogging(mock, ProviderMock, rec).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("recorder failure leaked into Generate: %v", err)
	}
}

func TestLogging_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := WithLogging(mock, ProviderMock, nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}
