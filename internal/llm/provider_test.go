package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", validNotes, false},
		{"missing required", `{"notes":[{"topic_id":"x"}]}`, true},
		{"wrong type", `{"notes":"none"}`, true},
		{"extra property", `{"notes":[],"extra":1}`, true},
		{"not json", `Sure! Here are your notes`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(notesSchema, json.RawMessage(tt.content))
			if tt.wantErr {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("err = %v, want ErrInvalidResponse", err)
				}
				if string(inv.Content) != tt.content {
					t.Errorf("Content = %s, want the raw response", inv.Content)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Errorf("nil schema: %v", err)
	}
}

func TestFinish_TruncatedStructuredOutput(t *testing.T) {
	req := Request{Schema: notesSchema}
	_, err := finish(req, json.RawMessage(`{"notes":[`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("err = %v, want ErrMaxTokensExceeded", err)
	}

	// Plain text may be truncated.
	resp, err := finish(Request{}, json.RawMessage(`partial`), newUsage(3, 4), "m", StopMaxTokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != StopMaxTokens || resp.Usage.TotalTokens != 7 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(validNotes), Usage: newUsage(10, 5)})
	m.AddResponse(MockResponse{Content: json.RawMessage(`{"notes":1}`)})

	req := NewRequest("system", "user", notesSchema, 100)
	resp, err := m.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if resp.Model != "mock" || resp.Usage.InputTokens != 10 {
		t.Errorf("resp = %+v", resp)
	}

	if _, err := m.Generate(context.Background(), req); err == nil {
		t.Error("second: expected schema error")
	}

	_, err = m.Generate(context.Background(), req)
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("empty queue: err = %v, want ErrProviderUnavailable", err)
	}
	if m.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", m.CallCount())
	}
	if m.Calls[0].Messages[0].Content != "user" || m.Calls[0].System != "system" {
		t.Errorf("recorded request = %+v", m.Calls[0])
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"gpt-mini", openaiModels, "gpt-4o-mini"},
		{"gemini-flash", geminiModels, "gemini-2.0-flash"},
		{"gemini-2.5-flash", geminiModels, "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q, want unknown", got)
	}
	ctx := WithPurpose(context.Background(), "rationale")
	if got := PurposeFrom(ctx); got != "rationale" {
		t.Errorf("PurposeFrom = %q, want rationale", got)
	}
}
