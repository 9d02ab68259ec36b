package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const llmRequestsTable = "llm_requests"

var llmRequestColumns = []string{
	"id", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "created_at",
}

// LLMRequest is the audit record of one LLM API call.
type LLMRequest struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// AppendLLMRequest records an LLM API call.
func (s *Store) AppendLLMRequest(ctx context.Context, r LLMRequest) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	success := 0
	if r.Success {
		success = 1
	}

	query, args := s.builder().Insert(llmRequestsTable).
		Columns(llmRequestColumns...).
		Values(
			uuid.NewString(), r.Provider, r.Model, r.Purpose, r.InputTokens, r.OutputTokens,
			r.LatencyMs, success, r.ErrorMessage, createdAt.UTC().Format(timeLayout),
		).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request: %w", err)
	}
	return nil
}

// LLMUsage sums token usage of recorded calls made at or after since.
func (s *Store) LLMUsage(ctx context.Context, since time.Time) (calls, inputTokens, outputTokens int, err error) {
	b := s.builder()
	query, args := b.Select(
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
	).
		From(b.Table(llmRequestsTable)).
		Where(entsql.GTE("created_at", since.UTC().Format(timeLayout))).
		Query()

	var rows entsql.Rows
	if err = s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, 0, 0, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err = rows.Scan(&calls, &inputTokens, &outputTokens); err != nil {
			return 0, 0, 0, fmt.Errorf("scan LLM usage: %w", err)
		}
	}
	return calls, inputTokens, outputTokens, rows.Err()
}
