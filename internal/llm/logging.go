package llm

import (
	"context"
	"time"

	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/store"
)

// Recorder stores an audit record per LLM call. *store.Store implements it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, r store.LLMRequest) error
}

// LoggingProvider records every call to the log and, when set, a Recorder.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder Recorder
}

// WithLogging wraps p. rec may be nil.
func WithLogging(p Provider, provider string, rec Recorder) Provider {
	return &LoggingProvider{inner: p, provider: provider, recorder: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	rec := store.LLMRequest{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		CreatedAt: start,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
		logger.Warn("llm request failed", "provider", rec.Provider, "model", rec.Model, "purpose", rec.Purpose, "err", err)
	} else {
		logger.Debug("llm request", "provider", rec.Provider, "model", rec.Model, "purpose", rec.Purpose,
			"input_tokens", rec.InputTokens, "output_tokens", rec.OutputTokens, "latency_ms", rec.LatencyMs)
	}

	if l.recorder != nil {
		// The call's outcome stands even if the audit write fails.
		if recErr := l.recorder.AppendLLMRequest(ctx, rec); recErr != nil {
			logger.Warn("record llm request", "err", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
