// Package coach rewrites the rationale of planned sessions with short
// study notes from an LLM.
package coach

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/planner"
)

// Coach annotates planned weeks.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Coach.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg}
}

type notesOutput struct {
	Notes []struct {
		TopicID string `json:"topic_id"`
		Note    string `json:"note"`
	} `json:"notes"`
}

// Annotate returns a copy of blocks whose AIRationale is replaced by the
// generated note for its topic. Topics the model skipped keep their
// rationale. On error the blocks are returned unchanged with the error.
func (c *Coach) Annotate(ctx context.Context, blocks []planner.ScheduledBlock) ([]planner.ScheduledBlock, error) {
	out := make([]planner.ScheduledBlock, len(blocks))
	copy(out, blocks)
	if len(blocks) == 0 {
		return out, nil
	}

	ctx = llm.WithPurpose(ctx, "rationale")
	topics := summarize(blocks)
	req := llm.NewRequest(systemPrompt, buildUserMessage(topics, c.cfg.MaxWords), NotesSchema, c.cfg.MaxTokens)
	req.Temperature = c.cfg.Temperature

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return out, fmt.Errorf("study notes: %w", err)
	}

	var parsed notesOutput
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return out, fmt.Errorf("parse study notes: %w", err)
	}

	notes := make(map[string]string, len(parsed.Notes))
	for _, n := range parsed.Notes {
		if n.Note != "" {
			notes[n.TopicID] = n.Note
		}
	}
	if len(notes) < len(topics) {
		logger.Debug("study notes incomplete", "topics", len(topics), "notes", len(notes))
	}

	for i := range out {
		if note, ok := notes[out[i].TopicID]; ok {
			out[i].AIRationale = note
		}
	}
	return out, nil
}
