package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	topicsTable = "topics"
	blocksTable = "scheduled_blocks"
)

var topicColumns = []string{"id", "title", "subject", "exam_board", "order_index", "level"}

var blockColumns = []string{
	"id", "plan_id", "week_start", "day", "start_time", "duration_minutes",
	"subject", "topic_id", "topic_name", "exam_board", "rating",
	"scheduled_at", "end_at", "session_number", "session_total",
	"session_type", "session_label", "ai_rationale", "created_at",
}

// blockReadColumns are the columns that map onto a ScheduledBlock.
var blockReadColumns = blockColumns[2:18]

// migrate creates the tables and indexes when missing.
func (s *Store) migrate(ctx context.Context) error {
	b := s.builder()
	text := func(name string) *entsql.ColumnBuilder {
		return entsql.Column(name).Type("TEXT").Attr("NOT NULL DEFAULT ''")
	}
	integer := func(name string) *entsql.ColumnBuilder {
		return entsql.Column(name).Type("INTEGER").Attr("NOT NULL DEFAULT 0")
	}

	tables := []*entsql.TableBuilder{
		b.CreateTable(topicsTable).IfNotExists().
			Columns(
				entsql.Column("id").Type("TEXT").Attr("NOT NULL"),
				text("title"),
				text("subject"),
				text("exam_board"),
				integer("order_index"),
				integer("level"),
			).
			PrimaryKey("id"),
		b.CreateTable(blocksTable).IfNotExists().
			Columns(
				entsql.Column("id").Type("TEXT").Attr("NOT NULL"),
				text("plan_id"),
				text("week_start"),
				text("day"),
				text("start_time"),
				integer("duration_minutes"),
				text("subject"),
				text("topic_id"),
				text("topic_name"),
				text("exam_board"),
				integer("rating"),
				text("scheduled_at"),
				text("end_at"),
				integer("session_number"),
				integer("session_total"),
				text("session_type"),
				text("session_label"),
				text("ai_rationale"),
				text("created_at"),
			).
			PrimaryKey("id"),
		b.CreateTable(llmRequestsTable).IfNotExists().
			Columns(
				entsql.Column("id").Type("TEXT").Attr("NOT NULL"),
				text("provider"),
				text("model"),
				text("purpose"),
				integer("input_tokens"),
				integer("output_tokens"),
				integer("latency_ms"),
				integer("success"),
				text("error_message"),
				text("created_at"),
			).
			PrimaryKey("id"),
	}
	for _, t := range tables {
		query, args := t.Query()
		if err := s.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_topics_subject ON topics (subject, order_index)",
		"CREATE INDEX IF NOT EXISTS idx_blocks_week ON scheduled_blocks (week_start, scheduled_at)",
	}
	for _, q := range indexes {
		if err := s.drv.Exec(ctx, q, []any{}, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
