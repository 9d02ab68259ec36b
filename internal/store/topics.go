package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/curriculum"
)

// UpsertTopics inserts or updates catalog topics by ID.
func (s *Store) UpsertTopics(ctx context.Context, topics []curriculum.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, t := range topics {
		query, args := s.builder().Insert(topicsTable).
			Columns(topicColumns...).
			Values(t.ID, t.Title, t.Subject, t.ExamBoard, t.OrderIndex, int(t.Level)).
			OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert topic %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit topics: %w", err)
	}
	return nil
}

// LoadTopics returns the schedulable topics of the given subjects,
// ordered by subject (as requested) then curriculum order.
func (s *Store) LoadTopics(ctx context.Context, subjects []string) ([]curriculum.Topic, error) {
	if len(subjects) == 0 {
		return nil, nil
	}
	args := make([]any, len(subjects))
	for i, subj := range subjects {
		args[i] = subj
	}

	b := s.builder()
	sel := b.Select(topicColumns...).
		From(b.Table(topicsTable)).
		Where(entsql.In("subject", args...))
	all, err := s.queryTopics(ctx, sel)
	if err != nil {
		return nil, err
	}
	return curriculum.SelectSchedulable(all, subjects), nil
}

// ListTopics returns every stored topic, optionally limited to one
// subject, ordered by subject then curriculum order.
func (s *Store) ListTopics(ctx context.Context, subject string) ([]curriculum.Topic, error) {
	b := s.builder()
	sel := b.Select(topicColumns...).From(b.Table(topicsTable))
	if subject != "" {
		sel.Where(entsql.EQ("subject", subject))
	}
	sel.OrderBy("subject", "order_index", "id")
	return s.queryTopics(ctx, sel)
}

func (s *Store) queryTopics(ctx context.Context, sel *entsql.Selector) ([]curriculum.Topic, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var out []curriculum.Topic
	for rows.Next() {
		var (
			t     curriculum.Topic
			level int
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Subject, &t.ExamBoard, &t.OrderIndex, &level); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		t.Level = curriculum.TopicLevel(level)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return out, nil
}
