package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/spacedrep"
)

// Timestamps are stored as UTC RFC 3339 text so they sort lexically.
const timeLayout = time.RFC3339

// SaveWeek replaces the stored blocks for weekStart (YYYY-MM-DD) with
// blocks and returns the ID of the saved plan.
func (s *Store) SaveWeek(ctx context.Context, weekStart string, blocks []planner.ScheduledBlock) (string, error) {
	planID := uuid.NewString()
	createdAt := time.Now().UTC().Format(timeLayout)

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}

	query, args := s.builder().Delete(blocksTable).
		Where(entsql.EQ("week_start", weekStart)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("clear week %s: %w", weekStart, err)
	}

	for _, b := range blocks {
		query, args := s.builder().Insert(blocksTable).
			Columns(blockColumns...).
			Values(
				uuid.NewString(), planID, weekStart, b.Day, b.StartTime, b.DurationMinutes,
				b.Subject, b.TopicID, b.TopicName, b.ExamBoard, b.Rating,
				b.ScheduledAt.UTC().Format(timeLayout), b.EndAt.UTC().Format(timeLayout),
				b.SessionNumber, b.SessionTotal,
				string(b.SessionType), b.SessionLabel, b.AIRationale, createdAt,
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("insert block %s: %w", b.TopicID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit week %s: %w", weekStart, err)
	}
	return planID, nil
}

// WeekBlocks returns the stored blocks of one week in start order.
// It returns ErrNotFound when the week has no blocks.
func (s *Store) WeekBlocks(ctx context.Context, weekStart string) ([]planner.ScheduledBlock, error) {
	b := s.builder()
	sel := b.Select(blockReadColumns...).
		From(b.Table(blocksTable)).
		Where(entsql.EQ("week_start", weekStart)).
		OrderBy("scheduled_at")
	blocks, err := s.queryBlocks(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("week %s: %w", weekStart, ErrNotFound)
	}
	return blocks, nil
}

// OngoingTopics replays every stored week before weekStart and returns
// the cycles still incomplete going into that week.
func (s *Store) OngoingTopics(ctx context.Context, weekStart string) (map[string]spacedrep.OngoingTopic, error) {
	b := s.builder()
	sel := b.Select(blockReadColumns...).
		From(b.Table(blocksTable)).
		Where(entsql.LT("week_start", weekStart)).
		OrderBy("week_start", "scheduled_at")
	blocks, err := s.queryBlocks(ctx, sel)
	if err != nil {
		return nil, err
	}

	ongoing := map[string]spacedrep.OngoingTopic{}
	for start := 0; start < len(blocks); {
		end := start
		for end < len(blocks) && blocks[end].WeekStart == blocks[start].WeekStart {
			end++
		}
		ongoing = planner.CarryForward(ongoing, blocks[start:end])
		start = end
	}
	return ongoing, nil
}

// queryBlocks scans rows selected with blockReadColumns.
func (s *Store) queryBlocks(ctx context.Context, sel *entsql.Selector) ([]planner.ScheduledBlock, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var out []planner.ScheduledBlock
	for rows.Next() {
		var (
			b                  planner.ScheduledBlock
			scheduledAt, endAt string
			sessionType        string
		)
		if err := rows.Scan(
			&b.WeekStart, &b.Day, &b.StartTime, &b.DurationMinutes,
			&b.Subject, &b.TopicID, &b.TopicName, &b.ExamBoard, &b.Rating,
			&scheduledAt, &endAt, &b.SessionNumber, &b.SessionTotal,
			&sessionType, &b.SessionLabel, &b.AIRationale,
		); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}

		var err error
		if b.ScheduledAt, err = time.Parse(timeLayout, scheduledAt); err != nil {
			return nil, fmt.Errorf("parse scheduled_at: %w", err)
		}
		if b.EndAt, err = time.Parse(timeLayout, endAt); err != nil {
			return nil, fmt.Errorf("parse end_at: %w", err)
		}
		b.SessionType = spacedrep.SessionType(sessionType)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return out, nil
}
