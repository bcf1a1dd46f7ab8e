package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

// Insert appends a feedback record. Feedback is never updated in place; the
// latest record per query and video wins.
func (r *FeedbackRepo) Insert(ctx context.Context, f model.FeedbackEntry) error {
	raw, err := json.Marshal(f.RawSignals)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO feedback (query_id, video_id, feedback, composite_score, raw_signals, feedback_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.QueryID, f.VideoID, f.Feedback, f.CompositeScore, raw, f.FeedbackAt)
	return err
}

// Since returns feedback recorded at or after since in insertion order.
func (r *FeedbackRepo) Since(ctx context.Context, since time.Time) ([]model.FeedbackEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query_id, video_id, feedback, composite_score, raw_signals, feedback_at
		FROM feedback
		WHERE feedback_at >= $1
		ORDER BY feedback_at ASC, id ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.FeedbackEntry
	for rows.Next() {
		var f model.FeedbackEntry
		var raw []byte
		if err := rows.Scan(&f.QueryID, &f.VideoID, &f.Feedback, &f.CompositeScore, &raw, &f.FeedbackAt); err != nil {
			return nil, err
		}
		if err := decodeRawSignals(raw, &f); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

func (r *FeedbackRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE feedback_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// decodeRawSignals fills f.RawSignals from the raw_signals column. NULL and
// empty values leave the zero signals.
func decodeRawSignals(raw []byte, f *model.FeedbackEntry) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &f.RawSignals); err != nil {
		return fmt.Errorf("feedback %s/%s: decode raw_signals: %w", f.QueryID, f.VideoID, err)
	}
	return nil
}
