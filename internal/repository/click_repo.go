package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

type ClickRepo struct {
	pool *pgxpool.Pool
}

func NewClickRepo(pool *pgxpool.Pool) *ClickRepo {
	return &ClickRepo{pool: pool}
}

func (r *ClickRepo) Insert(ctx context.Context, e model.ClickEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO click_events (query_id, video_id, clicked_rank, clicked_at)
		VALUES ($1, $2, $3, $4)`,
		e.QueryID, e.VideoID, e.ClickedRank, e.ClickedAt)
	return err
}

// Since returns click events at or after since, oldest first.
func (r *ClickRepo) Since(ctx context.Context, since time.Time) ([]model.ClickEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query_id, video_id, clicked_rank, clicked_at
		FROM click_events
		WHERE clicked_at >= $1
		ORDER BY clicked_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.ClickEvent
	for rows.Next() {
		var e model.ClickEvent
		if err := rows.Scan(&e.QueryID, &e.VideoID, &e.ClickedRank, &e.ClickedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *ClickRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM click_events WHERE clicked_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
