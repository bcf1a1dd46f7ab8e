package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

type QueryRepo struct {
	pool *pgxpool.Pool
}

func NewQueryRepo(pool *pgxpool.Pool) *QueryRepo {
	return &QueryRepo{pool: pool}
}

// InsertBatch writes history entries in a single round trip. Re-inserting a
// known query ID is a no-op.
func (r *QueryRepo) InsertBatch(ctx context.Context, entries []model.QueryHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		top := e.TopVideos
		if top == nil {
			top = []string{}
		}
		batch.Queue(`
			INSERT INTO query_history (query_id, query, executed_at, result_count, top_videos)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (query_id) DO NOTHING`,
			e.QueryID, e.Query, e.ExecutedAt, e.ResultCount, top)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// Since returns history entries executed at or after since, oldest first.
func (r *QueryRepo) Since(ctx context.Context, since time.Time) ([]model.QueryHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query_id, query, executed_at, result_count, top_videos
		FROM query_history
		WHERE executed_at >= $1
		ORDER BY executed_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.QueryHistoryEntry
	for rows.Next() {
		var e model.QueryHistoryEntry
		if err := rows.Scan(&e.QueryID, &e.Query, &e.ExecutedAt, &e.ResultCount, &e.TopVideos); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *QueryRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM query_history WHERE executed_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
