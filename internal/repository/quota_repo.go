package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// DateLayout is the YYYY-MM-DD form used for quota days.
const DateLayout = "2006-01-02"

type QuotaRepo struct {
	pool *pgxpool.Pool
}

func NewQuotaRepo(pool *pgxpool.Pool) *QuotaRepo {
	return &QuotaRepo{pool: pool}
}

// Increment adds units to day's total atomically and returns the new total.
func (r *QuotaRepo) Increment(ctx context.Context, day time.Time, units int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quota_log (day, units_used) VALUES ($1, $2)
		ON CONFLICT (day) DO UPDATE SET units_used = quota_log.units_used + EXCLUDED.units_used
		RETURNING units_used`,
		day.UTC().Format(DateLayout), units).Scan(&total)
	return total, err
}

// Get returns units used on day, 0 when nothing was logged.
func (r *QuotaRepo) Get(ctx context.Context, day time.Time) (int, error) {
	var units int
	err := r.pool.QueryRow(ctx, `SELECT units_used FROM quota_log WHERE day = $1`,
		day.UTC().Format(DateLayout)).Scan(&units)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return units, err
}

// Since returns quota entries for days on or after since.
func (r *QuotaRepo) Since(ctx context.Context, since time.Time) ([]model.QuotaLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(day, 'YYYY-MM-DD'), units_used
		FROM quota_log
		WHERE day >= $1
		ORDER BY day ASC`, since.UTC().Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.QuotaLogEntry
	for rows.Next() {
		var e model.QuotaLogEntry
		if err := rows.Scan(&e.Date, &e.UnitsUsed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *QuotaRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quota_log WHERE day < $1`, cutoff.UTC().Format(DateLayout))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
