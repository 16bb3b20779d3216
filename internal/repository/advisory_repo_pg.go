package repository

import (
	"context"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdvisoryRepository interface {
	// Upsert inserts or refreshes an advisory keyed on
	// (source, airport, kind, active_from) and reports whether a new row was
	// created, so pollers can tell new events from re-observations.
	Upsert(ctx context.Context, a *domain.Advisory) (created bool, err error)
	ListActive(ctx context.Context, airport string, at time.Time) ([]domain.Advisory, error)
	Resolve(ctx context.Context, id string, until time.Time) error
}

type PGAdvisoryRepository struct {
	db *pgxpool.Pool
}

func NewAdvisoryRepository(db *pgxpool.Pool) AdvisoryRepository {
	return &PGAdvisoryRepository{db: db}
}

const advisoryColumns = `id, source, airport, kind, severity, avg_delay_minutes, reason, active_from, active_until, created_at`

func (r *PGAdvisoryRepository) Upsert(ctx context.Context, a *domain.Advisory) (bool, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO advisories (id, source, airport, kind, severity, avg_delay_minutes, reason, active_from, active_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (source, airport, kind, active_from) DO UPDATE SET
			severity = EXCLUDED.severity,
			avg_delay_minutes = EXCLUDED.avg_delay_minutes,
			reason = EXCLUDED.reason,
			active_until = EXCLUDED.active_until
		RETURNING id, created_at, (xmax = 0)`,
		a.ID, a.Source, a.Airport, a.Kind, a.Severity, a.AvgDelayMinutes, a.Reason, a.ActiveFrom, a.ActiveUntil)

	var created bool
	if err := row.Scan(&a.ID, &a.CreatedAt, &created); err != nil {
		return false, err
	}
	return created, nil
}

func (r *PGAdvisoryRepository) ListActive(ctx context.Context, airport string, at time.Time) ([]domain.Advisory, error) {
	rows, err := r.db.Query(ctx, `SELECT `+advisoryColumns+` FROM advisories
		WHERE airport=$1 AND active_from <= $2 AND (active_until IS NULL OR active_until > $2)
		ORDER BY active_from DESC`, airport, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	advisories := make([]domain.Advisory, 0)
	for rows.Next() {
		a, err := scanAdvisory(rows)
		if err != nil {
			return nil, err
		}
		advisories = append(advisories, *a)
	}
	return advisories, rows.Err()
}

func (r *PGAdvisoryRepository) Resolve(ctx context.Context, id string, until time.Time) error {
	cmd, err := r.db.Exec(ctx, `UPDATE advisories SET active_until=$1 WHERE id=$2 AND active_until IS NULL`, until, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAdvisory(row pgx.Row) (*domain.Advisory, error) {
	var a domain.Advisory
	if err := row.Scan(&a.ID, &a.Source, &a.Airport, &a.Kind, &a.Severity, &a.AvgDelayMinutes, &a.Reason, &a.ActiveFrom, &a.ActiveUntil, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

var _ AdvisoryRepository = (*PGAdvisoryRepository)(nil)
