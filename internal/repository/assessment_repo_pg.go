package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *domain.Assessment) error
	GetByID(ctx context.Context, id string) (*domain.Assessment, error)
	ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error)
	ExpireBefore(ctx context.Context, deadline time.Time) (int64, error)
}

type PGAssessmentRepository struct {
	db *pgxpool.Pool
}

func NewAssessmentRepository(db *pgxpool.Pool) AssessmentRepository {
	return &PGAssessmentRepository{db: db}
}

const assessmentColumns = `id, arrival_flight_id, departure_flight_id, airport, connection_minutes, buffer_minutes, success_probability, risk_level, risk_factors, model_version, assessed_at, expires_at`

func (r *PGAssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	factors, err := json.Marshal(a.RiskFactors)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO assessments (id, arrival_flight_id, departure_flight_id, airport, connection_minutes, buffer_minutes, success_probability, risk_level, risk_factors, model_version, assessed_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.ArrivalFlightID, a.DepartureFlightID, a.Airport, a.ConnectionMinutes, a.BufferMinutes,
		a.SuccessProbability, a.RiskLevel, factors, a.ModelVersion, a.AssessedAt, a.ExpiresAt)
	return err
}

func (r *PGAssessmentRepository) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id=$1`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAtRisk returns unexpired assessments at or above minRisk, worst first.
func (r *PGAssessmentRepository) ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+assessmentColumns+` FROM assessments
		WHERE airport=$1 AND expires_at > now()
		AND array_position($2::text[], risk_level) IS NOT NULL
		ORDER BY success_probability ASC`, airport, riskLevelsAtLeast(minRisk))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := make([]domain.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}

func (r *PGAssessmentRepository) ExpireBefore(ctx context.Context, deadline time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM assessments WHERE expires_at <= $1`, deadline)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func riskLevelsAtLeast(min domain.RiskLevel) []string {
	all := []domain.RiskLevel{domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh, domain.RiskLevelCritical}
	out := make([]string, 0, len(all))
	for _, l := range all {
		if l.AtLeast(min) {
			out = append(out, string(l))
		}
	}
	return out
}

func scanAssessment(row pgx.Row) (*domain.Assessment, error) {
	var a domain.Assessment
	var factors []byte
	if err := row.Scan(&a.ID, &a.ArrivalFlightID, &a.DepartureFlightID, &a.Airport, &a.ConnectionMinutes, &a.BufferMinutes, &a.SuccessProbability, &a.RiskLevel, &factors, &a.ModelVersion, &a.AssessedAt, &a.ExpiresAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(factors, &a.RiskFactors); err != nil {
		return nil, err
	}
	return &a, nil
}

var _ AssessmentRepository = (*PGAssessmentRepository)(nil)
