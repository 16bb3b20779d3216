package repository

import (
	"testing"

	"github.com/ainohq/aino/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewAssessmentRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAssessmentRepository(pool)
	assert.NotNil(t, repo)
}

func TestRiskLevelsAtLeast(t *testing.T) {
	assert.Equal(t,
		[]string{"HIGH", "CRITICAL"},
		riskLevelsAtLeast(domain.RiskLevelHigh))
	assert.Equal(t,
		[]string{"LOW", "MEDIUM", "HIGH", "CRITICAL"},
		riskLevelsAtLeast(domain.RiskLevelLow))
	assert.Equal(t,
		[]string{"CRITICAL"},
		riskLevelsAtLeast(domain.RiskLevelCritical))
}
