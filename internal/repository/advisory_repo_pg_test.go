package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewAdvisoryRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAdvisoryRepository(pool)
	assert.NotNil(t, repo)
}
