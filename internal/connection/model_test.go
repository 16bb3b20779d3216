package connection

import (
	"testing"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comfortableConnection(t *testing.T) domain.Connection {
	t.Helper()
	base := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	dep := departureAt(base.Add(3 * time.Hour))
	conn, err := Pair(arr, dep)
	require.NoError(t, err)
	return conn
}

func TestModel_ComfortableConnectionScoresHigh(t *testing.T) {
	conn := comfortableConnection(t)
	model := NewModel()

	prob := model.Score(Features(&conn, nil))

	assert.Greater(t, prob, 0.9)
	assert.LessOrEqual(t, prob, 1.0)
}

func TestModel_NegativeBufferScoresLow(t *testing.T) {
	base := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	arr.DelayMinutes = 45
	actual := base.Add(45 * time.Minute)
	arr.ActualTime = &actual
	dep := departureAt(base.Add(70 * time.Minute))

	conn, err := Pair(arr, dep)
	require.NoError(t, err)
	require.Negative(t, conn.BufferMinutes)

	prob := NewModel().Score(Features(&conn, nil))
	assert.Less(t, prob, 0.5)
	assert.GreaterOrEqual(t, prob, 0.0)
}

func TestModel_BadWeatherLowersScore(t *testing.T) {
	conn := comfortableConnection(t)
	model := NewModel()

	clear := model.Score(Features(&conn, &domain.WeatherReport{
		Station:  "EGLL",
		Category: domain.CategoryVFR,
	}))
	storm := model.Score(Features(&conn, &domain.WeatherReport{
		Station:         "EGLL",
		Category:        domain.CategoryLIFR,
		WindGustKt:      45,
		VisibilityMiles: 0.5,
	}))

	assert.Less(t, storm, clear)
}

func TestModel_TerminalTransferLowersScore(t *testing.T) {
	conn := comfortableConnection(t)
	model := NewModel()
	same := model.Score(Features(&conn, nil))

	conn.Departure.Terminal = "T5"
	transfer := model.Score(Features(&conn, nil))

	assert.Less(t, transfer, same)
}

func TestClassify_Bands(t *testing.T) {
	assert.Equal(t, domain.RiskLevelCritical, Classify(0.2, 10))
	assert.Equal(t, domain.RiskLevelHigh, Classify(0.5, 10))
	assert.Equal(t, domain.RiskLevelMedium, Classify(0.7, 10))
	assert.Equal(t, domain.RiskLevelLow, Classify(0.95, 10))
}

func TestClassify_NegativeBufferNeverBelowHigh(t *testing.T) {
	assert.Equal(t, domain.RiskLevelHigh, Classify(0.95, -5))
	// An already-critical score stays critical.
	assert.Equal(t, domain.RiskLevelCritical, Classify(0.1, -5))
}

func TestFeatures_RiskFactors(t *testing.T) {
	base := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	arr.DelayMinutes = 25
	dep := departureAt(base.Add(80 * time.Minute))
	dep.Terminal = "T5"

	conn, err := Pair(arr, dep)
	require.NoError(t, err)

	fv := Features(&conn, &domain.WeatherReport{Category: domain.CategoryIFR})
	factors := fv.RiskFactors()

	assert.True(t, factors.TightConnection) // 80 min conn vs 90 min MCT
	assert.True(t, factors.ArrivalDelay)
	assert.True(t, factors.WeatherRisk)
	assert.True(t, factors.TerminalTransfer)
}

func TestFeatures_NilWeatherZeroesWeatherTerms(t *testing.T) {
	conn := comfortableConnection(t)
	fv := Features(&conn, nil)

	assert.Zero(t, fv.WeatherOrdinal)
	assert.Zero(t, fv.WindRisk)
	assert.False(t, fv.LowVisibility)
	assert.False(t, fv.RiskFactors().WeatherRisk)
}

func TestFeatures_CyclicalHourEncoding(t *testing.T) {
	conn := comfortableConnection(t)
	fv := Features(&conn, nil)

	// sin^2 + cos^2 == 1 for any hour.
	assert.InDelta(t, 1.0, fv.ArrivalHourSin*fv.ArrivalHourSin+fv.ArrivalHourCos*fv.ArrivalHourCos, 1e-9)
	assert.InDelta(t, 1.0, fv.DepartureHourSin*fv.DepartureHourSin+fv.DepartureHourCos*fv.DepartureHourCos, 1e-9)
}
