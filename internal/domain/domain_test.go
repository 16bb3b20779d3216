package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperatingCostPerHour(t *testing.T) {
	cost, known := OperatingCostPerHour("A388")
	assert.True(t, known)
	assert.Equal(t, 17500.0, cost)

	cost, known = OperatingCostPerHour("X999")
	assert.False(t, known)
	assert.Equal(t, float64(defaultOperatingCostUSD), cost)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, AircraftWidebody, ClassOf("B789"))
	assert.Equal(t, AircraftRegional, ClassOf("DH8D"))
	assert.Equal(t, AircraftNarrowbody, ClassOf("A320"))
	assert.Equal(t, AircraftNarrowbody, ClassOf("X999"))
}

func TestRiskLevelAtLeast(t *testing.T) {
	assert.True(t, RiskLevelCritical.AtLeast(RiskLevelHigh))
	assert.True(t, RiskLevelHigh.AtLeast(RiskLevelHigh))
	assert.False(t, RiskLevelMedium.AtLeast(RiskLevelHigh))
	assert.False(t, RiskLevel("SEVERE").Valid())
	assert.True(t, RiskLevelLow.Valid())
}

func TestAdvisoryActive(t *testing.T) {
	from := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	until := from.Add(2 * time.Hour)

	open := &Advisory{ActiveFrom: from}
	assert.False(t, open.Active(from.Add(-time.Minute)))
	assert.True(t, open.Active(from))
	assert.True(t, open.Active(from.Add(48*time.Hour)))

	bounded := &Advisory{ActiveFrom: from, ActiveUntil: &until}
	assert.True(t, bounded.Active(from.Add(time.Hour)))
	assert.False(t, bounded.Active(until))
}

func TestFlightEffectiveTime(t *testing.T) {
	scheduled := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)
	f := &Flight{ScheduledTime: scheduled}
	assert.Equal(t, scheduled, f.EffectiveTime())

	actual := scheduled.Add(40 * time.Minute)
	f.ActualTime = &actual
	assert.Equal(t, actual, f.EffectiveTime())
}

func TestFlightCategoryOrdinal(t *testing.T) {
	assert.Equal(t, 0, CategoryVFR.Ordinal())
	assert.Equal(t, 3, CategoryLIFR.Ordinal())
	assert.Equal(t, 0, FlightCategory("").Ordinal())
}
