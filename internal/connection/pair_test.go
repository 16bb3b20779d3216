package connection

import (
	"testing"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrivalAt(t time.Time) *domain.Flight {
	return &domain.Flight{
		ID:            1,
		FlightNumber:  "VS104",
		Airline:       "VIR",
		AircraftType:  "A333",
		Kind:          domain.FlightKindArrival,
		Airport:       "EGLL",
		Terminal:      "T3",
		ScheduledTime: t,
		International: true,
	}
}

func departureAt(t time.Time) *domain.Flight {
	return &domain.Flight{
		ID:            2,
		FlightNumber:  "VS117",
		Airline:       "VIR",
		AircraftType:  "B789",
		Kind:          domain.FlightKindDeparture,
		Airport:       "EGLL",
		Terminal:      "T3",
		ScheduledTime: t,
		International: true,
	}
}

func TestPair_SameTerminalInternational(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	dep := departureAt(base.Add(2 * time.Hour))

	conn, err := Pair(arr, dep)
	require.NoError(t, err)

	assert.Equal(t, 120, conn.ConnectionMinutes)
	assert.Equal(t, 60, conn.MinimumConnectionMinutes) // T3->T3 international
	assert.Equal(t, 60, conn.BufferMinutes)
}

func TestPair_NegativeBufferIsPreserved(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	dep := departureAt(base.Add(30 * time.Minute))

	conn, err := Pair(arr, dep)
	require.NoError(t, err)

	assert.Equal(t, 30, conn.ConnectionMinutes)
	assert.Equal(t, -30, conn.BufferMinutes)
}

func TestPair_ActualArrivalTimeShrinksConnection(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	actual := base.Add(40 * time.Minute)
	arr.ActualTime = &actual
	arr.DelayMinutes = 40
	dep := departureAt(base.Add(2 * time.Hour))

	conn, err := Pair(arr, dep)
	require.NoError(t, err)

	assert.Equal(t, 80, conn.ConnectionMinutes)
	assert.Equal(t, 20, conn.BufferMinutes)
}

func TestPair_Validation(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	arr := arrivalAt(base)
	dep := departureAt(base.Add(time.Hour))

	otherAirport := departureAt(base.Add(time.Hour))
	otherAirport.Airport = "EGKK"
	_, err := Pair(arr, otherAirport)
	assert.ErrorIs(t, err, ErrMismatchedAirport)

	_, err = Pair(dep, dep)
	assert.ErrorIs(t, err, ErrNotArrival)

	_, err = Pair(arr, arr)
	assert.ErrorIs(t, err, ErrNotDeparture)

	early := departureAt(base.Add(-time.Hour))
	_, err = Pair(arr, early)
	assert.ErrorIs(t, err, ErrDepartureBeforeArrival)
}

func TestMinimumConnectionMinutes_FallbackForUnknownTerminal(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	arr.Terminal = "T9"
	dep := departureAt(base.Add(3 * time.Hour))

	assert.Equal(t, mctFallbackMinutes, MinimumConnectionMinutes(arr, dep))
}

func TestMinimumConnectionMinutes_DomesticTableForDomesticLegs(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	arr := arrivalAt(base)
	arr.International = false
	dep := departureAt(base.Add(3 * time.Hour))
	dep.International = false

	assert.Equal(t, 45, MinimumConnectionMinutes(arr, dep)) // T3->T3 domestic
}
