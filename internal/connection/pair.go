package connection

import (
	"errors"

	"github.com/ainohq/aino/internal/domain"
)

var (
	ErrMismatchedAirport      = errors.New("arrival and departure are at different airports")
	ErrNotArrival             = errors.New("first flight is not an arrival")
	ErrNotDeparture           = errors.New("second flight is not a departure")
	ErrDepartureBeforeArrival = errors.New("departure is scheduled before arrival")
)

// Pair builds a connection from an arrival and a departure at the same
// airport. Connection time runs from the arrival's effective time (actual
// when known) to the departure's scheduled time. Buffer may be negative.
func Pair(arr, dep *domain.Flight) (domain.Connection, error) {
	if arr.Kind != domain.FlightKindArrival {
		return domain.Connection{}, ErrNotArrival
	}
	if dep.Kind != domain.FlightKindDeparture {
		return domain.Connection{}, ErrNotDeparture
	}
	if arr.Airport != dep.Airport {
		return domain.Connection{}, ErrMismatchedAirport
	}
	if !dep.ScheduledTime.After(arr.ScheduledTime) {
		return domain.Connection{}, ErrDepartureBeforeArrival
	}

	connMinutes := int(dep.ScheduledTime.Sub(arr.EffectiveTime()).Minutes())
	mct := MinimumConnectionMinutes(arr, dep)

	return domain.Connection{
		Arrival:                  *arr,
		Departure:                *dep,
		ConnectionMinutes:        connMinutes,
		MinimumConnectionMinutes: mct,
		BufferMinutes:            connMinutes - mct,
	}, nil
}
