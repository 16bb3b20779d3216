package domain

import "time"

type FlightKind string

const (
	FlightKindArrival   FlightKind = "ARRIVAL"
	FlightKindDeparture FlightKind = "DEPARTURE"
)

// Flight is a single arrival or departure at the hub airport. DelayMinutes is
// the canonical delay field; ActualTime stays nil until the movement happens.
type Flight struct {
	ID             int64
	FlightNumber   string
	Airline        string
	AircraftType   string
	Kind           FlightKind
	Airport        string
	Terminal       string
	Gate           string
	ScheduledTime  time.Time
	ActualTime     *time.Time
	DelayMinutes   int
	PassengerCount int
	International  bool
	VirginAtlantic bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveTime is the actual movement time when known, scheduled otherwise.
func (f *Flight) EffectiveTime() time.Time {
	if f.ActualTime != nil {
		return *f.ActualTime
	}
	return f.ScheduledTime
}
