package domain

import "time"

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// rank orders risk levels for comparisons; unknown levels rank lowest.
var riskRank = map[RiskLevel]int{
	RiskLevelLow:      0,
	RiskLevelMedium:   1,
	RiskLevelHigh:     2,
	RiskLevelCritical: 3,
}

// AtLeast reports whether r is as severe as min.
func (r RiskLevel) AtLeast(min RiskLevel) bool {
	return riskRank[r] >= riskRank[min]
}

func (r RiskLevel) Valid() bool {
	_, ok := riskRank[r]
	return ok
}

// RiskFactors are the boolean flags the connection model derives from a
// connection and the current weather.
type RiskFactors struct {
	TightConnection  bool `json:"tight_connection"`
	ArrivalDelay     bool `json:"arrival_delay"`
	WeatherRisk      bool `json:"weather_risk"`
	TerminalTransfer bool `json:"terminal_transfer"`
}

// Connection pairs an arrival with a departure at the same airport.
// BufferMinutes = ConnectionMinutes - MinimumConnectionMinutes and may be
// negative; a negative buffer is reported as-is, never clamped.
type Connection struct {
	Arrival                  Flight
	Departure                Flight
	ConnectionMinutes        int
	MinimumConnectionMinutes int
	BufferMinutes            int
}

// Assessment is a scored connection, persisted with an expiry so the worker
// can sweep stale results.
type Assessment struct {
	ID                 string
	ArrivalFlightID    int64
	DepartureFlightID  int64
	Airport            string
	ConnectionMinutes  int
	BufferMinutes      int
	SuccessProbability float64
	RiskLevel          RiskLevel
	RiskFactors        RiskFactors
	ModelVersion       string
	AssessedAt         time.Time
	ExpiresAt          time.Time
}
