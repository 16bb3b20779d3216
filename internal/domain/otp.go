package domain

import "time"

// OTPThresholdMinutes is the industry on-time threshold: a flight counts as
// on time when its delay is under 15 minutes.
const OTPThresholdMinutes = 15

// OTPStats is an on-time-performance summary for one airport over a window.
type OTPStats struct {
	Airport         string    `json:"airport"`
	WindowStart     time.Time `json:"window_start"`
	WindowEnd       time.Time `json:"window_end"`
	TotalFlights    int       `json:"total_flights"`
	OnTimeFlights   int       `json:"on_time_flights"`
	OnTimePercent   float64   `json:"on_time_percent"`
	AvgDelayMinutes float64   `json:"avg_delay_minutes"`
	MaxDelayMinutes int       `json:"max_delay_minutes"`
	WorstAirline    string    `json:"worst_airline,omitempty"`
}
