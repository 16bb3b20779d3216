package domain

import "time"

type AdvisorySource string

const (
	AdvisorySourceNAS    AdvisorySource = "FAA_NAS"
	AdvisorySourceMETAR  AdvisorySource = "METAR"
	AdvisorySourceManual AdvisorySource = "MANUAL"
)

type AdvisoryKind string

const (
	AdvisoryGroundStop     AdvisoryKind = "GROUND_STOP"
	AdvisoryGroundDelay    AdvisoryKind = "GROUND_DELAY"
	AdvisoryDepartureDelay AdvisoryKind = "DEPARTURE_DELAY"
	AdvisoryArrivalDelay   AdvisoryKind = "ARRIVAL_DELAY"
	AdvisoryClosure        AdvisoryKind = "CLOSURE"
	AdvisoryWeather        AdvisoryKind = "WEATHER"
)

type AdvisorySeverity string

const (
	SeverityInfo     AdvisorySeverity = "INFO"
	SeverityAdvisory AdvisorySeverity = "ADVISORY"
	SeverityWarning  AdvisorySeverity = "WARNING"
	SeverityCritical AdvisorySeverity = "CRITICAL"
)

// Advisory is a normalized operational advisory for one airport, regardless
// of which upstream produced it. AvgDelayMinutes is zero when the upstream
// reports no delay figure.
type Advisory struct {
	ID              string
	Source          AdvisorySource
	Airport         string
	Kind            AdvisoryKind
	Severity        AdvisorySeverity
	AvgDelayMinutes int
	Reason          string
	ActiveFrom      time.Time
	ActiveUntil     *time.Time
	CreatedAt       time.Time
}

// Active reports whether the advisory is in effect at t.
func (a *Advisory) Active(t time.Time) bool {
	if t.Before(a.ActiveFrom) {
		return false
	}
	return a.ActiveUntil == nil || t.Before(*a.ActiveUntil)
}
