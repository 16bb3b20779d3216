package connection

import (
	"math"
	"time"

	"github.com/ainohq/aino/internal/domain"
)

// FeatureVector holds every engineered input the scoring model reads.
// Weather fields are zero when no report is available for the airport.
type FeatureVector struct {
	// Buffer and timing
	BufferMinutes     float64
	BufferRatio       float64 // buffer / MCT, clamped to [-1, 3]
	TightnessSquared  float64 // squared shortfall when buffer < 30
	ConnectionMinutes float64
	MCTMinutes        float64

	// Arrival delay
	ArrivalDelayMinutes float64
	DelayOver15         bool
	DelayOver30         bool
	DelayOver60         bool

	// Time of day (cyclical), day of week
	ArrivalHourSin   float64
	ArrivalHourCos   float64
	DepartureHourSin float64
	DepartureHourCos float64
	Weekend          bool

	// Terminals
	TerminalTransfer     bool
	TerminalDistanceRank float64

	// International transitions
	IntlToDomestic bool
	DomesticToIntl bool
	IntlToIntl     bool

	// Aircraft and load
	ArrivalWidebody    bool
	ArrivalRegional    bool
	DepartureWidebody  bool
	DepartureRegional  bool
	PassengerLoadNorm  float64 // arrival passengers / 400
	SameCarrier        bool
	VirginAtlanticLink bool

	// Weather
	WeatherOrdinal float64 // 0 VFR .. 3 LIFR
	WindRisk       float64 // gust (or sustained) knots / 50, clamped to 1
	LowVisibility  bool    // under 3 statute miles
}

// Thresholds used by both the feature builder and risk-factor derivation.
const (
	tightBufferMinutes  = 30
	delayRiskMinutes    = 15
	lowVisibilityMiles  = 3.0
	windRiskDenominator = 50.0
	passengerLoadScale  = 400.0
)

// Features engineers the model inputs from a connection and the current
// weather. wx may be nil.
func Features(conn *domain.Connection, wx *domain.WeatherReport) FeatureVector {
	arr, dep := &conn.Arrival, &conn.Departure

	fv := FeatureVector{
		BufferMinutes:     float64(conn.BufferMinutes),
		BufferRatio:       clamp(float64(conn.BufferMinutes)/float64(conn.MinimumConnectionMinutes), -1, 3),
		ConnectionMinutes: float64(conn.ConnectionMinutes),
		MCTMinutes:        float64(conn.MinimumConnectionMinutes),

		ArrivalDelayMinutes: float64(arr.DelayMinutes),
		DelayOver15:         arr.DelayMinutes > 15,
		DelayOver30:         arr.DelayMinutes > 30,
		DelayOver60:         arr.DelayMinutes > 60,

		Weekend: isWeekend(arr.ScheduledTime),

		TerminalTransfer:     arr.Terminal != dep.Terminal,
		TerminalDistanceRank: float64(terminalDistanceRank(arr.Terminal, dep.Terminal)),

		IntlToDomestic: arr.International && !dep.International,
		DomesticToIntl: !arr.International && dep.International,
		IntlToIntl:     arr.International && dep.International,

		ArrivalWidebody:    domain.ClassOf(arr.AircraftType) == domain.AircraftWidebody,
		ArrivalRegional:    domain.ClassOf(arr.AircraftType) == domain.AircraftRegional,
		DepartureWidebody:  domain.ClassOf(dep.AircraftType) == domain.AircraftWidebody,
		DepartureRegional:  domain.ClassOf(dep.AircraftType) == domain.AircraftRegional,
		PassengerLoadNorm:  clamp(float64(arr.PassengerCount)/passengerLoadScale, 0, 1.5),
		SameCarrier:        arr.Airline == dep.Airline,
		VirginAtlanticLink: arr.VirginAtlantic || dep.VirginAtlantic,
	}

	if shortfall := float64(tightBufferMinutes - conn.BufferMinutes); shortfall > 0 {
		fv.TightnessSquared = (shortfall / tightBufferMinutes) * (shortfall / tightBufferMinutes)
	}

	fv.ArrivalHourSin, fv.ArrivalHourCos = hourCyclical(arr.ScheduledTime)
	fv.DepartureHourSin, fv.DepartureHourCos = hourCyclical(dep.ScheduledTime)

	if wx != nil {
		fv.WeatherOrdinal = float64(wx.Category.Ordinal())
		wind := wx.WindGustKt
		if wind == 0 {
			wind = wx.WindSpeedKt
		}
		fv.WindRisk = clamp(float64(wind)/windRiskDenominator, 0, 1)
		fv.LowVisibility = wx.VisibilityMiles > 0 && wx.VisibilityMiles < lowVisibilityMiles
	}

	return fv
}

// RiskFactors derives the reported boolean flags from a feature vector.
func (fv FeatureVector) RiskFactors() domain.RiskFactors {
	return domain.RiskFactors{
		TightConnection:  fv.BufferMinutes < tightBufferMinutes,
		ArrivalDelay:     fv.ArrivalDelayMinutes > delayRiskMinutes,
		WeatherRisk:      fv.WeatherOrdinal >= 2 || fv.WindRisk >= 0.7 || fv.LowVisibility,
		TerminalTransfer: fv.TerminalTransfer,
	}
}

func hourCyclical(t time.Time) (sin, cos float64) {
	h := float64(t.Hour()) + float64(t.Minute())/60
	angle := 2 * math.Pi * h / 24
	return math.Sin(angle), math.Cos(angle)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
