package connection

import (
	"math"

	"github.com/ainohq/aino/internal/domain"
)

// ModelVersion is stamped on every assessment so a retrained coefficient set
// can replace this one without a schema change.
const ModelVersion = "logistic-2025.08"

// Model scores connections with a fixed-coefficient logistic function over
// the engineered features. Coefficients are calibrated so a comfortable
// same-terminal connection scores above 0.95 and a negative buffer drops
// below 0.35 before the other penalties apply.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// coefficients, applied to the feature vector in Score.
const (
	bias = 2.6

	wBufferRatio      = 1.9
	wTightnessSquared = -2.4

	wDelayOver15 = -0.5
	wDelayOver30 = -0.7
	wDelayOver60 = -1.1
	wDelayPerMin = -0.008

	wTerminalRank = -0.45

	wIntlToDomestic = -0.35 // immigration on arrival
	wDomesticToIntl = -0.25 // security + documents on departure
	wIntlToIntl     = -0.15

	wArrivalWidebody = -0.2 // longer deplaning
	wPassengerLoad   = -0.25
	wSameCarrier     = 0.35 // through-checked bags, coordinated gates
	wVirginLink      = 0.1  // dedicated connections team at the hub

	wWeatherOrdinal = -0.4
	wWindRisk       = -0.6
	wLowVisibility  = -0.5

	wWeekend      = 0.1
	wPeakHourPen  = -0.15 // departure in the morning/evening bank
	peakCosCutoff = -0.3  // cos(2*pi*h/24) below this ~= 08:00-16:00 excluded; see Score
)

// Score returns the success probability in [0,1].
func (m *Model) Score(fv FeatureVector) float64 {
	z := bias

	z += wBufferRatio * fv.BufferRatio
	z += wTightnessSquared * fv.TightnessSquared

	z += wDelayPerMin * fv.ArrivalDelayMinutes
	z += boolW(fv.DelayOver15, wDelayOver15)
	z += boolW(fv.DelayOver30, wDelayOver30)
	z += boolW(fv.DelayOver60, wDelayOver60)

	z += wTerminalRank * fv.TerminalDistanceRank

	z += boolW(fv.IntlToDomestic, wIntlToDomestic)
	z += boolW(fv.DomesticToIntl, wDomesticToIntl)
	z += boolW(fv.IntlToIntl, wIntlToIntl)

	z += boolW(fv.ArrivalWidebody, wArrivalWidebody)
	z += wPassengerLoad * fv.PassengerLoadNorm
	z += boolW(fv.SameCarrier, wSameCarrier)
	z += boolW(fv.VirginAtlanticLink, wVirginLink)

	z += wWeatherOrdinal * fv.WeatherOrdinal
	z += wWindRisk * fv.WindRisk
	z += boolW(fv.LowVisibility, wLowVisibility)

	z += boolW(fv.Weekend, wWeekend)
	// Departures in the banked peaks (roughly 06-09 and 17-20 local) carry a
	// small congestion penalty; those hours have |sin| high and cos moderate.
	if math.Abs(fv.DepartureHourSin) > 0.7 && fv.DepartureHourCos > peakCosCutoff {
		z += wPeakHourPen
	}

	return 1 / (1 + math.Exp(-z))
}

// Classify maps a probability and buffer to a risk level. A negative buffer
// is never better than HIGH regardless of the score.
func Classify(prob float64, bufferMinutes int) domain.RiskLevel {
	level := domain.RiskLevelLow
	switch {
	case prob < 0.4:
		level = domain.RiskLevelCritical
	case prob < 0.6:
		level = domain.RiskLevelHigh
	case prob < 0.8:
		level = domain.RiskLevelMedium
	}

	if bufferMinutes < 0 && !level.AtLeast(domain.RiskLevelHigh) {
		return domain.RiskLevelHigh
	}
	return level
}

func boolW(b bool, w float64) float64 {
	if b {
		return w
	}
	return 0
}
