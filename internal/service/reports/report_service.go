package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"go.uber.org/zap"
)

type ReportUseCase interface {
	Daily(ctx context.Context, airport string, date time.Time) (*DailyReport, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, station string) (*domain.WeatherReport, error)
}

type AdvisoryProvider interface {
	ActiveAdvisories(ctx context.Context, airport string) ([]domain.Advisory, error)
	OTPStatsRange(ctx context.Context, airport string, start, end time.Time) (*domain.OTPStats, error)
}

type AssessmentProvider interface {
	ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error)
}

type FlightProvider interface {
	ListByAirportWindow(ctx context.Context, airport string, from, to time.Time) ([]domain.Flight, error)
}

// DailyReport is the consolidated operations intelligence report.
type DailyReport struct {
	Airport           string                `json:"airport"`
	Date              string                `json:"date"`
	GeneratedAt       time.Time             `json:"generated_at"`
	Weather           *domain.WeatherReport `json:"weather,omitempty"`
	OTP               *domain.OTPStats      `json:"otp"`
	ActiveAdvisories  []domain.Advisory     `json:"active_advisories"`
	AtRiskConnections []domain.Assessment   `json:"at_risk_connections"`
	DisruptionCost    DisruptionCost        `json:"disruption_cost"`
}

// DisruptionCost estimates what the day's delays cost in aircraft block time.
type DisruptionCost struct {
	TotalUSD          float64 `json:"total_usd"`
	DelayedFlights    int     `json:"delayed_flights"`
	TotalDelayMinutes int     `json:"total_delay_minutes"`
	// Estimated is true when any flight's type was missing from the cost
	// table and the default rate was used.
	Estimated bool `json:"estimated"`
}

type ReportService struct {
	weather     WeatherProvider
	advisories  AdvisoryProvider
	assessments AssessmentProvider
	flights     FlightProvider
	logger      *zap.Logger
}

func NewReportService(
	weather WeatherProvider,
	advisories AdvisoryProvider,
	assessments AssessmentProvider,
	flights FlightProvider,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		weather:     weather,
		advisories:  advisories,
		assessments: assessments,
		flights:     flights,
		logger:      logger,
	}
}

// Daily aggregates weather, OTP, advisories, at-risk connections and the
// delay cost estimate for one airport-day. Weather is best-effort; the other
// sections fail the report.
func (s *ReportService) Daily(ctx context.Context, airport string, date time.Time) (*DailyReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	report := &DailyReport{
		Airport:     airport,
		Date:        dayStart.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC(),
	}

	wx, err := s.weather.Current(ctx, airport)
	if err != nil {
		s.logger.Warn("report weather unavailable", zap.String("airport", airport), zap.Error(err))
	} else {
		report.Weather = wx
	}

	// OTP covers only the requested day. For today the window ends now; for
	// a future date it is empty rather than negative.
	otpEnd := dayEnd
	if now := time.Now().UTC(); now.Before(otpEnd) {
		otpEnd = now
	}
	if otpEnd.Before(dayStart) {
		otpEnd = dayStart
	}
	otp, err := s.advisories.OTPStatsRange(ctx, airport, dayStart, otpEnd)
	if err != nil {
		return nil, fmt.Errorf("otp stats: %w", err)
	}
	report.OTP = otp

	advisories, err := s.advisories.ActiveAdvisories(ctx, airport)
	if err != nil {
		return nil, fmt.Errorf("active advisories: %w", err)
	}
	report.ActiveAdvisories = advisories

	atRisk, err := s.assessments.ListAtRisk(ctx, airport, domain.RiskLevelHigh)
	if err != nil {
		return nil, fmt.Errorf("at-risk connections: %w", err)
	}
	report.AtRiskConnections = atRisk

	flights, err := s.flights.ListByAirportWindow(ctx, airport, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	report.DisruptionCost = estimateDisruptionCost(flights)

	return report, nil
}

// estimateDisruptionCost prices delay minutes at each aircraft's block-hour
// operating cost.
func estimateDisruptionCost(flights []domain.Flight) DisruptionCost {
	var cost DisruptionCost
	for _, f := range flights {
		if f.DelayMinutes <= 0 {
			continue
		}
		rate, known := domain.OperatingCostPerHour(f.AircraftType)
		if !known {
			cost.Estimated = true
		}
		cost.DelayedFlights++
		cost.TotalDelayMinutes += f.DelayMinutes
		cost.TotalUSD += rate * float64(f.DelayMinutes) / 60
	}
	return cost
}

var _ ReportUseCase = (*ReportService)(nil)
