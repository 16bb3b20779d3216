package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWeather struct {
	mock.Mock
}

func (m *mockWeather) Current(ctx context.Context, station string) (*domain.WeatherReport, error) {
	args := m.Called(ctx, station)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherReport), args.Error(1)
}

type mockAdvisories struct {
	mock.Mock
}

func (m *mockAdvisories) ActiveAdvisories(ctx context.Context, airport string) ([]domain.Advisory, error) {
	args := m.Called(ctx, airport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Advisory), args.Error(1)
}

func (m *mockAdvisories) OTPStatsRange(ctx context.Context, airport string, start, end time.Time) (*domain.OTPStats, error) {
	args := m.Called(ctx, airport, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPStats), args.Error(1)
}

type mockAssessments struct {
	mock.Mock
}

func (m *mockAssessments) ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error) {
	args := m.Called(ctx, airport, minRisk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}

type mockFlights struct {
	mock.Mock
}

func (m *mockFlights) ListByAirportWindow(ctx context.Context, airport string, from, to time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, airport, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func reportMocks(t *testing.T) (*mockWeather, *mockAdvisories, *mockAssessments, *mockFlights, *ReportService) {
	t.Helper()
	weather := new(mockWeather)
	advisories := new(mockAdvisories)
	assessments := new(mockAssessments)
	flights := new(mockFlights)
	svc := NewReportService(weather, advisories, assessments, flights, zap.NewNop())
	return weather, advisories, assessments, flights, svc
}

func TestReportService_Daily(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

	weather, advisories, assessments, flights, svc := reportMocks(t)

	wx := &domain.WeatherReport{Station: "EGLL", Category: domain.CategoryVFR}
	weather.On("Current", ctx, "EGLL").Return(wx, nil)
	advisories.On("OTPStatsRange", ctx, "EGLL",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)).
		Return(&domain.OTPStats{Airport: "EGLL", TotalFlights: 100, OnTimeFlights: 80, OnTimePercent: 80}, nil)
	advisories.On("ActiveAdvisories", ctx, "EGLL").Return([]domain.Advisory{}, nil)
	assessments.On("ListAtRisk", ctx, "EGLL", domain.RiskLevelHigh).Return([]domain.Assessment{}, nil)
	flights.On("ListByAirportWindow", ctx, "EGLL",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)).
		Return([]domain.Flight{
			{FlightNumber: "VS003", AircraftType: "A359", DelayMinutes: 30},
			{FlightNumber: "BA117", AircraftType: "B744", DelayMinutes: 0},
			{FlightNumber: "ZZ001", AircraftType: "X999", DelayMinutes: 60},
		}, nil)

	report, err := svc.Daily(ctx, "EGLL", date)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", report.Date)
	assert.Equal(t, wx, report.Weather)
	assert.Equal(t, 100, report.OTP.TotalFlights)

	// A359 half hour at 11600/hr plus one hour of the default rate.
	assert.Equal(t, 2, report.DisruptionCost.DelayedFlights)
	assert.Equal(t, 90, report.DisruptionCost.TotalDelayMinutes)
	assert.InDelta(t, 11600.0/2+5500.0, report.DisruptionCost.TotalUSD, 0.01)
	assert.True(t, report.DisruptionCost.Estimated)
}

func TestReportService_Daily_WeatherBestEffort(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	weather, advisories, assessments, flights, svc := reportMocks(t)

	weather.On("Current", ctx, "EGLL").Return(nil, errors.New("upstream down"))
	advisories.On("OTPStatsRange", ctx, "EGLL", mock.Anything, mock.Anything).
		Return(&domain.OTPStats{Airport: "EGLL"}, nil)
	advisories.On("ActiveAdvisories", ctx, "EGLL").Return([]domain.Advisory{}, nil)
	assessments.On("ListAtRisk", ctx, "EGLL", domain.RiskLevelHigh).Return([]domain.Assessment{}, nil)
	flights.On("ListByAirportWindow", ctx, "EGLL", mock.Anything, mock.Anything).
		Return([]domain.Flight{}, nil)

	report, err := svc.Daily(ctx, "EGLL", date)
	require.NoError(t, err)
	assert.Nil(t, report.Weather)
	assert.Zero(t, report.DisruptionCost.TotalUSD)
}

func TestReportService_Daily_OTPWindowBoundedToDay(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		date time.Time
	}{
		{"past date", time.Now().UTC().AddDate(0, 0, -10)},
		{"today", time.Now().UTC()},
		{"future date", time.Now().UTC().AddDate(0, 0, 2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			weather, advisories, assessments, flights, svc := reportMocks(t)

			dayStart := time.Date(tc.date.Year(), tc.date.Month(), tc.date.Day(), 0, 0, 0, 0, time.UTC)
			dayEnd := dayStart.Add(24 * time.Hour)

			var gotStart, gotEnd time.Time
			weather.On("Current", ctx, "EGLL").Return(nil, nil)
			advisories.On("OTPStatsRange", ctx, "EGLL", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					gotStart = args.Get(2).(time.Time)
					gotEnd = args.Get(3).(time.Time)
				}).
				Return(&domain.OTPStats{Airport: "EGLL"}, nil)
			advisories.On("ActiveAdvisories", ctx, "EGLL").Return([]domain.Advisory{}, nil)
			assessments.On("ListAtRisk", ctx, "EGLL", domain.RiskLevelHigh).Return([]domain.Assessment{}, nil)
			flights.On("ListByAirportWindow", ctx, "EGLL", dayStart, dayEnd).
				Return([]domain.Flight{}, nil)

			_, err := svc.Daily(ctx, "EGLL", tc.date)
			require.NoError(t, err)

			assert.Equal(t, dayStart, gotStart)
			assert.False(t, gotEnd.Before(gotStart), "window must not be negative")
			assert.False(t, gotEnd.After(dayEnd), "window must not extend past the requested day")
			if dayEnd.Before(time.Now().UTC()) {
				assert.Equal(t, dayEnd, gotEnd, "a completed day covers the full day")
			}
			if tc.date.After(time.Now().UTC()) {
				assert.Equal(t, gotStart, gotEnd, "future day has no flights to aggregate yet")
			}
		})
	}
}

func TestReportService_Daily_OTPErrorFailsReport(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("query timeout")

	weather, advisories, _, _, svc := reportMocks(t)

	weather.On("Current", ctx, "EGLL").Return(nil, nil)
	advisories.On("OTPStatsRange", ctx, "EGLL", mock.Anything, mock.Anything).
		Return(nil, dbErr)

	_, err := svc.Daily(ctx, "EGLL", time.Now().UTC())
	assert.ErrorIs(t, err, dbErr)
}

func TestEstimateDisruptionCost_KnownTypesOnly(t *testing.T) {
	cost := estimateDisruptionCost([]domain.Flight{
		{AircraftType: "A359", DelayMinutes: 60},
		{AircraftType: "B744", DelayMinutes: 30},
	})
	assert.False(t, cost.Estimated)
	assert.Equal(t, 2, cost.DelayedFlights)
	assert.InDelta(t, 11600+14200.0/2, cost.TotalUSD, 0.01)
}
