package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ainohq/aino/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReportUseCase is a mock implementation of reports.ReportUseCase
type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) Daily(ctx context.Context, airport string, date time.Time) (*reports.DailyReport, error) {
	args := m.Called(ctx, airport, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.DailyReport), args.Error(1)
}

func TestReportHandler_daily(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/daily?airport=EGLL&date=2025-06-10", nil)

	report := &reports.DailyReport{Airport: "EGLL", Date: "2025-06-10"}
	mockService.On("Daily", c.Request.Context(), "EGLL",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)).Return(report, nil)

	handler.daily(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReportHandler_daily_InvalidDate(t *testing.T) {
	handler := NewReportHandler(&MockReportUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/daily?airport=EGLL&date=June+10", nil)

	handler.daily(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_daily_MissingAirport(t *testing.T) {
	handler := NewReportHandler(&MockReportUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/daily", nil)

	handler.daily(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
