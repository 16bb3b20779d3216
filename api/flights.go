package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/repository"
	"github.com/gin-gonic/gin"
)

// ScheduleCache holds recent flight lists; only the default ±24h window is
// cached, narrower queries always hit the database.
type ScheduleCache interface {
	GetSchedule(ctx context.Context, airport string) ([]domain.Flight, error)
	SetSchedule(ctx context.Context, airport string, flights []domain.Flight, ttl time.Duration) error
}

const scheduleCacheTTL = time.Minute

type FlightHandler struct {
	flights repository.FlightRepository
	cache   ScheduleCache
}

func NewFlightHandler(flights repository.FlightRepository, cache ScheduleCache) *FlightHandler {
	return &FlightHandler{flights: flights, cache: cache}
}

type flightUpsertRequest struct {
	FlightNumber   string     `json:"flight_number" binding:"required"`
	Airline        string     `json:"airline" binding:"required"`
	AircraftType   string     `json:"aircraft_type"`
	Kind           string     `json:"kind" binding:"required,oneof=ARRIVAL DEPARTURE"`
	Airport        string     `json:"airport" binding:"required"`
	Terminal       string     `json:"terminal"`
	Gate           string     `json:"gate"`
	ScheduledTime  time.Time  `json:"scheduled_time" binding:"required"`
	ActualTime     *time.Time `json:"actual_time"`
	DelayMinutes   int        `json:"delay_minutes"`
	PassengerCount int        `json:"passenger_count"`
	International  bool       `json:"international"`
	VirginAtlantic bool       `json:"virgin_atlantic"`
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.upsert)
}

// upsert ingests one schedule record; re-posting the same flight refreshes
// its actual time, delay, gate and terminal.
func (h *FlightHandler) upsert(c *gin.Context) {
	var req flightUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		FlightNumber:   req.FlightNumber,
		Airline:        req.Airline,
		AircraftType:   req.AircraftType,
		Kind:           domain.FlightKind(req.Kind),
		Airport:        req.Airport,
		Terminal:       req.Terminal,
		Gate:           req.Gate,
		ScheduledTime:  req.ScheduledTime,
		ActualTime:     req.ActualTime,
		DelayMinutes:   req.DelayMinutes,
		PassengerCount: req.PassengerCount,
		International:  req.International,
		VirginAtlantic: req.VirginAtlantic,
	}
	if err := h.flights.Upsert(c.Request.Context(), flight); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) list(c *gin.Context) {
	airport := c.Query("airport")
	if airport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "airport is required"})
		return
	}

	hours := 24
	if v := c.Query("hours"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours"})
			return
		}
		hours = parsed
	}

	defaultWindow := hours == 24
	if defaultWindow && h.cache != nil {
		if cached, err := h.cache.GetSchedule(c.Request.Context(), airport); err == nil && cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	now := time.Now().UTC()
	flights, err := h.flights.ListByAirportWindow(c.Request.Context(), airport, now.Add(-time.Duration(hours)*time.Hour), now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if defaultWindow && h.cache != nil {
		_ = h.cache.SetSchedule(c.Request.Context(), airport, flights, scheduleCacheTTL)
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.flights.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}
