package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/repository"
	"github.com/ainohq/aino/internal/service/alerts"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlertHandler struct {
	service alerts.AlertUseCase
}

func NewAlertHandler(service alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAdvisoryRequest struct {
	Airport         string     `json:"airport" binding:"required"`
	Kind            string     `json:"kind" binding:"required,oneof=GROUND_STOP GROUND_DELAY DEPARTURE_DELAY ARRIVAL_DELAY CLOSURE WEATHER"`
	Severity        string     `json:"severity" binding:"required,oneof=INFO ADVISORY WARNING CRITICAL"`
	Reason          string     `json:"reason" binding:"required"`
	AvgDelayMinutes int        `json:"avg_delay_minutes"`
	ActiveFrom      *time.Time `json:"active_from"`
	ActiveUntil     *time.Time `json:"active_until"`
}

// Register mounts advisory routes; RegisterStats mounts the OTP route on its
// own group so /advisories and /stats stay separate prefixes.
func (h *AlertHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.listAdvisories)
	router.POST("/", h.createAdvisory)
	router.POST("/:id/resolve", h.resolve)
}

func (h *AlertHandler) RegisterStats(router *gin.RouterGroup) {
	router.GET("/otp", h.otp)
}

func (h *AlertHandler) listAdvisories(c *gin.Context) {
	airport := c.Query("airport")
	if airport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "airport is required"})
		return
	}

	advisories, err := h.service.ActiveAdvisories(c.Request.Context(), airport)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, advisories)
}

// createAdvisory records an operator-entered advisory; it flows through the
// same upsert-and-publish path the pollers use.
func (h *AlertHandler) createAdvisory(c *gin.Context) {
	var req createAdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advisory := &domain.Advisory{
		ID:              uuid.NewString(),
		Source:          domain.AdvisorySourceManual,
		Airport:         req.Airport,
		Kind:            domain.AdvisoryKind(req.Kind),
		Severity:        domain.AdvisorySeverity(req.Severity),
		AvgDelayMinutes: req.AvgDelayMinutes,
		Reason:          req.Reason,
		ActiveFrom:      time.Now().UTC(),
		ActiveUntil:     req.ActiveUntil,
	}
	if req.ActiveFrom != nil {
		advisory.ActiveFrom = *req.ActiveFrom
	}

	if err := h.service.RecordAdvisory(c.Request.Context(), advisory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, advisory)
}

func (h *AlertHandler) resolve(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.ResolveAdvisory(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no open advisory with that id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) otp(c *gin.Context) {
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

	stats, err := h.service.OTPStats(c.Request.Context(), airport, time.Duration(hours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
