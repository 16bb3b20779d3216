package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ainohq/aino/internal/connection"
	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/repository"
	"github.com/ainohq/aino/internal/service/connections"
	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	service connections.ConnectionUseCase
}

type assessRequest struct {
	ArrivalFlightID   int64 `json:"arrival_flight_id" binding:"required"`
	DepartureFlightID int64 `json:"departure_flight_id" binding:"required"`
}

type assessBatchRequest struct {
	Pairs []assessRequest `json:"pairs" binding:"required,min=1"`
}

type assessmentResponse struct {
	ID                 string             `json:"id"`
	ArrivalFlightID    int64              `json:"arrival_flight_id"`
	DepartureFlightID  int64              `json:"departure_flight_id"`
	Airport            string             `json:"airport"`
	ConnectionMinutes  int                `json:"connection_minutes"`
	BufferMinutes      int                `json:"buffer_minutes"`
	SuccessProbability float64            `json:"success_probability"`
	RiskLevel          string             `json:"risk_level"`
	RiskFactors        domain.RiskFactors `json:"risk_factors"`
	ModelVersion       string             `json:"model_version"`
	AssessedAt         string             `json:"assessed_at"`
	ExpiresAt          string             `json:"expires_at"`
}

type batchFailureResponse struct {
	ArrivalFlightID   int64  `json:"arrival_flight_id"`
	DepartureFlightID int64  `json:"departure_flight_id"`
	Error             string `json:"error"`
}

type assessBatchResponse struct {
	Assessments []assessmentResponse   `json:"assessments"`
	Failures    []batchFailureResponse `json:"failures"`
}

func NewConnectionHandler(service connections.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

func (h *ConnectionHandler) Register(router *gin.RouterGroup) {
	router.POST("/assess", h.assess)
	router.POST("/assess-batch", h.assessBatch)
	router.GET("/assessments/:id", h.getAssessment)
	router.GET("/at-risk", h.atRisk)
}

func (h *ConnectionHandler) getAssessment(c *gin.Context) {
	assessment, err := h.service.GetAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toAssessmentResponse(assessment))
}

func (h *ConnectionHandler) assess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := h.service.Assess(c.Request.Context(), req.ArrivalFlightID, req.DepartureFlightID)
	if err != nil {
		c.JSON(assessErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toAssessmentResponse(assessment))
}

func (h *ConnectionHandler) assessBatch(c *gin.Context) {
	var req assessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pairs := make([]connections.FlightPair, 0, len(req.Pairs))
	for _, p := range req.Pairs {
		pairs = append(pairs, connections.FlightPair{ArrivalID: p.ArrivalFlightID, DepartureID: p.DepartureFlightID})
	}

	result, err := h.service.AssessBatch(c.Request.Context(), pairs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := assessBatchResponse{
		Assessments: make([]assessmentResponse, 0, len(result.Assessments)),
		Failures:    make([]batchFailureResponse, 0, len(result.Failures)),
	}
	for i := range result.Assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentResponse(&result.Assessments[i]))
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, batchFailureResponse{
			ArrivalFlightID:   f.Pair.ArrivalID,
			DepartureFlightID: f.Pair.DepartureID,
			Error:             f.Err.Error(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConnectionHandler) atRisk(c *gin.Context) {
	airport := c.Query("airport")
	if airport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "airport is required"})
		return
	}

	minRisk := domain.RiskLevelHigh
	if v := c.Query("min_risk"); v != "" {
		minRisk = domain.RiskLevel(v)
		if !minRisk.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_risk"})
			return
		}
	}

	assessments, err := h.service.ListAtRisk(c.Request.Context(), airport, minRisk)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]assessmentResponse, 0, len(assessments))
	for i := range assessments {
		resp = append(resp, toAssessmentResponse(&assessments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func assessErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, connection.ErrMismatchedAirport),
		errors.Is(err, connection.ErrNotArrival),
		errors.Is(err, connection.ErrNotDeparture),
		errors.Is(err, connection.ErrDepartureBeforeArrival):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func toAssessmentResponse(a *domain.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:                 a.ID,
		ArrivalFlightID:    a.ArrivalFlightID,
		DepartureFlightID:  a.DepartureFlightID,
		Airport:            a.Airport,
		ConnectionMinutes:  a.ConnectionMinutes,
		BufferMinutes:      a.BufferMinutes,
		SuccessProbability: a.SuccessProbability,
		RiskLevel:          string(a.RiskLevel),
		RiskFactors:        a.RiskFactors,
		ModelVersion:       a.ModelVersion,
		AssessedAt:         a.AssessedAt.Format(time.RFC3339),
		ExpiresAt:          a.ExpiresAt.Format(time.RFC3339),
	}
}
