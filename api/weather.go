package api

import (
	"net/http"

	"github.com/ainohq/aino/internal/service/weather"
	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	service weather.WeatherUseCase
}

func NewWeatherHandler(service weather.WeatherUseCase) *WeatherHandler {
	return &WeatherHandler{service: service}
}

func (h *WeatherHandler) Register(router *gin.RouterGroup) {
	router.GET("/:station", h.current)
}

func (h *WeatherHandler) current(c *gin.Context) {
	station := c.Param("station")

	report, err := h.service.Current(c.Request.Context(), station)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no observation for station"})
		return
	}
	c.JSON(http.StatusOK, report)
}
