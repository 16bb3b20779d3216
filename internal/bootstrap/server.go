package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ainohq/aino/api"
	"github.com/ainohq/aino/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups everything the HTTP server exposes.
type Handlers struct {
	Flights     *api.FlightHandler
	Connections *api.ConnectionHandler
	Weather     *api.WeatherHandler
	Alerts      *api.AlertHandler
	Reports     *api.ReportHandler
}

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers, logger *zap.Logger) error {
	engine := newEngine(h)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newEngine(h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	h.Flights.Register(v1.Group("/flights"))
	h.Connections.Register(v1.Group("/connections"))
	h.Weather.Register(v1.Group("/weather"))
	h.Alerts.Register(v1.Group("/advisories"))
	h.Alerts.RegisterStats(v1.Group("/stats"))
	h.Reports.Register(v1.Group("/reports"))

	return engine
}
