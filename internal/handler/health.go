package handler

// HealthHandler exposes a "system" endpoint that uptime monitors and load
// balancers use to verify the service is alive.
import (
	"net/http"
	"time"

	"github.com/deppfellow/toolbox-api/internal/middleware"
	"github.com/deppfellow/toolbox-api/internal/server"
	"github.com/deppfellow/toolbox-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthHandler embeds the base Handler to reuse shared server dependencies.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status.
//
// Response includes:
// - overall status
// - timestamp (UTC) and uptime
// - environment (from config)
// - checks map (clock/timezone, new relic)
//
// The service has no external dependencies, so it always answers 200 while
// the process is able to serve.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	newRelic := "disabled"
	if h.server.LoggerService.GetApplication() != nil {
		newRelic = "enabled"
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   start.UTC(),
		"uptime":      time.Since(h.server.StartedAt).Round(time.Second).String(),
		"environment": h.server.Config.Primary.Env,
		"checks": map[string]interface{}{
			"clock": map[string]interface{}{
				"status":   "healthy",
				"timezone": h.server.Location.String(),
				"date":     start.In(h.server.Location).Format(service.DateLayout),
			},
			"new_relic": map[string]interface{}{
				"status": newRelic,
			},
		},
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.server.LoggerService.RecordEvent("HealthCheckError", map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return errors.Wrap(err, "failed to write JSON response")
	}

	return nil
}
