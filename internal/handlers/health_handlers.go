package handlers

import (
	"net/http"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness. It never touches the store.
type HealthHandler struct {
	environment string
	version     string
	now         func() time.Time
}

// NewHealthHandler creates a HealthHandler for the given environment and version.
func NewHealthHandler(environment, version string) *HealthHandler {
	return &HealthHandler{environment: environment, version: version, now: time.Now}
}

// GetHealth always answers 200 while the process is up.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Status:      "OK",
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.environment,
		Version:     h.version,
	})
}
