package handlers

import (
	"context"
	"net/http"
	"time"

	"art-gallery-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	serviceName    = "Art Gallery API"
	serviceVersion = "1.0.0"
	pingTimeout    = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log logrus.FieldLogger
}

func NewHealthHandler(db Pinger, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health godoc
// @Summary     Health check
// @Description Returns the health status of the API and its database
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Failure     503 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.WithError(err).Warn("health check database ping failed")
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Status:  "unhealthy",
			Message: "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: serviceName + " is running",
	})
}

// Root godoc
// @Summary     Service banner
// @Tags        health
// @Produce     json
// @Success     200 {object} models.ServiceInfo
// @Router      / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServiceInfo{
		Message: "Welcome to the " + serviceName,
		Version: serviceVersion,
		Docs:    "/swagger/index.html",
	})
}
