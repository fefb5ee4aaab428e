package handlers

import (
	"net/http"
	"strings"

	"todoapi/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// MonitorHandler exposes runtime reports behind a shared API key.
type MonitorHandler struct {
	service *monitoring.Service
	apiKey  string
}

func NewMonitorHandler(service *monitoring.Service, apiKey string) *MonitorHandler {
	return &MonitorHandler{service: service, apiKey: strings.TrimSpace(apiKey)}
}

func (h *MonitorHandler) checkMonitoringToken(c *gin.Context) bool {
	if h.apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || provided != h.apiKey {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid monitoring key"})
		return false
	}
	return true
}

func (h *MonitorHandler) Status(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.service.StatusText(c.Request.Context())})
}

func (h *MonitorHandler) All(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.service.AllText(c.Request.Context())})
}

func (h *MonitorHandler) Snapshot(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, h.service.Snapshot(c.Request.Context()))
}
