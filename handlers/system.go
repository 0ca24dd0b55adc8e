package handlers

import (
	"net/http"
	"time"

	"gatekeeper/core"
	"gatekeeper/database"
	"gatekeeper/version"

	"github.com/gin-gonic/gin"
)

// HealthCheck health endpoint
func HealthCheck(c *gin.Context) {
	dbHealthy := database.Ping(c.Request.Context())

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().Unix(),
		"version":    version.GetVersion(),
		"db_healthy": dbHealthy,
	}

	if !dbHealthy {
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// GetDispatchLogs returns recent outbound delivery failures, latest first.
func GetDispatchLogs(c *gin.Context) {
	respondData(c, http.StatusOK, core.DispatchLoggerInstance.Recent())
}

// ClearDispatchLogs wipes recorded delivery failures
func ClearDispatchLogs(c *gin.Context) {
	core.DispatchLoggerInstance.Clear()
	respondDataMessage(c, http.StatusOK, gin.H{}, "dispatch logs cleared")
}
