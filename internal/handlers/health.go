package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Pending generation count
	var pendingCount int64
	models.GetDB().Model(&models.GeneratedContent{}).
		Where("status = ?", models.GenerationStatusPending).
		Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "fitforge",
		"components": gin.H{
			"database":            dbStatus,
			"queue_mode":          queueMode,
			"pending_generations": pendingCount,
		},
	})
}
