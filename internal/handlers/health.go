package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gigboard-dev/gigboard/db"
)

// HealthCheck answers ok only when the database responds within a bounded
// time.
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB.DB()

	if err == nil {
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Gigboard is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
