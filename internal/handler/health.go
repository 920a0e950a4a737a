package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and which store backend is active.
func Health(storeBackend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  storeBackend,
		})
	}
}
