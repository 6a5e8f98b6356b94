package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports that the process is up. It never touches the database.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
