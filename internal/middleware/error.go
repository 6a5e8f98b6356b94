package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipes-api/backend/internal/types"
)

// Recovery turns a panicking handler into a JSON 500 response and logs the stack
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v [request_id=%s]\n%s", err, c.GetString(RequestIDKey), debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Internal Server Error"})
			}
		}()

		c.Next()
	}
}

// NotFound renders unknown routes with the same detail shape as other errors
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Detail: "Not Found"})
	}
}

// MethodNotAllowed renders known paths hit with an unsupported verb
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, types.ErrorResponse{Detail: "Method Not Allowed"})
	}
}
