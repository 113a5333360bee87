// README: Recovery middleware; converts panics into a generic JSON 500.
package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PanicMessage is the only text a client sees after a panic.
const PanicMessage = "Server error processing request."

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic serving %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, RequestID(c), r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": PanicMessage})
			}
		}()
		c.Next()
	}
}
