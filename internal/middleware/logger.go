package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request line and turns panics into plain 500s.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("request_panic method=%s path=%s client_ip=%s error=%v stack=%s",
					c.Request.Method, c.Request.URL.Path, c.ClientIP(), recovered, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  "error",
					"message": "Something went wrong",
				})
				return
			}

			log.Printf("request method=%s path=%s status=%d client_ip=%s user_id=%d latency=%s",
				c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
				c.ClientIP(), c.GetInt64("user_id"), time.Since(start))
		}()

		c.Next()
	}
}
