package response

import (
	"log"
	"net/http"

	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

const genericErrorMsg = "Something went wrong"

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  "success",
		"message": message,
	})
}

// Error is the single place failures become HTTP responses. The error kind
// decides the status code; 4xx report "fail", 5xx report "error" and hide
// the underlying message from clients.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	statusCode := statusOf(kind)

	if statusCode >= http.StatusInternalServerError {
		log.Printf("request_failed kind=%s method=%s path=%s error=%q",
			kind, c.Request.Method, c.Request.URL.Path, err.Error())
		c.AbortWithStatusJSON(statusCode, gin.H{
			"status":  "error",
			"message": genericErrorMsg,
		})
		return
	}

	c.AbortWithStatusJSON(statusCode, gin.H{
		"status":  "fail",
		"message": err.Error(),
	})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.AuthRequired:
		return http.StatusUnauthorized
	case apperr.BadRequest:
		return http.StatusBadRequest
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.UpgradeRequired:
		return http.StatusUpgradeRequired
	default:
		return http.StatusInternalServerError
	}
}
