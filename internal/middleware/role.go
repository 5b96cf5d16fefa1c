package middleware

import (
	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var errRoleForbidden = apperr.New(apperr.Forbidden, "You don't have permission to perform this action")

// RequireRoles passes when the token's role codes intersect the allowed
// set. Must run after Protect.
func RequireRoles(allowed ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("roles")
		if !exists {
			response.Error(c, errRoleForbidden)
			return
		}

		userRoles, ok := raw.([]int)
		if !ok {
			response.Error(c, errRoleForbidden)
			return
		}

		for _, want := range allowed {
			for _, have := range userRoles {
				if want == have {
					c.Next()
					return
				}
			}
		}

		response.Error(c, errRoleForbidden)
	}
}
