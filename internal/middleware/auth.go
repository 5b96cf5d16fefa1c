package middleware

import (
	"errors"
	"strings"

	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/response"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

var (
	errNotLoggedIn = apperr.New(apperr.AuthRequired, "You are not logged in, Please login to get access")
	errInvalidAT   = apperr.New(apperr.AuthRequired, "Invalid token. Please login again!")
	errUpgradeAT   = apperr.New(apperr.UpgradeRequired, "Your access token has expired , Please upgrade it with your refresh token")
)

// Protect verifies the Bearer access token. An expired token answers 426 so
// the client knows to hit the refresh endpoint rather than re-login.
func Protect(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, errNotLoggedIn)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			response.Error(c, errNotLoggedIn)
			return
		}

		claims, err := codec.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				response.Error(c, errUpgradeAT)
				return
			}
			response.Error(c, errInvalidAT)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}
