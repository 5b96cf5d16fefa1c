package auth

import (
	"net/http"

	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/response"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CookieName is the HTTP-only cookie carrying the refresh token.
const CookieName = "jwt"

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service      *Service
	cookieMaxAge int
	secureCookie bool
}

func NewHandler(service *Service, cookieMaxAge int, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/activate-account", h.ActivateAccount)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/refresh-token", h.RefreshToken)
		authGroup.GET("/logout", h.Logout)
		authGroup.PATCH("/forgot-password", h.ForgotPassword)
		authGroup.PATCH("/reset-password/:resetToken", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.PATCH("/auth/update-my-password", h.UpdatePassword)
	protected.GET("/users/me", h.GetMe)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}
	if err := validator.Struct(req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, MsgEmailSuccess)
}

func (h *Handler) ActivateAccount(c *gin.Context) {
	var req ActivateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	pair, err := h.service.ActivateAccount(c.Request.Context(), req.ActivateToken, h.readCookie(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendTokenPair(c, pair)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req, h.readCookie(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendTokenPair(c, pair)
}

// RefreshToken runs the rotation engine on the cookie value. Any 401 coming
// out of a request that did carry a cookie clears it, so a client holding a
// dead or stolen token does not loop forever.
func (h *Handler) RefreshToken(c *gin.Context) {
	oldToken := h.readCookie(c)

	pair, err := h.service.Rotate(c.Request.Context(), oldToken)
	if err != nil {
		if oldToken != "" && apperr.KindOf(err) == apperr.AuthRequired {
			h.clearCookie(c)
		}
		response.Error(c, err)
		return
	}

	h.sendTokenPair(c, pair)
}

func (h *Handler) Logout(c *gin.Context) {
	oldToken := h.readCookie(c)

	if err := h.service.Logout(c.Request.Context(), oldToken); err != nil {
		response.Error(c, err)
		return
	}

	h.clearCookie(c)
	c.Status(http.StatusOK)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, MsgEmailSuccess)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	pair, err := h.service.ResetPassword(c.Request.Context(), c.Param("resetToken"), req.Password, h.readCookie(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendTokenPair(c, pair)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	email := c.GetString("user_email")
	pair, err := h.service.UpdatePassword(c.Request.Context(), email, req, h.readCookie(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendTokenPair(c, pair)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// sendTokenPair is the transport half of issuance: refresh token into the
// HTTP-only cookie, access token plus sanitized user into the body.
func (h *Handler) sendTokenPair(c *gin.Context, pair *TokenPair) {
	c.SetCookie(CookieName, pair.RefreshToken, h.cookieMaxAge, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken": pair.AccessToken,
		"user":        pair.User,
	})
}

func (h *Handler) readCookie(c *gin.Context) string {
	tok, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return tok
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", h.secureCookie, true)
}
