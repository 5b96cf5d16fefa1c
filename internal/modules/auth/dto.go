package auth

import "github.com/zakariamagdyz/memorize-api/internal/domain"

type SignupRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

type ActivateAccountRequest struct {
	ActivateToken string `json:"activateToken"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// TokenPair is what every successful issuance produces: the refresh token
// travels in the cookie, the access token and sanitized user in the body.
type TokenPair struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"-"`
	User         domain.PublicUser `json:"user"`
}
