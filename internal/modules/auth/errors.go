package auth

import "github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

// User-visible failures. Login never distinguishes an unknown email from a
// wrong password, and all cookie problems share the 401 status; only the
// message text differs.
var (
	ErrNoCredentials      = apperr.New(apperr.AuthRequired, "No credentials sent!")
	ErrInvalidCredentials = apperr.New(apperr.AuthRequired, "Invalid credentials, please login again")
	ErrLoginFailure       = apperr.New(apperr.AuthRequired, "Incorrect email or password")
	ErrTokenExpired       = apperr.New(apperr.AuthRequired, "Your token has expired. Please log in again!")
	ErrTokenInvalid       = apperr.New(apperr.AuthRequired, "Invalid token. Please login again!")
	ErrNoActivationToken  = apperr.New(apperr.BadRequest, "There is no activation token, Please check your inbox")
	ErrUserExists         = apperr.New(apperr.BadRequest, "This user already exists, visit /forgot-password to reset your password.")
	ErrEmailNotFound      = apperr.New(apperr.BadRequest, "No user found with that email")
	ErrUserNotFound       = apperr.New(apperr.NotFound, "No user found with that ID")
	ErrResetTokenInvalid  = apperr.New(apperr.BadRequest, "Invalid or expired token")
	ErrUpdatePassFailure  = apperr.New(apperr.BadRequest, "The current password is incorrect")
	ErrEmailFailure       = apperr.New(apperr.ServerError, "Something went wrong when sending the email, Please try again later")
)

const MsgEmailSuccess = "Email has successfully sent, Please check your inbox."
