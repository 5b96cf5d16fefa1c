package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/domain"
	"github.com/zakariamagdyz/memorize-api/internal/notification"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/token"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Service contains all business logic for authentication: signup with email
// activation, login, refresh-token rotation, logout, and the password
// forgot/reset/update flows.
type Service struct {
	users    UserRepositoryInterface
	tokens   TokenStoreInterface
	access   TokenCodec
	refresh  TokenCodec
	activate TokenCodec
	mailer   notification.Mailer

	clientURL string
	resetTTL  time.Duration
}

func NewService(
	users UserRepositoryInterface,
	tokens TokenStoreInterface,
	access, refresh, activate TokenCodec,
	mailer notification.Mailer,
	clientURL string,
	resetTTL time.Duration,
) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		access:    access,
		refresh:   refresh,
		activate:  activate,
		mailer:    mailer,
		clientURL: clientURL,
		resetTTL:  resetTTL,
	}
}

// Signup creates an inactive user and mails the activation link. If the
// mail cannot be delivered the user is deleted again, otherwise the address
// would be burned without its owner ever receiving the link.
func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []int{domain.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two signups can race past the exists check; the unique index on
		// email settles it.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}

	activateToken, err := s.activate.Sign(user.Public())
	if err != nil {
		return err
	}
	activationURL := fmt.Sprintf("%s/activate-account/%s", s.clientURL, activateToken)

	if err := s.mailer.SendActivationMail(ctx, user.Public(), activationURL); err != nil {
		log.Printf("signup: activation mail failed user_id=%d error=%q", user.ID, err.Error())
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			log.Printf("signup: compensating delete failed user_id=%d error=%q", user.ID, delErr.Error())
		}
		return ErrEmailFailure
	}

	return nil
}

// ActivateAccount verifies the activation token, flips the email flag, and
// issues a first token pair.
func (s *Service) ActivateAccount(ctx context.Context, activateToken, oldCookie string) (*TokenPair, error) {
	if activateToken == "" {
		return nil, ErrNoActivationToken
	}

	claims, err := s.activate.Verify(activateToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	user, err := s.users.ActivateEmail(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.IssueTokens(ctx, user, oldCookie)
}

// Login checks credentials against active accounts only. Unknown email and
// wrong password produce the identical failure, so callers cannot probe
// which addresses are registered.
func (s *Service) Login(ctx context.Context, req LoginRequest, oldCookie string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoginFailure
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrLoginFailure
	}

	return s.IssueTokens(ctx, user, oldCookie)
}

// Logout removes the presented refresh token from the store. An unknown
// token is not an error: the cookie gets cleared either way.
func (s *Service) Logout(ctx context.Context, oldCookie string) error {
	if oldCookie == "" {
		return ErrNoCredentials
	}

	user, err := s.tokens.FindUserByToken(ctx, oldCookie)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.tokens.Remove(ctx, user.ID, oldCookie)
}

// ForgotPassword stores a hashed one-shot reset token and mails the plain
// value. On mail failure the token is cleared again so the flow can be
// retried cleanly.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	resetToken, err := s.createResetToken(ctx, user)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, resetToken)

	if err := s.mailer.SendResetMail(ctx, user.Public(), resetURL); err != nil {
		log.Printf("forgot-password: reset mail failed user_id=%d error=%q", user.ID, err.Error())
		if clrErr := s.clearResetToken(ctx, user); clrErr != nil {
			log.Printf("forgot-password: clearing reset token failed user_id=%d error=%q", user.ID, clrErr.Error())
		}
		return ErrEmailFailure
	}

	return nil
}

// ResetPassword consumes a valid, unexpired reset token, replaces the
// password, and issues a fresh token pair.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword, oldCookie string) (*TokenPair, error) {
	hash := hashResetToken(resetToken)

	user, err := s.users.GetByResetTokenHash(ctx, hash, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return nil, err
	}

	return s.IssueTokens(ctx, user, oldCookie)
}

// UpdatePassword is the authenticated variant: the current password must
// match before the new one is stored.
func (s *Service) UpdatePassword(ctx context.Context, email string, req UpdatePasswordRequest, oldCookie string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return nil, ErrUpdatePassFailure
	}

	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}

	return s.IssueTokens(ctx, user, oldCookie)
}

func (s *Service) CurrentUser(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// IssueTokens mints a fresh pair for user. A non-empty oldToken rotates the
// stored entry; an empty one registers a brand-new session.
func (s *Service) IssueTokens(ctx context.Context, user *domain.User, oldToken string) (*TokenPair, error) {
	pub := user.Public()

	accessToken, err := s.access.Sign(pub)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Sign(pub)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Replace(ctx, user.ID, oldToken, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         pub,
	}, nil
}

// HashPassword is called explicitly before persistence; there are no hidden
// save-time hooks.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) setPassword(ctx context.Context, user *domain.User, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	return s.users.Update(ctx, user)
}

func (s *Service) createResetToken(ctx context.Context, user *domain.User) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	resetToken := hex.EncodeToString(buf)

	hash := hashResetToken(resetToken)
	expiresAt := time.Now().Add(s.resetTTL)
	user.ResetTokenHash = &hash
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return resetToken, nil
}

func (s *Service) clearResetToken(ctx context.Context, user *domain.User) error {
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	return s.users.Update(ctx, user)
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
