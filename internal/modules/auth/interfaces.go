package auth

import (
	"context"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/domain"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/token"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	ActivateEmail(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// TokenStoreInterface — the per-user set of valid refresh tokens.
type TokenStoreInterface interface {
	Add(ctx context.Context, userID int64, tok string) error
	Replace(ctx context.Context, userID int64, oldToken, newToken string) error
	Remove(ctx context.Context, userID int64, tok string) error
	ClearAll(ctx context.Context, userID int64) error
	FindUserByToken(ctx context.Context, tok string) (*domain.User, error)
}

// TokenCodec signs and checks one token class.
type TokenCodec interface {
	Sign(u domain.PublicUser) (string, error)
	Verify(tok string) (*token.Claims, error)
	Decode(tok string) (*token.Claims, error)
}
