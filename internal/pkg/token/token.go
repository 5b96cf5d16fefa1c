// Package token signs and verifies the HS256 credentials used by the API:
// short-lived access tokens, longer-lived refresh tokens, and one-shot
// account-activation tokens. Each class gets its own Codec with its own
// secret and TTL.
package token

import (
	"errors"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSecretMissing = errors.New("token secret is not configured")
	ErrExpired       = errors.New("token has expired")
	ErrMalformed     = errors.New("token is malformed")
)

type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Roles  []int  `json:"roles"`
	jwtlib.RegisteredClaims
}

func (c *Claims) Public() domain.PublicUser {
	return domain.PublicUser{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Email,
		Roles: c.Roles,
	}
}

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) Sign(u domain.PublicUser) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrSecretMissing
	}

	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Roles:  u.Roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			// JTI makes every signed token unique, even two minted within
			// the same second for the same user.
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify checks signature and expiry. Expiry is reported separately from
// every other failure because callers treat the two very differently.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	return c.parse(tokenStr)
}

// Decode validates the signature but ignores expiry. The reuse-detection
// path needs the identity inside an authentic token even after it lapsed.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	return c.parse(tokenStr, jwtlib.WithoutClaimsValidation())
}

func (c *Codec) parse(tokenStr string, opts ...jwtlib.ParserOption) (*Claims, error) {
	if len(c.secret) == 0 {
		return nil, ErrSecretMissing
	}

	opts = append(opts, jwtlib.WithValidMethods([]string{"HS256"}))
	tok, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, errors.Join(ErrMalformed, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
