package auth

import (
	"context"
	"errors"
	"log"

	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rotate implements refresh-token rotation with reuse detection. Given the
// incoming cookie value it lands in one of four places:
//
//   - no token              -> 401, nothing else happens
//   - token in no store     -> reuse of a rotated-out token; every session
//     of the decoded identity is wiped before the 401
//   - token in a store but  -> the entry is dropped from the store, 401
//     failing verification
//   - token valid and owned -> a new pair is minted and atomically swapped
//     in for the old one
//
// A token absent from the store is treated as stolen even when its
// signature is perfectly fine: the legitimate session already rotated past
// it, so whoever presents it now replayed an old capture.
func (s *Service) Rotate(ctx context.Context, oldToken string) (*TokenPair, error) {
	if oldToken == "" {
		return nil, ErrNoCredentials
	}

	user, err := s.tokens.FindUserByToken(ctx, oldToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.fireReuseDetection(ctx, oldToken)
		}
		return nil, err
	}

	claims, err := s.refresh.Verify(oldToken)
	if err != nil {
		// Expired or tampered, yet still registered to user: the entry is
		// dead weight and must not survive.
		if rmErr := s.tokens.Remove(ctx, user.ID, oldToken); rmErr != nil {
			return nil, rmErr
		}
		return nil, ErrInvalidCredentials
	}

	// Signature checks out but the embedded name disagrees with the stored
	// record. Can only mean store corruption or a token collision, so
	// reject without touching the store.
	if claims.Name != user.Name {
		log.Printf("refresh: identity mismatch user_id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.IssueTokens(ctx, user, oldToken)
}

// fireReuseDetection handles a token no store contains. If the token still
// decodes to a real identity, all of that user's sessions are revoked: the
// attacker proved they once held a valid token for the account, so every
// outstanding credential is suspect. The caller gets a 401 either way; a
// token too mangled to decode gets a 400 carrying the decode error.
func (s *Service) fireReuseDetection(ctx context.Context, oldToken string) error {
	claims, err := s.refresh.Decode(oldToken)
	if err != nil {
		return apperr.Wrap(apperr.BadRequest, err.Error(), err)
	}

	victim, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Identity no longer resolvable; nothing to wipe.
			return ErrNoCredentials
		}
		return err
	}

	if err := s.tokens.ClearAll(ctx, victim.ID); err != nil {
		return err
	}

	log.Printf("security_event type=refresh_token_reuse event_id=%s user_id=%d email=%s",
		uuid.NewString(), victim.ID, victim.Email)

	return ErrNoCredentials
}
