package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository holds each user's set of currently valid refresh
// tokens. A token string missing from this table never mints credentials,
// no matter how good its signature is.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Add(ctx context.Context, userID int64, tok string) error {
	return r.db.WithContext(ctx).Create(&domain.RefreshToken{
		UserID: userID,
		Token:  tok,
	}).Error
}

// Replace removes oldToken (when given) and inserts newToken in one
// transaction, so a rotation is a single atomic swap per user.
func (r *RefreshTokenRepository) Replace(ctx context.Context, userID int64, oldToken, newToken string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if oldToken != "" {
			if err := tx.Where("user_id = ? AND token = ?", userID, oldToken).
				Delete(&domain.RefreshToken{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&domain.RefreshToken{
			UserID: userID,
			Token:  newToken,
		}).Error
	})
}

// Remove is idempotent: removing an absent token is not an error.
func (r *RefreshTokenRepository) Remove(ctx context.Context, userID int64, tok string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, tok).
		Delete(&domain.RefreshToken{}).Error
}

// ClearAll wipes every session for the user. Only the reuse-detection
// response calls this.
func (r *RefreshTokenRepository) ClearAll(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.RefreshToken{}).Error
}

// FindUserByToken resolves the owner of an exact token string, or
// gorm.ErrRecordNotFound when no store contains it.
func (r *RefreshTokenRepository) FindUserByToken(ctx context.Context, tok string) (*domain.User, error) {
	var row domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", tok).First(&row).Error
	if err != nil {
		return nil, err
	}

	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, row.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned row; treat the token as unknown.
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *RefreshTokenRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *RefreshTokenRepository) ListByUser(ctx context.Context, userID int64) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeleteCreatedBefore drops tokens older than the refresh TTL; the cleanup
// job runs this on a schedule.
func (r *RefreshTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
