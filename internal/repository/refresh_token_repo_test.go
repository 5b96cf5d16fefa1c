package repository

import (
	"context"
	"testing"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/database"
	"github.com/zakariamagdyz/memorize-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTokenRepo(t *testing.T) (*RefreshTokenRepository, *domain.User) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &domain.User{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "irrelevant",
		Roles:        []int{domain.RoleUser},
		EmailActive:  true,
		Active:       true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return NewRefreshTokenRepository(db), user
}

func TestRefreshTokenRepo_AddAndFind(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, "token-a"))

	found, err := repo.FindUserByToken(ctx, "token-a")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, user.Email, found.Email)

	_, err = repo.FindUserByToken(ctx, "never-stored")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshTokenRepo_ReplaceSwapsAtomically(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Add(ctx, user.ID, "token-b"))

	require.NoError(t, repo.Replace(ctx, user.ID, "token-b", "token-c"))

	tokens, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"token-a", "token-c"}, tokens)
}

func TestRefreshTokenRepo_ReplaceWithEmptyOldJustAdds(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Replace(ctx, user.ID, "", "token-b"))

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRefreshTokenRepo_RemoveIsIdempotent(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Remove(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Remove(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Remove(ctx, user.ID, "never-stored"))

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRefreshTokenRepo_ClearAllWipesOnlyThatUser(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	other := &domain.User{
		Name:         "John Roe",
		Email:        "john@example.com",
		PasswordHash: "irrelevant",
		Roles:        []int{domain.RoleUser},
		EmailActive:  true,
		Active:       true,
	}
	require.NoError(t, repo.db.Create(other).Error)

	require.NoError(t, repo.Add(ctx, user.ID, "token-a"))
	require.NoError(t, repo.Add(ctx, user.ID, "token-b"))
	require.NoError(t, repo.Add(ctx, other.ID, "token-x"))

	require.NoError(t, repo.ClearAll(ctx, user.ID))

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := repo.CountByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherCount)
}

func TestRefreshTokenRepo_DeleteCreatedBefore(t *testing.T) {
	repo, user := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, user.ID, "stale"))
	require.NoError(t, repo.Add(ctx, user.ID, "fresh"))
	require.NoError(t, repo.db.Model(&domain.RefreshToken{}).
		Where("token = ?", "stale").
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	deleted, err := repo.DeleteCreatedBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	tokens, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, tokens)
}
