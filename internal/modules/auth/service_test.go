package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zakariamagdyz/memorize-api/internal/domain"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock user repository implementing UserRepositoryInterface.
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, hash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) ActivateEmail(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock token store implementing TokenStoreInterface.
type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Add(ctx context.Context, userID int64, tok string) error {
	args := m.Called(ctx, userID, tok)
	return args.Error(0)
}

func (m *mockTokenStore) Replace(ctx context.Context, userID int64, oldToken, newToken string) error {
	args := m.Called(ctx, userID, oldToken, newToken)
	return args.Error(0)
}

func (m *mockTokenStore) Remove(ctx context.Context, userID int64, tok string) error {
	args := m.Called(ctx, userID, tok)
	return args.Error(0)
}

func (m *mockTokenStore) ClearAll(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockTokenStore) FindUserByToken(ctx context.Context, tok string) (*domain.User, error) {
	args := m.Called(ctx, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Mock codec implementing TokenCodec.
type mockCodec struct {
	mock.Mock
}

func (m *mockCodec) Sign(u domain.PublicUser) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *mockCodec) Verify(tok string) (*token.Claims, error) {
	args := m.Called(tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Claims), args.Error(1)
}

func (m *mockCodec) Decode(tok string) (*token.Claims, error) {
	args := m.Called(tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Claims), args.Error(1)
}

// Mock mailer implementing notification.Mailer.
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendActivationMail(ctx context.Context, to domain.PublicUser, url string) error {
	args := m.Called(ctx, to, url)
	return args.Error(0)
}

func (m *mockMailer) SendResetMail(ctx context.Context, to domain.PublicUser, url string) error {
	args := m.Called(ctx, to, url)
	return args.Error(0)
}

type serviceMocks struct {
	users    *mockUserRepo
	tokens   *mockTokenStore
	access   *mockCodec
	refresh  *mockCodec
	activate *mockCodec
	mailer   *mockMailer
}

func newServiceWithMocks() (*Service, *serviceMocks) {
	m := &serviceMocks{
		users:    new(mockUserRepo),
		tokens:   new(mockTokenStore),
		access:   new(mockCodec),
		refresh:  new(mockCodec),
		activate: new(mockCodec),
		mailer:   new(mockMailer),
	}
	svc := NewService(
		m.users, m.tokens,
		m.access, m.refresh, m.activate,
		m.mailer, "http://localhost:3000", 10*time.Minute,
	)
	return svc, m
}

func activeUser(id int64) *domain.User {
	hash, _ := HashPassword("password123")
	return &domain.User{
		ID:           id,
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Roles:        []int{domain.RoleUser},
		EmailActive:  true,
		Active:       true,
	}
}

func TestService_Signup_Success(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "jane@example.com" &&
			u.PasswordHash != "" && u.PasswordHash != "password123" &&
			len(u.Roles) == 1 && u.Roles[0] == domain.RoleUser
	})).Return(nil)
	m.activate.On("Sign", mock.Anything).Return("activate-token", nil)
	m.mailer.On("SendActivationMail", mock.Anything, mock.Anything,
		"http://localhost:3000/activate-account/activate-token").Return(nil)

	err := svc.Signup(context.Background(), SignupRequest{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	})

	require.NoError(t, err)
	m.users.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestService_Signup_EmailExists(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(true, nil)

	err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUserExists)
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Signup_MailFailureDeletesUser(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	m.users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 7
	}).Return(nil)
	m.activate.On("Sign", mock.Anything).Return("activate-token", nil)
	m.mailer.On("SendActivationMail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	m.users.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailFailure)
	m.users.AssertCalled(t, "Delete", mock.Anything, int64(7))
}

func TestService_Login_Success(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	m.access.On("Sign", user.Public()).Return("new-AT", nil)
	m.refresh.On("Sign", user.Public()).Return("new-RT", nil)
	m.tokens.On("Replace", mock.Anything, int64(10), "", "new-RT").Return(nil)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "new-AT", pair.AccessToken)
	assert.Equal(t, "new-RT", pair.RefreshToken)
	assert.Equal(t, user.Public(), pair.User)
	m.tokens.AssertExpectations(t)
}

func TestService_Login_ReloginRotatesOldCookie(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	m.access.On("Sign", user.Public()).Return("new-AT", nil)
	m.refresh.On("Sign", user.Public()).Return("new-RT", nil)
	m.tokens.On("Replace", mock.Anything, int64(10), "old-RT", "new-RT").Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	}, "old-RT")

	require.NoError(t, err)
	m.tokens.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeUser(10), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	}, "")

	assert.ErrorIs(t, err, ErrLoginFailure)
	m.tokens.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_UnknownEmailSameFailure(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, "")

	// Identical failure as a wrong password: no account probing.
	assert.ErrorIs(t, err, ErrLoginFailure)
}

func TestService_ActivateAccount(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	m.activate.On("Verify", "good-token").Return(&token.Claims{UserID: 10}, nil)
	m.users.On("ActivateEmail", mock.Anything, int64(10)).Return(user, nil)
	m.access.On("Sign", user.Public()).Return("new-AT", nil)
	m.refresh.On("Sign", user.Public()).Return("new-RT", nil)
	m.tokens.On("Replace", mock.Anything, int64(10), "", "new-RT").Return(nil)

	pair, err := svc.ActivateAccount(context.Background(), "good-token", "")
	require.NoError(t, err)
	assert.Equal(t, "new-AT", pair.AccessToken)
}

func TestService_ActivateAccount_Failures(t *testing.T) {
	svc, m := newServiceWithMocks()

	_, err := svc.ActivateAccount(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoActivationToken)

	m.activate.On("Verify", "expired").Return(nil, token.ErrExpired)
	_, err = svc.ActivateAccount(context.Background(), "expired", "")
	assert.ErrorIs(t, err, ErrTokenExpired)

	m.activate.On("Verify", "garbage").Return(nil, token.ErrMalformed)
	_, err = svc.ActivateAccount(context.Background(), "garbage", "")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	m.activate.On("Verify", "orphan").Return(&token.Claims{UserID: 99}, nil)
	m.users.On("ActivateEmail", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.ActivateAccount(context.Background(), "orphan", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Logout(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	err := svc.Logout(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoCredentials)

	m.tokens.On("FindUserByToken", mock.Anything, "unknown-RT").Return(nil, gorm.ErrRecordNotFound)
	assert.NoError(t, svc.Logout(context.Background(), "unknown-RT"))

	m.tokens.On("FindUserByToken", mock.Anything, "known-RT").Return(user, nil)
	m.tokens.On("Remove", mock.Anything, int64(10), "known-RT").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "known-RT"))
	m.tokens.AssertExpectations(t)
}

func TestService_ForgotPassword_Success(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// Only the 64-char hash is persisted, never the plain token.
		return u.ResetTokenHash != nil && len(*u.ResetTokenHash) == 64 &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(time.Now())
	})).Return(nil)
	m.mailer.On("SendResetMail", mock.Anything, mock.Anything, mock.MatchedBy(func(url string) bool {
		return len(url) > len("http://localhost:3000/reset-password/")
	})).Return(nil)

	err := svc.ForgotPassword(context.Background(), "jane@example.com")
	require.NoError(t, err)
	m.mailer.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestService_ForgotPassword_MailFailureClearsToken(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	m.users.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.mailer.On("SendResetMail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	err := svc.ForgotPassword(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, ErrEmailFailure)

	assert.Nil(t, user.ResetTokenHash)
	assert.Nil(t, user.ResetTokenExpiresAt)
	m.users.AssertNumberOfCalls(t, "Update", 2)
}

func TestService_ResetPassword_InvalidToken(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("GetByResetTokenHash", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ResetPassword(context.Background(), "bogus", "new-password1", "")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestService_ResetPassword_Success(t *testing.T) {
	svc, m := newServiceWithMocks()
	user := activeUser(10)
	hash := "some-reset-hash"
	expiry := time.Now().Add(5 * time.Minute)
	user.ResetTokenHash = &hash
	user.ResetTokenExpiresAt = &expiry

	m.users.On("GetByResetTokenHash", mock.Anything, mock.Anything, mock.Anything).Return(user, nil)
	m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ResetTokenHash == nil && u.ResetTokenExpiresAt == nil
	})).Return(nil)
	m.access.On("Sign", mock.Anything).Return("new-AT", nil)
	m.refresh.On("Sign", mock.Anything).Return("new-RT", nil)
	m.tokens.On("Replace", mock.Anything, int64(10), "old-RT", "new-RT").Return(nil)

	pair, err := svc.ResetPassword(context.Background(), "plain-reset-token", "new-password1", "old-RT")
	require.NoError(t, err)
	assert.Equal(t, "new-RT", pair.RefreshToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password1")))
}

func TestService_UpdatePassword_WrongCurrent(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeUser(10), nil)

	_, err := svc.UpdatePassword(context.Background(), "jane@example.com", UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password1",
	}, "")
	assert.ErrorIs(t, err, ErrUpdatePassFailure)
}
