package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func noRows(table string) error {
	return sqlerr.WrapNoRows(table, pgx.ErrNoRows)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type authFixture struct {
	users  *mockUserStore
	tokens *mockTokenStore
	mailer *mockMailer
	svc    *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  &mockUserStore{},
		tokens: &mockTokenStore{},
		mailer: &mockMailer{},
	}
	f.svc = NewAuthService(f.users, f.tokens, f.mailer, "", bcrypt.MinCost, nopLogger())
	return f
}

func TestSignupHashesPasswordAndEnqueuesEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("Create", ctx, mock.MatchedBy(func(p repository.CreateUserParams) bool {
		return p.Username == "ada" &&
			!p.IsSuperuser &&
			bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("correct horse")) == nil
	})).Return(&model.User{ID: 1, Username: "ada", Email: "ada@example.com", FirstName: "Ada"}, nil)
	f.mailer.On("EnqueueWelcomeEmail", ctx, "ada@example.com", "Ada").Return(nil)

	user, err := f.svc.Signup(ctx, &model.SignupPayload{
		Username:  "ada",
		Email:     "ada@example.com",
		FirstName: "Ada",
		Password:  "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	f.users.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Signup(context.Background(), &model.SignupPayload{
		Username: "ada",
		Email:    "ada@example.com",
		Password: strings.Repeat("x", 100),
	})

	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "password", httpErr.Errors[0].Field)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupSurvivesQueueFailure(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("Create", ctx, mock.Anything).Return(&model.User{ID: 2, Email: "b@example.com"}, nil)
	f.mailer.On("EnqueueWelcomeEmail", ctx, "b@example.com", "").Return(errors.New("redis down"))

	_, err := f.svc.Signup(ctx, &model.SignupPayload{Username: "bob", Email: "b@example.com", Password: "password1"})
	assert.NoError(t, err)
}

func TestObtainToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := &model.User{ID: 5, Username: "ada", IsActive: true, PasswordHash: hashed(t, "secret-pass")}

	f.users.On("GetByUsername", ctx, "ada").Return(user, nil)
	f.tokens.On("GetOrCreate", ctx, int64(5), mock.MatchedBy(func(key string) bool {
		return len(key) == 40
	})).Return(&model.AuthToken{Key: "existing-key", UserID: 5}, nil)

	token, err := f.svc.ObtainToken(ctx, &model.ObtainTokenPayload{Username: "ada", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "existing-key", token.Token)
}

func TestObtainTokenBadCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("GetByUsername", ctx, "ada").
		Return(&model.User{ID: 5, IsActive: true, PasswordHash: hashed(t, "secret-pass")}, nil)
	f.users.On("GetByUsername", ctx, "ghost").Return(nil, noRows("users"))
	f.users.On("GetByUsername", ctx, "sleepy").
		Return(&model.User{ID: 6, IsActive: false, PasswordHash: hashed(t, "secret-pass")}, nil)

	for _, p := range []model.ObtainTokenPayload{
		{Username: "ada", Password: "wrong"},
		{Username: "ghost", Password: "secret-pass"},
		{Username: "sleepy", Password: "secret-pass"},
	} {
		_, err := f.svc.ObtainToken(ctx, &p)
		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, "INVALID_CREDENTIALS", httpErr.Code)
	}
	f.tokens.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewTokenKey(t *testing.T) {
	a, err := newTokenKey()
	require.NoError(t, err)
	b, err := newTokenKey()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestAuthenticateToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("GetByToken", ctx, "good").Return(&model.User{ID: 1, IsActive: true}, nil)
	f.users.On("GetByToken", ctx, "bad").Return(nil, noRows("users"))
	f.users.On("GetByToken", ctx, "inactive").Return(&model.User{ID: 2}, nil)

	user, err := f.svc.AuthenticateToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = f.svc.AuthenticateToken(ctx, "bad")
	assert.Equal(t, msgInvalidToken, requireHTTPError(t, err, http.StatusUnauthorized).Message)

	_, err = f.svc.AuthenticateToken(ctx, "inactive")
	assert.Equal(t, msgInactiveUser, requireHTTPError(t, err, http.StatusUnauthorized).Message)
}

func TestAuthenticateBasic(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("GetByUsername", ctx, "ada").
		Return(&model.User{ID: 1, IsActive: true, PasswordHash: hashed(t, "pw123456")}, nil)

	user, err := f.svc.AuthenticateBasic(ctx, "ada", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = f.svc.AuthenticateBasic(ctx, "ada", "nope")
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuthenticateExternalProvisionsOnce(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("GetByExternalID", ctx, "user_2abc").Return(nil, noRows("users")).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(p repository.CreateUserParams) bool {
		return p.Username == "user_2abc" && p.ExternalID != nil && *p.ExternalID == "user_2abc" && p.PasswordHash == ""
	})).Return(&model.User{ID: 9, Username: "user_2abc", IsActive: true}, nil).Once()

	user, err := f.svc.AuthenticateExternal(ctx, "user_2abc")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)

	f.users.On("GetByExternalID", ctx, "user_2abc").Return(&model.User{ID: 9, IsActive: true}, nil).Once()
	user, err = f.svc.AuthenticateExternal(ctx, "user_2abc")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)

	f.users.AssertExpectations(t)
}

func TestUpdateProfileRequiresUser(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.UpdateProfile(context.Background(), nil, &model.UpdateProfilePayload{FirstName: "A"})
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestCreateSuperuser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("GetByUsername", ctx, "root").Return(nil, noRows("users")).Once()
	f.users.On("Create", ctx, mock.MatchedBy(func(p repository.CreateUserParams) bool {
		return p.Username == "root" && p.IsSuperuser
	})).Return(&model.User{ID: 1, Username: "root", IsSuperuser: true}, nil).Once()

	user, err := f.svc.CreateSuperuser(ctx, "root", "root@example.com", "password1")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)

	f.users.On("GetByUsername", ctx, "ada").Return(&model.User{ID: 4, Username: "ada"}, nil).Once()
	f.users.On("SetSuperuser", ctx, int64(4), mock.AnythingOfType("string")).
		Return(&model.User{ID: 4, IsSuperuser: true}, nil).Once()

	user, err = f.svc.CreateSuperuser(ctx, "ada", "", "password2")
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)

	f.users.AssertExpectations(t)
}
