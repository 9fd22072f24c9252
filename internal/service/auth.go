package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes yields 40 hex characters per token.
const tokenBytes = 20

type UserStore interface {
	Create(ctx context.Context, p repository.CreateUserParams) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetByToken(ctx context.Context, key string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (*model.User, error)
	SetSuperuser(ctx context.Context, id int64, passwordHash string) (*model.User, error)
}

type TokenStore interface {
	GetOrCreate(ctx context.Context, userID int64, key string) (*model.AuthToken, error)
}

// WelcomeMailer schedules the sign-up e-mail.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error
}

type AuthService struct {
	users      UserStore
	tokens     TokenStore
	mailer     WelcomeMailer
	bcryptCost int
	logger     *zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenStore, mailer WelcomeMailer, clerkSecretKey string, bcryptCost int, logger *zerolog.Logger) *AuthService {
	if clerkSecretKey != "" {
		clerk.SetKey(clerkSecretKey)
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewBadRequestError("Password is too long", true, nil, []errs.FieldError{{
			Field: "password",
			Error: fmt.Sprintf("must be at most %d bytes", model.MaxPasswordBytes),
		}}, nil)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Signup registers a user and schedules the welcome e-mail. Failing to
// enqueue the e-mail does not fail the sign-up.
func (s *AuthService) Signup(ctx context.Context, payload *model.SignupPayload) (*model.User, error) {
	hash, err := s.hashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, repository.CreateUserParams{
		Username:     payload.Username,
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
			s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	return user, nil
}

// ObtainToken exchanges credentials for the user's API token, creating it
// on first use.
func (s *AuthService) ObtainToken(ctx context.Context, payload *model.ObtainTokenPayload) (*model.TokenResponse, error) {
	user, err := s.checkPassword(ctx, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			return nil, errs.NewBadRequestError(msgBadCredentials, true, errs.Code("INVALID_CREDENTIALS"), nil, nil)
		}
		return nil, err
	}

	key, err := newTokenKey()
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{Token: token.Key}, nil
}

var errBadCredentials = errors.New("bad credentials")

// checkPassword returns the active user matching username and password.
func (s *AuthService) checkPassword(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !user.IsActive {
		return nil, errBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errBadCredentials
	}
	return user, nil
}

func newTokenKey() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// AuthenticateToken resolves "Authorization: Token <key>".
func (s *AuthService) AuthenticateToken(ctx context.Context, key string) (*model.User, error) {
	user, err := s.users.GetByToken(ctx, key)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return nil, errs.NewUnauthorizedError(msgInvalidToken, true)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.NewUnauthorizedError(msgInactiveUser, true)
	}
	return user, nil
}

// AuthenticateBasic resolves "Authorization: Basic <credentials>".
func (s *AuthService) AuthenticateBasic(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.checkPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			return nil, errs.NewUnauthorizedError(msgInvalidBasic, true)
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateExternal maps a verified Clerk subject to a local user,
// provisioning one without a password on first sight.
func (s *AuthService) AuthenticateExternal(ctx context.Context, externalID string) (*model.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		if !user.IsActive {
			return nil, errs.NewUnauthorizedError(msgInactiveUser, true)
		}
		return user, nil
	}
	if !sqlerr.IsNoRows(err) {
		return nil, err
	}

	user, err = s.users.Create(ctx, repository.CreateUserParams{
		Username:   externalID,
		ExternalID: &externalID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("external_id", externalID).Msg("provisioned external user")
	return user, nil
}

// UpdateProfile changes the caller's display names.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *model.User, payload *model.UpdateProfilePayload) (*model.User, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, actor.ID, payload.FirstName, payload.LastName)
}

// CreateSuperuser creates a superuser, or promotes the existing user with
// that username and resets their password.
func (s *AuthService) CreateSuperuser(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return s.users.SetSuperuser(ctx, existing.ID, hash)
	case !sqlerr.IsNoRows(err):
		return nil, err
	}

	return s.users.Create(ctx, repository.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsSuperuser:  true,
	})
}
