package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pranaykumar2/private-blog/internal/apperror"
	"github.com/pranaykumar2/private-blog/internal/auth"
	"github.com/pranaykumar2/private-blog/internal/model"
	"github.com/pranaykumar2/private-blog/internal/repository"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

// TokenPair is returned by Login: a short-lived access token plus a
// long-lived refresh token.
type TokenPair struct {
	Access  string
	Refresh string
}

// UserService handles registration, login, token refresh, and profile access.
type UserService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new user from username, email, and plaintext password.
// The password is bcrypt-hashed before it reaches the repository. Duplicate
// usernames/emails come back from the repository as validation errors.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
//
// An unknown username and a wrong password produce the same error, so the
// endpoint can't be used to discover which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	invalid := apperror.Unauthenticated("invalid username or password")

	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, invalid
	}

	access, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	s.logger.Info("user logged in",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user is
// looked up again so a token for a deleted account stops working immediately.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.Unauthenticated("invalid or expired refresh token")
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthenticated("invalid or expired refresh token")
		}
		return "", fmt.Errorf("looking up user %d: %w", userID, err)
	}

	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}

	return access, nil
}

// GetByID retrieves a user record. Used for both the caller's own profile
// and public user detail views; the handler decides which fields to expose.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// UpdateProfile modifies the caller's own record. Nil fields are left
// unchanged; a new password is re-hashed. The caller can only ever update
// themselves; callerID comes from the validated token, not the request.
func (s *UserService) UpdateProfile(ctx context.Context, callerID int64, username, email, password *string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if username != nil {
		u := strings.TrimSpace(*username)
		if err := validateUsername(u); err != nil {
			return nil, err
		}
		user.Username = u
	}
	if email != nil {
		e := strings.TrimSpace(*email)
		if err := validateEmail(e); err != nil {
			return nil, err
		}
		user.Email = e
	}
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(*password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		s.logger.Error("failed to update profile",
			slog.Int64("id", callerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("profile updated", slog.Int64("id", user.ID))

	return user, nil
}

func validateUsername(username string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength))
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return apperror.ValidationFailed("email", "email must be a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", MaxPasswordLength))
	}
	return nil
}
