package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// LoginRequest carries staff credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// AuthUseCase verifies credentials and issues access tokens
type AuthUseCase struct {
	userRepo        ports.UserRepository
	passwordService ports.PasswordService
	tokenService    ports.TokenService
	rateLimiter     ports.RateLimitService
	loginAttempts   int
	logger          *logrus.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	userRepo ports.UserRepository,
	passwordService ports.PasswordService,
	tokenService ports.TokenService,
	rateLimiter ports.RateLimitService,
	loginAttempts int,
	logger *logrus.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		rateLimiter:     rateLimiter,
		loginAttempts:   loginAttempts,
		logger:          logger,
	}
}

// ErrTooManyAttempts is returned when the login rate limit is exhausted
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// Login checks credentials against the users table and returns a signed
// access token. Attempts are rate limited per username and client address.
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest, clientAddr string) (*LoginResponse, error) {
	if req.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if req.Password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}

	limitKey := fmt.Sprintf("login:%s:%s", req.Username, clientAddr)
	underLimit, err := uc.rateLimiter.CheckLimit(ctx, limitKey, uc.loginAttempts)
	if err != nil {
		// The limiter failing open is preferable to locking staff out.
		uc.logger.WithError(err).Warn("rate limit check failed")
	} else if !underLimit {
		return nil, ErrTooManyAttempts
	}

	user, err := uc.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			_ = uc.rateLimiter.Increment(ctx, limitKey)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		_ = uc.rateLimiter.Increment(ctx, limitKey)
		uc.logger.WithField("username", req.Username).Warn("failed login attempt")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(ports.TokenClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"username": req.Username,
		"user_id":  user.ID,
	}).Info("user logged in")

	return &LoginResponse{AccessToken: token, User: user}, nil
}
