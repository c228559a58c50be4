package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/jwt"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	ErrAccountDisabled    = apperrors.AccessDeniedError("account is deactivated")
	ErrCaptchaFailed      = apperrors.InvalidInputError("recaptchaToken", "captcha verification failed")
)

// CaptchaVerifier checks a reCAPTCHA token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// AuthService handles registration, login and session lookups
type AuthService struct {
	users      repository.UserStore
	tokens     *jwt.TokenManager
	captcha    CaptchaVerifier
	notifier   *Notifier
	bcryptCost int
}

// NewAuthService creates an auth service. captcha may be a disabled verifier.
func NewAuthService(users repository.UserStore, tokens *jwt.TokenManager, captcha CaptchaVerifier, notifier *Notifier) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		captcha:    captcha,
		notifier:   notifier,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a user account and signs the first session
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest, remoteIP string) (*models.AuthResponse, error) {
	if err := s.captcha.Verify(ctx, req.RecaptchaToken, remoteIP); err != nil {
		metrics.UserRegistrations.WithLabelValues("captcha_failed").Inc()
		logger.Warn("ReCAPTCHA verification failed for registration", zap.Error(err))
		return nil, ErrCaptchaFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		metrics.UserRegistrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	emailAddr := normalizeEmail(req.Email)
	user, err := s.users.Create(ctx, strings.TrimSpace(req.Name), emailAddr, string(hash), models.RoleUser)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.UserRegistrations.WithLabelValues("duplicate").Inc()
			return nil, apperrors.ConflictError("email is already registered")
		}
		metrics.UserRegistrations.WithLabelValues("error").Inc()
		logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UserRegistrations.WithLabelValues("success").Inc()
	logger.Info("User registered", zap.String("user_id", user.ID))

	s.notifier.Notify(ctx, recipientOf(user), models.NewNotification{}, email.EventWelcome, nil)

	return s.issue(user)
}

// Login checks credentials and signs a session
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn comparable time so unknown emails are not distinguishable
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password)) //nolint:errcheck
			metrics.Logins.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.Logins.WithLabelValues("invalid").Inc()
		logger.Info("Login with wrong password", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.Logins.WithLabelValues("disabled").Inc()
		return nil, ErrAccountDisabled
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.issue(user)
}

// CurrentUser reloads the caller so role and activation changes apply
// before the token expires
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("session user is gone: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// SessionTTL is the lifetime of issued tokens
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate session token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	return &models.AuthResponse{
		User: user,
		Session: &models.Session{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokens.TTL()).Unix(),
		},
		Token: token,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dummyHash is a bcrypt hash of a random string
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOa5GZ5wSYYd7c1hv5rEjG3PpZ3xF0y6K")
