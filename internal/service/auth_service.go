package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/auth"
	"github.com/spec-kit/social-platform/internal/repository"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// AuthService verifies credentials and issues access tokens. It holds no
// session state; a successful login leaves nothing behind but the token.
type AuthService struct {
	users  repository.UserRepository
	codec  *auth.TokenCodec
	logger *zap.Logger
}

// NewAuthService builds the service around the shared token codec.
func NewAuthService(codec *auth.TokenCodec, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, logger: logger}
}

// Authenticate checks the email/password pair against the stored identity and
// issues a token on success. Input shape is validated before any store access.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, time.Time, error) {
	var messages []string
	if strings.TrimSpace(email) == "" {
		messages = append(messages, "Email must not be empty")
	}
	if strings.TrimSpace(password) == "" {
		messages = append(messages, "Password must not be empty")
	}
	if len(messages) > 0 {
		return "", time.Time{}, apperrors.NewValidationFailed(messages...)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthenticated("user not found")
		}
		return "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("password mismatch", zap.String("email", email))
		return "", time.Time{}, apperrors.NewUnauthenticated("user not found")
	}

	return s.codec.Issue(user.Email)
}
