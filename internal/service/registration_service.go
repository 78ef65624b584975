package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/auth"
	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/events"
	"github.com/spec-kit/social-platform/internal/repository"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// RegistrationInput carries a new account request.
type RegistrationInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RegistrationResult is returned on successful registration.
type RegistrationResult struct {
	UserID string
	Token  string
}

// RegistrationService owns account creation: validation, uniqueness, hashing,
// persistence and the initial token. Authentication lives in AuthService.
type RegistrationService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewRegistrationService builds the service.
func NewRegistrationService(codec *auth.TokenCodec, users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		users:      users,
		codec:      codec,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register validates the request, rejects duplicate emails, persists the new
// identity and issues a token exactly as a login would.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*RegistrationResult, error) {
	if messages := validateRegistration(input); len(messages) > 0 {
		return nil, apperrors.NewValidationFailed(messages...)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewAlreadyExists("user email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := s.codec.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.publishRegistered(ctx, user)
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return &RegistrationResult{UserID: user.ID, Token: token}, nil
}

func (s *RegistrationService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{UserID: user.ID, Email: user.Email},
	})
}

func validateRegistration(input RegistrationInput) []string {
	var messages []string
	if strings.TrimSpace(input.FirstName) == "" {
		messages = append(messages, "First name must not be empty")
	}
	if strings.TrimSpace(input.Email) == "" {
		messages = append(messages, "Email must not be empty")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		messages = append(messages, "Provide valid email")
	}
	if strings.TrimSpace(input.Password) == "" {
		messages = append(messages, "Password must not be empty")
	}
	return messages
}
