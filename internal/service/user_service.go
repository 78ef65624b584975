package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/repository"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// UserService serves profile lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns the stored user for a profile view.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found for the given ID")
		}
		return nil, err
	}
	return user, nil
}
