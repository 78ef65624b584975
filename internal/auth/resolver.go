package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-platform/internal/domain"
)

// ResolvedIdentity is the outcome of mapping a valid token back to a stored account.
type ResolvedIdentity struct {
	UserID  string
	Subject string
	Role    domain.Role
}

// SubjectStore looks up stored identities by token subject.
type SubjectStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// IdentityResolver validates bearer tokens and maps their subject to a stored
// identity. Resolution is a pure function of the token, the store and the
// current time; nothing is cached or mutated.
type IdentityResolver struct {
	codec *TokenCodec
	store SubjectStore
	now   func() time.Time
}

// NewIdentityResolver constructs a resolver.
func NewIdentityResolver(codec *TokenCodec, store SubjectStore) *IdentityResolver {
	return &IdentityResolver{codec: codec, store: store, now: time.Now}
}

// Resolve decodes the token, rejects expired claims and resolves the subject.
// Every token-shaped failure wraps ErrInvalidToken.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*ResolvedIdentity, error) {
	claims, err := r.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(r.now()) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	user, err := r.store.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
		}
		return nil, err
	}

	return &ResolvedIdentity{UserID: user.ID, Subject: user.Email, Role: user.Role}, nil
}
