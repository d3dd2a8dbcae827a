package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// UserLookup loads users by id.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
}

// IdentityResolver maps a token subject to a live user.
type IdentityResolver struct {
	users UserLookup
}

// NewIdentityResolver constructs an IdentityResolver.
func NewIdentityResolver(users UserLookup) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve returns the identity for subject. A missing user, including a
// subject that is not a valid id, yields found == false with a nil error.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (Identity, bool, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return Identity{}, false, nil
	}
	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Identity{}, false, nil
		}
		return Identity{}, false, fmt.Errorf("auth: resolve identity: %w", err)
	}
	return user.Identity(), true, nil
}
