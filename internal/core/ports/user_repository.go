package ports

import (
	"context"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new account.
	// Returns errs.ObjectAlreadyExistsError when the email is taken.
	Add(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ObjectNotFoundError when the account does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// FindByEmail looks up a normalized email.
	// Returns errs.ObjectNotFoundError when no account uses it.
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
