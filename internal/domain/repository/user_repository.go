package repository

import (
	"context"
	"errors"

	"github.com/dreyes/auth-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert collides with the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user persistence.
//
// ExistsByEmail followed by Create is not atomic; concurrent sign-ups for
// the same email can both pass the check, so Create must translate the
// store's unique-key conflict into ErrDuplicateEmail.
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
}
