package interfaces

import (
	"context"
	"errors"

	"github.com/khushi71103/travelpin/internal/models"
)

// ErrDuplicateKey is returned by AddUser when the store's unique indices
// reject the insert. Implementations map their driver's duplicate-key error
// to this sentinel.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines the contract for storing and retrieving User data.
// Implementations are database-specific; callers never see driver types.
type UserRepository interface {
	// AddUser persists a new user and returns the assigned id.
	AddUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns the user with the given username, or
	// (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByUsernameOrEmail returns any user whose username or email
	// matches, or (nil, nil) when neither does. Used by the registration
	// uniqueness probe.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	// GetAllUsers returns every user record.
	GetAllUsers(ctx context.Context) ([]models.User, error)
	// EnsureIndices creates the unique username/email constraints.
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
