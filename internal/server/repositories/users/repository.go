package users

import (
	"context"

	"github.com/schoolcloud/identity/internal/server/models"
)

// Repository is the user-record slice of the record store. Every write
// touches exactly one record, so per-item atomicity from the store is
// sufficient; there are no multi-item transactions.
type Repository interface {
	// Create writes a new user record. An existing record with the same
	// email yields common.ErrorAlreadyExists and leaves it untouched.
	Create(ctx context.Context, user *models.User) error

	// Get returns the record for email, or common.ErrorNotFound.
	Get(ctx context.Context, email string) (*models.User, error)

	// UpdateRole mutates the role field in place.
	UpdateRole(ctx context.Context, email string, role models.Role) error

	// UpdateEncryption mutates the encryption-policy field in place.
	UpdateEncryption(ctx context.Context, email, policy string) error
}
