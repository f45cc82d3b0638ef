package users

import (
	"context"

	"github.com/avolkova/inkwell/internal/server/models"
)

type Repository interface {
	// GetSingle returns the one credential record, or common.ErrNotFound if
	// no user row exists yet.
	GetSingle(ctx context.Context) (*models.User, error)

	// Create inserts a fresh user row with no passcode configured.
	Create(ctx context.Context) (*models.User, error)

	// SetPasscode installs the salt/hash pair on the user. The update only
	// applies while no hash exists; a second install returns common.ErrConflict.
	SetPasscode(ctx context.Context, id string, salt, hash []byte) error
}
