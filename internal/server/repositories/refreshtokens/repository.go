// Package refreshtokens declares the store contract for persisted refresh
// credentials and provides Postgres- and Redis-backed implementations.
//
// Several valid tokens may exist per member at once (multi-device
// sessions); no per-member uniqueness is enforced. A token stays valid
// until its own expiry or explicit deletion.
package refreshtokens

import (
	"context"

	"github.com/Chuseok22/Malsami-BE/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Save stores a refresh record. Saving the same token twice is a no-op.
	Save(ctx context.Context, token *models.RefreshToken) error

	// Find looks up a record by its token string and returns its metadata,
	// or common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a record by its token string. Deleting a non-existent
	// token is not an error.
	Delete(ctx context.Context, token string) error
}
