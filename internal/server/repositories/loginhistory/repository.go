// Package loginhistory declares the append-only store for successful
// sign-in events.
package loginhistory

import (
	"context"

	"github.com/Chuseok22/Malsami-BE/internal/server/models"
)

// Repository records sign-in events for recent-activity views.
type Repository interface {
	// Record appends one login event.
	Record(ctx context.Context, record *models.LoginRecord) error
}
