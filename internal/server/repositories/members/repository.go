// Package members declares the repository contract for member accounts.
// The store enforces the uniqueness constraint on student_id; the service
// layer relies on it to arbitrate concurrent first-time sign-ins.
package members

import (
	"context"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/server/models"
)

// Repository defines persistence operations for members.
type Repository interface {
	// FindByStudentID returns the member provisioned for the given portal
	// student number, or common.ErrorNotFound.
	FindByStudentID(ctx context.Context, studentID int64) (*models.Member, error)

	// FindByMemberID returns the member with the given internal ID, or
	// common.ErrorNotFound.
	FindByMemberID(ctx context.Context, memberID string) (*models.Member, error)

	// Insert stores a newly provisioned member. A unique-constraint
	// violation on student_id is reported as common.ErrDuplicateStudentID,
	// meaning a concurrent sign-in provisioned the member first.
	Insert(ctx context.Context, member *models.Member) error

	// UpdateLastLogin sets last_login_at for an existing member.
	UpdateLastLogin(ctx context.Context, memberID string, at time.Time) error
}
