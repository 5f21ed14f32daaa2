// Package portal defines the boundary to the university portal, the
// external identity provider that checks raw student credentials and
// returns verified profile attributes.
package portal

import "context"

// Credentials are the raw portal credentials submitted on sign-in.
// They are forwarded to the portal verbatim and never stored.
type Credentials struct {
	PortalID       string
	PortalPassword string
}

// Identity is the verified profile returned by the portal on success.
type Identity struct {
	StudentID        int64
	StudentName      string
	Major            string
	AcademicYear     string
	EnrollmentStatus string
}

// Verifier checks raw credentials against the portal. Implementations must
// return common.ErrVerificationFailed when the portal rejects the
// credentials or is unreachable.
type Verifier interface {
	Authenticate(ctx context.Context, creds Credentials) (*Identity, error)
}
