// Package models defines server-side data models persisted in the database.
package models

import "time"

// Member is a local account provisioned from a verified portal identity.
// StudentID is the stable portal identifier and the upsert key; exactly one
// Member exists per StudentID. Profile fields are snapshotted at creation
// and not refreshed on later logins.
type Member struct {
	MemberID         string
	StudentID        int64
	StudentName      string
	Major            string
	AcademicYear     string
	EnrollmentStatus string
	// Nickname is a short random handle assigned once at creation,
	// never reassigned.
	Nickname    string
	Role        string
	LastLoginAt time.Time
	CreatedAt   time.Time
}
