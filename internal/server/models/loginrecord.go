package models

import "time"

// LoginRecord captures a single successful sign-in event.
type LoginRecord struct {
	MemberID   string
	LoggedInAt time.Time
	RemoteAddr string
}
