package model

import "time"

// Account is a persisted user account bound to the device that created it.
// At most one account exists per visitor id; the gate enforces this before
// insert and the store backs it with a unique constraint.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	VisitorID    string
	CreatedAt    time.Time
}
