// Package dbtype holds the row types shared by the storage interfaces
// and their drivers.
package dbtype

import "time"

// User is a row from the users table. Password is nil until the
// principal has completed first-time verification.
type User struct {
	Email         string  `db:"email"`
	Password      *string `db:"password"`
	EmailVerified bool    `db:"email_verified"`
}

// VerificationToken is a row from the verification_tokens table. Records
// are matched by the (email, token) pair; multiple outstanding tokens per
// email are permitted.
type VerificationToken struct {
	Email     string    `db:"email"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

// UserAccess is the resolved access surface for a principal: the role
// names assigned to it and the flat permission list those roles grant.
type UserAccess struct {
	Email         string
	EmailVerified bool
	Permissions   []string
	Roles         []string
}
