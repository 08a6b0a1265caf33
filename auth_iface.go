package session

import (
	"context"

	"github.com/schoolerp/session/internal/dbtype"
)

// AccessReader resolves the access surface for a principal from the
// remote data store.
type AccessReader interface {
	// UserAccess returns the principal's verification status plus its
	// server-resolved role names and flat permission list. A missing
	// principal is reported as a NotFound error (httpio.HasNotFound).
	UserAccess(ctx context.Context, email string) (*dbtype.UserAccess, error)
}

// Mailer dispatches verification emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, baseURL, token string) error
}
