package credentials

import (
	"context"

	"github.com/schoolerp/session/internal/dbtype"
)

// UserStore is the persistence surface the Verifier needs from the
// remote data store.
type UserStore interface {
	// User returns the credential row for email. A missing principal is
	// reported as a NotFound error (httpio.HasNotFound).
	User(ctx context.Context, email string) (*dbtype.User, error)

	// UpdatePassword replaces the stored password hash for email.
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// SetVerifiedPassword stores the password hash and marks the email
	// verified in a single write.
	SetVerifiedPassword(ctx context.Context, email, passwordHash string) error
}
