package verification

import (
	"context"
	"time"

	"github.com/schoolerp/session/internal/dbtype"
)

// TokenStore is the persistence surface the Service needs from the
// remote data store.
type TokenStore interface {
	// InsertToken persists a new verification token record.
	InsertToken(ctx context.Context, token *dbtype.VerificationToken) error

	// MatchToken reports whether a record for the (email, token) pair
	// exists with an expiry after now. It does not consume the record.
	MatchToken(ctx context.Context, email, token string, now time.Time) (bool, error)

	// DeleteToken removes the record for the (email, token) pair.
	// Deleting an absent pair is not an error.
	DeleteToken(ctx context.Context, email, token string) error
}
