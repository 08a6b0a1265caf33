// Package credentials verifies submitted email+password pairs against
// the stored credential rows.
//
// Stored secrets are bcrypt hashes, with one compatibility carve-out: a
// record may still hold the legacy plaintext sentinel, which is accepted
// on an exact match and migrated to a hash in the same call. The
// legacy branch is a known hardening gap (the stored sentinel is
// plaintext, and the branch is not constant-time against the hashed
// path); it is preserved for compatibility until the last legacy record
// has migrated.
package credentials

import (
	"context"
	"crypto/subtle"

	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"
)

const name = "github.com/schoolerp/session/credentials"

// defaultLegacySecret is the plaintext sentinel still present on
// unmigrated rows.
const defaultLegacySecret = "administan"

var dummyPasswordHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		// fallback to a well-known bcrypt hash for the word "password"
		return []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8iU91vK8G6D/Ejko116IhVQbK5EOi")
	}

	return hash
}()

// Option configures a Verifier.
type Option func(*Verifier)

// WithLegacySecret overrides the legacy plaintext sentinel. An empty
// value disables the legacy branch entirely.
func WithLegacySecret(secret string) Option {
	return func(v *Verifier) {
		v.legacySecret = secret
	}
}

// WithHashCost sets the bcrypt cost for newly written hashes.
func WithHashCost(cost int) Option {
	return func(v *Verifier) {
		v.cost = cost
	}
}

// Verifier validates raw secrets against stored credentials.
type Verifier struct {
	store        UserStore
	cost         int
	legacySecret string
}

// NewVerifier creates a Verifier backed by store.
func NewVerifier(store UserStore, options ...Option) *Verifier {
	v := &Verifier{
		store:        store,
		cost:         bcrypt.DefaultCost,
		legacySecret: defaultLegacySecret,
	}
	for _, opt := range options {
		opt(v)
	}

	return v
}

// Verify reports whether rawSecret matches the stored credential for
// email. It fails closed: a missing principal or a principal with no
// stored secret is false, not an error. Storage failures are errors.
//
// A row still holding the legacy sentinel is accepted only on an exact
// match, and the accepted secret is hashed and written back before
// returning true, so the legacy path is taken at most once per row.
func (v *Verifier) Verify(ctx context.Context, email, rawSecret string) (bool, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Verifier.Verify()")
	defer span.End()

	user, err := v.store.User(ctx, email)
	if err != nil {
		if httpio.HasNotFound(err) {
			// Burn a compare so an unknown email costs the same as a
			// wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(rawSecret))

			return false, nil
		}

		return false, errors.Wrap(err, "credentials.UserStore.User()")
	}

	if user.Password == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(rawSecret))

		return false, nil
	}

	if v.legacySecret != "" && *user.Password == v.legacySecret {
		if subtle.ConstantTimeCompare([]byte(rawSecret), []byte(v.legacySecret)) != 1 {
			return false, nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(rawSecret), v.cost)
		if err != nil {
			return false, errors.Wrap(err, "bcrypt.GenerateFromPassword()")
		}
		if err := v.store.UpdatePassword(ctx, email, string(hash)); err != nil {
			return false, errors.Wrap(err, "credentials.UserStore.UpdatePassword()")
		}
		logger.Ctx(ctx).Infof("migrated legacy plaintext password to bcrypt for %s", email)

		return true, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(rawSecret)); err != nil {
		return false, nil
	}

	return true, nil
}

// SetPassword hashes rawSecret and stores it for email, marking the
// email verified in the same write. Used by the verification-link
// landing flow.
func (v *Verifier) SetPassword(ctx context.Context, email, rawSecret string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Verifier.SetPassword()")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(rawSecret), v.cost)
	if err != nil {
		return errors.Wrap(err, "bcrypt.GenerateFromPassword()")
	}

	if err := v.store.SetVerifiedPassword(ctx, email, string(hash)); err != nil {
		return errors.Wrap(err, "credentials.UserStore.SetVerifiedPassword()")
	}

	return nil
}
