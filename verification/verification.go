// Package verification issues and checks the single-use, time-limited
// tokens that gate first-time password setup.
package verification

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/go-playground/errors/v5"
	"github.com/schoolerp/session/internal/dbtype"
	"go.opentelemetry.io/otel"
)

const name = "github.com/schoolerp/session/verification"

// Tokens are short and human-enterable: six characters from a fixed
// uppercase base-36 alphabet.
const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 6
)

const defaultTokenTTL = 30 * time.Minute

// Option configures a Service.
type Option func(*Service)

// WithTokenTTL sets the validity window for issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service issues, validates, and retires verification tokens. Any
// persistence failure propagates: a false "verified" or "sent" answer
// would be a security-relevant lie.
type Service struct {
	store TokenStore
	ttl   time.Duration
	now   func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store TokenStore, options ...Option) *Service {
	s := &Service{
		store: store,
		ttl:   defaultTokenTTL,
		now:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	return s
}

// Issue generates a token for email, persists it with an absolute expiry
// of issue time plus the validity window, and returns it. Outstanding
// tokens for the same email are left untouched.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Service.Issue()")
	defer span.End()

	token, err := generateToken()
	if err != nil {
		return "", errors.Wrap(err, "generateToken()")
	}

	record := &dbtype.VerificationToken{
		Email:     email,
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.InsertToken(ctx, record); err != nil {
		return "", errors.Wrap(err, "verification.TokenStore.InsertToken()")
	}

	return token, nil
}

// Validate reports whether a matching, non-expired record exists for the
// (email, token) pair. The record is not consumed.
func (s *Service) Validate(ctx context.Context, email, token string) (bool, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Service.Validate()")
	defer span.End()

	ok, err := s.store.MatchToken(ctx, email, token, s.now())
	if err != nil {
		return false, errors.Wrap(err, "verification.TokenStore.MatchToken()")
	}

	return ok, nil
}

// Redeem deletes the record for the (email, token) pair. Callers must
// redeem only after the action the token guarded has succeeded, so a
// failed write never locks a principal out of a still-valid link.
func (s *Service) Redeem(ctx context.Context, email, token string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Service.Redeem()")
	defer span.End()

	if err := s.store.DeleteToken(ctx, email, token); err != nil {
		return errors.Wrap(err, "verification.TokenStore.DeleteToken()")
	}

	return nil
}

func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "rand.Int()")
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}

	return string(buf), nil
}
