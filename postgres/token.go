package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/schoolerp/session/internal/dbtype"
	"go.opentelemetry.io/otel"
)

// InsertToken stores a verification token. Earlier tokens for the same
// email stay live until they expire or are redeemed.
func (d *Driver) InsertToken(ctx context.Context, token *dbtype.VerificationToken) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.InsertToken()")
	defer span.End()

	query := `
		INSERT INTO verification_tokens
			(email, token, expires_at)
		VALUES
			($1, $2, $3)`

	if _, err := d.conn.Exec(ctx, query, token.Email, token.Token, token.ExpiresAt); err != nil {
		return errors.Wrapf(err, "failed to insert verification token for %s", token.Email)
	}

	return nil
}

// MatchToken reports whether an unexpired token exists for the email.
func (d *Driver) MatchToken(ctx context.Context, email, token string, now time.Time) (bool, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.MatchToken()")
	defer span.End()

	query := `
		SELECT count(*)
		FROM verification_tokens
		WHERE email = $1 AND token = $2 AND expires_at > $3`

	var count int
	if err := pgxscan.Get(ctx, d.conn, &count, query, email, token, now); err != nil {
		return false, errors.Wrapf(err, "failed to match verification token for %s", email)
	}

	return count > 0, nil
}

// DeleteToken removes a redeemed token.
func (d *Driver) DeleteToken(ctx context.Context, email, token string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.DeleteToken()")
	defer span.End()

	query := `
		DELETE FROM verification_tokens
		WHERE email = $1 AND token = $2`

	if _, err := d.conn.Exec(ctx, query, email, token); err != nil {
		return errors.Wrapf(err, "failed to delete verification token for %s", email)
	}

	return nil
}
