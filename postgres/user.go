package postgres

import (
	"context"

	"github.com/cccteam/httpio"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5"
	"github.com/schoolerp/session/internal/dbtype"
	"go.opentelemetry.io/otel"
)

// User returns the account record from the database for a given email.
func (d *Driver) User(ctx context.Context, email string) (*dbtype.User, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.User()")
	defer span.End()

	query := `
		SELECT email, password, email_verified
		FROM users
		WHERE email = $1`

	u := &dbtype.User{}
	if err := pgxscan.Get(ctx, d.conn, u, query, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessage("user not found")
		}

		return nil, errors.Wrapf(err, "failed to scan row for user %s", email)
	}

	return u, nil
}

// UpdatePassword replaces the stored password hash without touching the verified flag.
func (d *Driver) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.UpdatePassword()")
	defer span.End()

	query := `
		UPDATE users SET password = $2
		WHERE email = $1`

	res, err := d.conn.Exec(ctx, query, email, passwordHash)
	if err != nil {
		return errors.Wrapf(err, "failed to update users table for %s", email)
	}

	if cnt := res.RowsAffected(); cnt != 1 {
		return errors.Newf("failed to find user %s", email)
	}

	return nil
}

// SetVerifiedPassword stores the password hash and marks the account verified
// in a single statement.
func (d *Driver) SetVerifiedPassword(ctx context.Context, email, passwordHash string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.SetVerifiedPassword()")
	defer span.End()

	query := `
		UPDATE users SET password = $2, email_verified = TRUE
		WHERE email = $1`

	res, err := d.conn.Exec(ctx, query, email, passwordHash)
	if err != nil {
		return errors.Wrapf(err, "failed to update users table for %s", email)
	}

	if cnt := res.RowsAffected(); cnt != 1 {
		return errors.Newf("failed to find user %s", email)
	}

	return nil
}

// UserAccess returns the roles and effective permissions for an account.
func (d *Driver) UserAccess(ctx context.Context, email string) (*dbtype.UserAccess, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Driver.UserAccess()")
	defer span.End()

	query := `
		SELECT email, email_verified
		FROM users
		WHERE email = $1`

	access := &dbtype.UserAccess{}
	if err := pgxscan.Get(ctx, d.conn, access, query, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessage("user not found")
		}

		return nil, errors.Wrapf(err, "failed to scan row for user %s", email)
	}

	roleQuery := `
		SELECT r.name
		FROM roles r
		JOIN role_user ru ON ru.role_id = r.id
		WHERE ru.user_email = $1
		ORDER BY r.name`

	if err := pgxscan.Select(ctx, d.conn, &access.Roles, roleQuery, email); err != nil {
		return nil, errors.Wrapf(err, "failed to scan roles for user %s", email)
	}

	permQuery := `
		SELECT DISTINCT g.permission
		FROM role_grant_matrix g
		JOIN role_user ru ON ru.role_id = g.role_id
		WHERE ru.user_email = $1
		ORDER BY g.permission`

	if err := pgxscan.Select(ctx, d.conn, &access.Permissions, permQuery, email); err != nil {
		return nil, errors.Wrapf(err, "failed to scan permissions for user %s", email)
	}

	return access, nil
}
