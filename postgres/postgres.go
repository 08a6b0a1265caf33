// package postgres implements the account storage driver for PostgreSQL
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const name = "github.com/schoolerp/session/postgres"

type Queryer interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

type Driver struct {
	conn Queryer
}

// NewDriver creates a new Driver
func NewDriver(conn Queryer) *Driver {
	return &Driver{
		conn: conn,
	}
}
