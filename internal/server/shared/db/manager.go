// Package db wires the PostgreSQL connection pool to the repositories and
// applies schema migrations at startup.
package db

import (
	"context"
	"database/sql"

	"github.com/ryabovm/passport/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
