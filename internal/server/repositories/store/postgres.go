package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/schoolcloud/identity/internal/server/migrations"
	"github.com/schoolcloud/identity/internal/server/repositories/events"
	"github.com/schoolcloud/identity/internal/server/repositories/users"
)

// PostgresStore vends PostgreSQL-backed repositories over one connection
// pool and exposes a schema migration hook.
type PostgresStore struct {
	db     *sql.DB
	users  users.Repository
	events events.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresStore opens a pool on dsn, runs the embedded migrations, and
// wires the repositories.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{
		db:     db,
		users:  users.NewPostgresRepository(db),
		events: events.NewPostgresRepository(db),
	}

	if err := s.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the store's database connection.
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, s.db, "."); err != nil {
		return err
	}
	return nil
}

func (s *PostgresStore) Users() users.Repository { return s.users }

func (s *PostgresStore) Events() events.Repository { return s.events }

func (s *PostgresStore) Close() error { return s.db.Close() }
