package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/pkg/config"
)

// Schema versions recorded in goose_db_version.
const (
	VersionBaseline int64 = 1
	VersionIndexes  int64 = 2
	LatestVersion         = VersionIndexes
)

// Options configures bootstrap seeding.
type Options struct {
	Admin        config.AdminConfig
	SeedDemoData bool
	Logger       *zap.Logger
}

// Migrator applies the versioned schema migrations and seeds the store.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	opts     Options
	logger   *zap.Logger
}

// New builds a Migrator over db. Migrations are registered in code and never
// read from the global goose registry.
func New(db *sql.DB, opts Options) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("migration: nil database")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Migrator{db: db, opts: opts, logger: logger}
	migrations := []*goose.Migration{
		goose.NewGoMigration(VersionBaseline,
			&goose.GoFunc{RunTx: m.baselineUp, Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: baselineDown, Mode: goose.TransactionEnabled},
		),
		goose.NewGoMigration(VersionIndexes,
			&goose.GoFunc{RunTx: indexesUp, Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: indexesDown, Mode: goose.TransactionEnabled},
		),
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithGoMigrations(migrations...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	m.provider = provider
	return m, nil
}

// Up applies every pending migration and then makes sure an admin exists.
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("applying database migrations")

	results, err := m.provider.Up(ctx)
	for _, result := range results {
		if result == nil || result.Source == nil {
			continue
		}
		m.logger.Info("migration applied",
			zap.Int64("version", result.Source.Version),
			zap.String("direction", result.Direction),
			zap.Duration("duration", result.Duration),
		)
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if err := m.EnsureAdmin(ctx); err != nil {
		return err
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("database schema ready", zap.Int64("version", version))
	return nil
}

// Version reports the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// EnsureAdmin seeds the configured admin account when the store has none.
func (m *Migrator) EnsureAdmin(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin admin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created, err := seedAdmin(ctx, tx, m.opts.Admin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit admin seed: %w", err)
	}
	if created {
		m.logger.Info("admin account created", zap.String("email", m.opts.Admin.Email))
	}
	return nil
}
