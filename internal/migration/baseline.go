package migration

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type storeState int

const (
	stateFresh storeState = iota
	stateLegacy
	stateUnversioned
)

func (s storeState) String() string {
	switch s {
	case stateFresh:
		return "fresh"
	case stateLegacy:
		return "legacy"
	default:
		return "unversioned"
	}
}

// detectState classifies a database that has no version marker yet. This is
// the only place the schema is probed; later versions rely on goose_db_version.
func detectState(ctx context.Context, q execQuerier) (storeState, error) {
	exists, err := tableExists(ctx, q, "students")
	if err != nil {
		return stateFresh, err
	}
	if !exists {
		return stateFresh, nil
	}
	columns, err := tableColumns(ctx, q, "students")
	if err != nil {
		return stateFresh, err
	}
	if !columns.has("full_name") {
		return stateLegacy, nil
	}
	return stateUnversioned, nil
}

// baselineUp brings any pre-versioning database to the version 1 schema and
// seeds it, inside the single transaction goose opened for this version.
func (m *Migrator) baselineUp(ctx context.Context, tx *sql.Tx) error {
	state, err := detectState(ctx, tx)
	if err != nil {
		return err
	}
	m.logger.Info("baseline migration", zap.Stringer("state", state))

	switch state {
	case stateFresh:
		if err := execAll(ctx, tx, schemaStatements); err != nil {
			return err
		}
		if m.opts.SeedDemoData {
			if err := seedDemoData(ctx, tx); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
		}
	case stateLegacy:
		if err := migrateLegacy(ctx, tx); err != nil {
			return fmt.Errorf("migrate legacy schema: %w", err)
		}
	case stateUnversioned:
		if err := adoptUnversioned(ctx, tx); err != nil {
			return fmt.Errorf("adopt unversioned schema: %w", err)
		}
	}

	if _, err := seedAdmin(ctx, tx, m.opts.Admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func baselineDown(ctx context.Context, tx *sql.Tx) error {
	statements := make([]string, 0, len(domainTables)+2)
	for _, table := range domainTables {
		statements = append(statements, "DROP TABLE IF EXISTS "+table)
	}
	statements = append(statements, "DROP TABLE IF EXISTS admin_sessions", "DROP TABLE IF EXISTS admin_users")
	return execAll(ctx, tx, statements)
}

// adoptUnversioned upgrades a current-layout database written before version
// tracking existed: missing tables and columns are added without data loss.
func adoptUnversioned(ctx context.Context, tx *sql.Tx) error {
	if err := execAll(ctx, tx, schemaStatements); err != nil {
		return err
	}

	added, err := addMissingColumns(ctx, tx)
	if err != nil {
		return err
	}

	for _, table := range append([]string{"admin_users", "admin_sessions"}, domainTables...) {
		stmt := fmt.Sprintf("UPDATE %s SET created_at = COALESCE(datetime(created_at), CURRENT_TIMESTAMP)", table)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("normalise %s.created_at: %w", table, err)
		}
	}
	for _, table := range domainTables {
		if table == "attendance_records" {
			continue
		}
		stmt := fmt.Sprintf("UPDATE %s SET updated_at = COALESCE(datetime(updated_at), created_at)", table)
		if added[table+".updated_at"] {
			stmt = fmt.Sprintf("UPDATE %s SET updated_at = created_at", table)
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("normalise %s.updated_at: %w", table, err)
		}
	}

	for _, domain := range statusDomains {
		stmt := fmt.Sprintf("UPDATE %s SET status = '%s' WHERE status IS NULL OR LOWER(status) NOT IN (%s)", domain.table, domain.fallback, domain.allowed)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("normalise %s.status: %w", domain.table, err)
		}
		stmt = fmt.Sprintf("UPDATE %s SET status = LOWER(status)", domain.table)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("lower %s.status: %w", domain.table, err)
		}
	}

	// Sessions issued before adoption used a different timestamp encoding.
	if _, err := tx.ExecContext(ctx, "DELETE FROM admin_sessions"); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

// addMissingColumns adds every additive column absent from its table and
// reports which ones were added, keyed "table.column".
func addMissingColumns(ctx context.Context, tx *sql.Tx) (map[string]bool, error) {
	added := map[string]bool{}
	for _, col := range additiveColumns {
		columns, err := tableColumns(ctx, tx, col.table)
		if err != nil {
			return nil, err
		}
		if columns.has(col.column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", col.table, col.column, col.definition)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("add column %s.%s: %w", col.table, col.column, err)
		}
		added[col.table+"."+col.column] = true
	}
	return added, nil
}

func indexesUp(ctx context.Context, tx *sql.Tx) error {
	return execAll(ctx, tx, indexStatements)
}

func indexesDown(ctx context.Context, tx *sql.Tx) error {
	return execAll(ctx, tx, dropIndexStatements)
}
