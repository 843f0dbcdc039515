package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/lms-admin-api/pkg/database"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

// timeLayout matches SQLite's CURRENT_TIMESTAMP so stored values compare as text.
const timeLayout = "2006-01-02 15:04:05"

func sqliteTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for use with
// `LIKE ? ESCAPE '\'`, treating the user's wildcards literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// searchCondition matches pattern against any of columns.
func searchCondition(columns ...string) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '\'`, column)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func repeatArg(arg interface{}, n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = arg
	}
	return args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// classifyWriteError wraps constraint failures with the storage sentinels so
// services can map them without inspecting driver errors.
func classifyWriteError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, appErrors.ErrDuplicateKey, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, appErrors.ErrForeignKey, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// requireAffected turns a write that matched no row into sql.ErrNoRows.
func requireAffected(op string, res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
