package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const legacySuffix = "_legacy"

// migrateLegacy moves a pre-consolidation database onto the current schema.
// Legacy tables are renamed aside, the schema is recreated and rows are copied
// across with their columns translated, then the renamed tables are dropped.
func migrateLegacy(ctx context.Context, tx *sql.Tx) error {
	legacy := map[string]columnSet{}
	for _, table := range domainTables {
		exists, err := tableExists(ctx, tx, table)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		columns, err := tableColumns(ctx, tx, table)
		if err != nil {
			return err
		}
		stmts := []string{
			"DROP TABLE IF EXISTS " + table + legacySuffix,
			fmt.Sprintf("ALTER TABLE %s RENAME TO %s%s", table, table, legacySuffix),
		}
		if err := execAll(ctx, tx, stmts); err != nil {
			return err
		}
		legacy[table] = columns
	}

	if err := execAll(ctx, tx, schemaStatements); err != nil {
		return err
	}

	steps := []struct {
		table string
		build func(columnSet) (string, bool)
	}{
		{"students", legacyStudentsCopy},
		{"teachers", legacyTeachersCopy},
		{"courses", legacyCoursesCopy},
		{"enrollments", legacyEnrollmentsCopy},
		{"attendance_records", legacyAttendanceCopy},
	}
	for _, step := range steps {
		columns, ok := legacy[step.table]
		if !ok {
			continue
		}
		stmt, ok := step.build(columns)
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("copy legacy %s: %w", step.table, err)
		}
	}

	for _, table := range domainTables {
		if _, ok := legacy[table]; !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DROP TABLE "+table+legacySuffix); err != nil {
			return fmt.Errorf("drop legacy %s: %w", table, err)
		}
	}

	if _, err := addMissingColumns(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM admin_sessions"); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

// legacyColumns renders column references of one legacy table under an alias.
type legacyColumns struct {
	alias   string
	columns columnSet
}

func (l legacyColumns) ref(column string) string {
	return l.alias + "." + column
}

func (l legacyColumns) id() string {
	if l.columns.has("id") {
		return l.ref("id")
	}
	return l.ref("rowid")
}

// firstOf returns the expressions built from whichever candidate columns exist.
func (l legacyColumns) firstOf(render func(string) string, candidates ...string) []string {
	var exprs []string
	for _, column := range candidates {
		if l.columns.has(column) {
			exprs = append(exprs, render(l.ref(column)))
		}
	}
	return exprs
}

func (l legacyColumns) text(candidates ...string) []string {
	return l.firstOf(func(ref string) string {
		return fmt.Sprintf("NULLIF(TRIM(CAST(%s AS TEXT)), '')", ref)
	}, candidates...)
}

// personName derives a display name from full_name, first/last or name.
func (l legacyColumns) personName(fallbackPrefix string) string {
	exprs := l.text("full_name")
	if l.columns.has("first_name") || l.columns.has("last_name") {
		parts := l.firstOf(func(ref string) string {
			return fmt.Sprintf("COALESCE(TRIM(%s), '')", ref)
		}, "first_name", "last_name")
		exprs = append(exprs, fmt.Sprintf("NULLIF(TRIM(%s), '')", strings.Join(parts, " || ' ' || ")))
	}
	exprs = append(exprs, l.text("name")...)
	exprs = append(exprs, fmt.Sprintf("'%s ' || %s", fallbackPrefix, l.id()))
	return coalesce(exprs...)
}

func (l legacyColumns) createdAt() string {
	exprs := l.firstOf(func(ref string) string { return "datetime(" + ref + ")" }, "created_at")
	return coalesce(append(exprs, "CURRENT_TIMESTAMP")...)
}

func (l legacyColumns) updatedAt() string {
	exprs := l.firstOf(func(ref string) string { return "datetime(" + ref + ")" }, "updated_at")
	return coalesce(append(exprs, l.createdAt())...)
}

// activeStatus maps a legacy status or boolean active flag onto active/inactive.
func (l legacyColumns) activeStatus() string {
	switch {
	case l.columns.has("status"):
		return fmt.Sprintf("CASE WHEN LOWER(TRIM(%s)) = 'inactive' THEN 'inactive' ELSE 'active' END", l.ref("status"))
	case l.columns.has("active"):
		return fmt.Sprintf("CASE WHEN LOWER(CAST(%s AS TEXT)) IN ('0', 'false', 'no') THEN 'inactive' ELSE 'active' END", l.ref("active"))
	default:
		return "'active'"
	}
}

func legacyStudentsCopy(columns columnSet) (string, bool) {
	l := legacyColumns{alias: "l", columns: columns}
	email := "NULL"
	if columns.has("email") {
		// Only the oldest row keeps a duplicated address.
		email = fmt.Sprintf(`CASE
			WHEN %[1]s IS NULL OR TRIM(%[1]s) = '' THEN NULL
			WHEN %[2]s = (SELECT MIN(d.%[3]s) FROM students_legacy d WHERE LOWER(TRIM(d.email)) = LOWER(TRIM(%[1]s))) THEN LOWER(TRIM(%[1]s))
			ELSE NULL END`, l.ref("email"), l.id(), strings.TrimPrefix(l.id(), "l."))
	}
	return fmt.Sprintf(`INSERT INTO students (id, full_name, email, phone, status, created_at, updated_at)
		SELECT %s, %s, %s, %s, %s, %s, %s FROM students_legacy l`,
		l.id(), l.personName("Student"), email, coalesce(l.text("phone", "phone_number")...),
		l.activeStatus(), l.createdAt(), l.updatedAt()), true
}

func legacyTeachersCopy(columns columnSet) (string, bool) {
	l := legacyColumns{alias: "l", columns: columns}
	return fmt.Sprintf(`INSERT INTO teachers (id, full_name, phone, specialty, status, created_at, updated_at)
		SELECT %s, %s, %s, %s, %s, %s, %s FROM teachers_legacy l`,
		l.id(), l.personName("Teacher"), coalesce(l.text("phone", "phone_number")...),
		coalesce(l.text("specialty", "subject")...), l.activeStatus(), l.createdAt(), l.updatedAt()), true
}

func legacyCoursesCopy(columns columnSet) (string, bool) {
	l := legacyColumns{alias: "l", columns: columns}
	d := legacyColumns{alias: "d", columns: columns}
	name := coalesce(append(l.text("name", "title"), "'Course ' || "+l.id())...)
	dupName := coalesce(append(d.text("name", "title"), "'Course ' || "+d.id())...)
	uniqueName := fmt.Sprintf(`CASE
		WHEN %[2]s = (SELECT MIN(%[3]s) FROM courses_legacy d WHERE %[4]s = %[1]s) THEN %[1]s
		ELSE %[1]s || ' #' || %[2]s END`, name, l.id(), d.id(), dupName)

	price := coalesce(append(l.firstOf(func(ref string) string {
		return "CAST(" + ref + " AS REAL)"
	}, "price", "fee"), "0")...)

	teacherID := "NULL"
	if columns.has("teacher_id") {
		teacherID = fmt.Sprintf("CASE WHEN %[1]s IN (SELECT id FROM teachers) THEN %[1]s END", l.ref("teacher_id"))
	}

	status := "'active'"
	if columns.has("status") {
		status = fmt.Sprintf("CASE WHEN LOWER(TRIM(%s)) IN ('archived', 'inactive', 'closed') THEN 'archived' ELSE 'active' END", l.ref("status"))
	}

	return fmt.Sprintf(`INSERT OR IGNORE INTO courses (id, name, level, price, duration, teacher_id, status, created_at, updated_at)
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM courses_legacy l`,
		l.id(), uniqueName, coalesce(l.text("level")...), price, coalesce(l.text("duration")...),
		teacherID, status, l.createdAt(), l.updatedAt()), true
}

func legacyEnrollmentsCopy(columns columnSet) (string, bool) {
	if !columns.has("student_id") || !columns.has("course_id") {
		return "", false
	}
	l := legacyColumns{alias: "l", columns: columns}

	courseTeacher := fmt.Sprintf("(SELECT c.teacher_id FROM courses c WHERE c.id = %s)", l.ref("course_id"))
	teacherID := courseTeacher
	if columns.has("teacher_id") {
		teacherID = fmt.Sprintf("COALESCE(CASE WHEN %[1]s IN (SELECT id FROM teachers) THEN %[1]s END, %[2]s)", l.ref("teacher_id"), courseTeacher)
	}

	startDate := coalesce(l.firstOf(func(ref string) string {
		return "date(" + ref + ")"
	}, "start_date", "enrolled_at", "enrollment_date", "created_at")...)

	status := "'active'"
	if columns.has("status") {
		status = fmt.Sprintf(`CASE
			WHEN LOWER(TRIM(%[1]s)) IN ('finished', 'graduated', 'passed', 'completed') THEN 'completed'
			WHEN LOWER(TRIM(%[1]s)) IN ('cancelled', 'canceled', 'withdrawn', 'dropped') THEN 'dropped'
			ELSE 'active' END`, l.ref("status"))
	}

	return fmt.Sprintf(`INSERT OR IGNORE INTO enrollments (id, student_id, course_id, teacher_id, start_date, status, grade, created_at, updated_at)
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM enrollments_legacy l
		WHERE %[2]s IN (SELECT id FROM students) AND %[3]s IN (SELECT id FROM courses)`,
		l.id(), l.ref("student_id"), l.ref("course_id"), teacherID, startDate, status,
		coalesce(l.text("grade")...), l.createdAt(), l.updatedAt()), true
}

func legacyAttendanceCopy(columns columnSet) (string, bool) {
	if !columns.has("student_id") || !columns.has("course_id") {
		return "", false
	}
	l := legacyColumns{alias: "l", columns: columns}

	date := coalesce(l.firstOf(func(ref string) string {
		return "date(" + ref + ")"
	}, "attendance_date", "date")...)
	if date == "NULL" {
		return "", false
	}

	status := "'present'"
	if columns.has("status") {
		status = fmt.Sprintf(`CASE WHEN LOWER(TRIM(%[1]s)) IN ('present', 'absent', 'late', 'excused') THEN LOWER(TRIM(%[1]s)) ELSE 'present' END`, l.ref("status"))
	}

	return fmt.Sprintf(`INSERT OR IGNORE INTO attendance_records (id, student_id, course_id, attendance_date, status, notes, created_at)
		SELECT %s, %s, %s, %s, %s, %s, %s FROM attendance_records_legacy l
		WHERE %[4]s IS NOT NULL
		AND EXISTS (SELECT 1 FROM enrollments e WHERE e.student_id = %[2]s AND e.course_id = %[3]s)`,
		l.id(), l.ref("student_id"), l.ref("course_id"), date, status,
		coalesce(l.text("notes", "note")...), l.createdAt()), true
}

// coalesce renders COALESCE over exprs; SQLite rejects COALESCE with fewer
// than two arguments.
func coalesce(exprs ...string) string {
	switch len(exprs) {
	case 0:
		return "NULL"
	case 1:
		return exprs[0]
	default:
		return "COALESCE(" + strings.Join(exprs, ", ") + ")"
	}
}
