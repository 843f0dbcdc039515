package migration

// Tables in dependency order; parents precede children.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		admin_id INTEGER NOT NULL REFERENCES admin_users(id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE,
		phone TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS teachers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		phone TEXT,
		specialty TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		level TEXT,
		price REAL NOT NULL DEFAULT 0,
		duration TEXT,
		teacher_id INTEGER REFERENCES teachers(id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'archived')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		teacher_id INTEGER REFERENCES teachers(id) ON DELETE SET NULL,
		start_date TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'dropped')),
		grade TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (student_id, course_id)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		attendance_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'present' CHECK (status IN ('present', 'absent', 'late', 'excused')),
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (student_id, course_id, attendance_date)
	)`,
}

// domainTables are the tables owned by the legacy layout, children first so
// they can be dropped without tripping foreign keys.
var domainTables = []string{"attendance_records", "enrollments", "courses", "teachers", "students"}

// additiveColumns lists columns that older unversioned databases may lack.
// Every definition must be valid for ALTER TABLE ADD COLUMN (constant default).
var additiveColumns = []struct {
	table      string
	column     string
	definition string
}{
	{"admin_users", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"admin_sessions", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"students", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"students", "updated_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"teachers", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"teachers", "updated_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"courses", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"courses", "updated_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"enrollments", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"enrollments", "updated_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"attendance_records", "created_at", "DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'"},
	{"students", "status", "TEXT NOT NULL DEFAULT 'active'"},
	{"teachers", "status", "TEXT NOT NULL DEFAULT 'active'"},
	{"courses", "status", "TEXT NOT NULL DEFAULT 'active'"},
	{"courses", "teacher_id", "INTEGER REFERENCES teachers(id) ON DELETE SET NULL"},
	{"enrollments", "teacher_id", "INTEGER REFERENCES teachers(id) ON DELETE SET NULL"},
	{"enrollments", "start_date", "TEXT"},
	{"enrollments", "status", "TEXT NOT NULL DEFAULT 'active'"},
	{"enrollments", "grade", "TEXT"},
}

// statusDomains holds the allowed values and the default of each status column.
var statusDomains = []struct {
	table    string
	allowed  string
	fallback string
}{
	{"students", "'active', 'inactive'", "active"},
	{"teachers", "'active', 'inactive'", "active"},
	{"courses", "'active', 'archived'", "active"},
	{"enrollments", "'active', 'completed', 'dropped'", "active"},
	{"attendance_records", "'present', 'absent', 'late', 'excused'", "present"},
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires_at ON admin_sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_students_status ON students(status)`,
	`CREATE INDEX IF NOT EXISTS idx_students_created_at ON students(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_teachers_status ON teachers(status)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_teacher_id ON courses(teacher_id)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_course_id ON enrollments(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_course_date ON attendance_records(course_id, attendance_date)`,
}

var dropIndexStatements = []string{
	`DROP INDEX IF EXISTS idx_admin_sessions_expires_at`,
	`DROP INDEX IF EXISTS idx_students_status`,
	`DROP INDEX IF EXISTS idx_students_created_at`,
	`DROP INDEX IF EXISTS idx_teachers_status`,
	`DROP INDEX IF EXISTS idx_courses_teacher_id`,
	`DROP INDEX IF EXISTS idx_enrollments_course_id`,
	`DROP INDEX IF EXISTS idx_attendance_course_date`,
}
