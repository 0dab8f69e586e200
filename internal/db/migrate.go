package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; the whole
// slice re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Status columns use the shared integer lifecycle convention:
// 1 published, 2 active, 3 inactive, 4 archived, 5 suspended, 6 completed.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL,
		email      TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'learner'
		           CHECK(role IN ('admin','instructor','learner')),
		status     INTEGER NOT NULL DEFAULT 2,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id          TEXT PRIMARY KEY,
		author_id   TEXT NOT NULL REFERENCES accounts(id),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      INTEGER NOT NULL DEFAULT 3,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_author ON courses(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_status ON courses(status)`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id                      TEXT PRIMARY KEY,
		course_id               TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		name                    TEXT NOT NULL,
		description             TEXT NOT NULL DEFAULT '',
		order_index             INTEGER NOT NULL DEFAULT 0,
		unlock_after_chapter_id TEXT REFERENCES chapters(id) ON DELETE SET NULL,
		status                  INTEGER NOT NULL DEFAULT 3,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chapters_course ON chapters(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_unlock ON chapters(unlock_after_chapter_id)`,

	`CREATE TABLE IF NOT EXISTS lessons (
		id                     TEXT PRIMARY KEY,
		chapter_id             TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		order_index            INTEGER NOT NULL DEFAULT 0,
		unlock_after_lesson_id TEXT REFERENCES lessons(id) ON DELETE SET NULL,
		status                 INTEGER NOT NULL DEFAULT 3,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lessons_chapter ON lessons(chapter_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_unlock ON lessons(unlock_after_lesson_id)`,

	`CREATE TABLE IF NOT EXISTS enrollments (
		id          TEXT PRIMARY KEY,
		course_id   TEXT NOT NULL REFERENCES courses(id),
		user_id     TEXT NOT NULL REFERENCES accounts(id),
		status      INTEGER NOT NULL DEFAULT 2,
		enrolled_at TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_user ON enrollments(user_id)`,

	`CREATE TABLE IF NOT EXISTS user_progress (
		id           TEXT PRIMARY KEY,
		lesson_id    TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL REFERENCES accounts(id),
		progress_pct REAL NOT NULL DEFAULT 0,
		completed_at TEXT,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_progress_lesson ON user_progress(lesson_id)`,

	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id           TEXT PRIMARY KEY,
		lesson_id    TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL REFERENCES accounts(id),
		score        REAL NOT NULL DEFAULT 0,
		attempted_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_lesson ON quiz_attempts(lesson_id)`,

	`CREATE TABLE IF NOT EXISTS certificates (
		id            TEXT PRIMARY KEY,
		enrollment_id TEXT NOT NULL REFERENCES enrollments(id) ON DELETE CASCADE,
		user_id       TEXT NOT NULL REFERENCES accounts(id),
		issued_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_certificates_enrollment ON certificates(enrollment_id)`,

	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES accounts(id),
		amount_cents INTEGER NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_payment_transactions_user ON payment_transactions(user_id)`,

	`CREATE TABLE IF NOT EXISTS course_feedback (
		id         TEXT PRIMARY KEY,
		course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES accounts(id),
		rating     INTEGER NOT NULL CHECK(rating BETWEEN 1 AND 5),
		comment    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_course_feedback_course ON course_feedback(course_id)`,

	`CREATE TABLE IF NOT EXISTS delete_audit_trail (
		id              TEXT PRIMARY KEY,
		entity_type     TEXT NOT NULL
		                CHECK(entity_type IN ('Course','Chapter','Lesson','Account','Enrollment')),
		entity_id       TEXT NOT NULL,
		actor_user_id   TEXT NOT NULL,
		operation       TEXT NOT NULL
		                CHECK(operation IN ('SoftDelete','HardDelete','Restore')),
		reason          TEXT NOT NULL DEFAULT '',
		entity_snapshot TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_delete_audit_entity ON delete_audit_trail(entity_type, entity_id)`,
}
