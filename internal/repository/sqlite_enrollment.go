package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteEnrollmentRepo implements EnrollmentRepo over a DBTX.
type SQLiteEnrollmentRepo struct {
	db db.DBTX
}

// NewSQLiteEnrollmentRepo creates a new SQLiteEnrollmentRepo.
func NewSQLiteEnrollmentRepo(dbtx db.DBTX) *SQLiteEnrollmentRepo {
	return &SQLiteEnrollmentRepo{db: dbtx}
}

const enrollmentColumns = `id, course_id, user_id, status, enrolled_at, updated_at`

func (r *SQLiteEnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	query := `INSERT INTO enrollments (` + enrollmentColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.CourseID,
		e.UserID,
		int(e.Status),
		e.EnrolledAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting enrollment: %w", err)
	}
	return nil
}

func (r *SQLiteEnrollmentRepo) GetByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = ?`
	return r.scanEnrollment(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEnrollmentRepo) GetOwned(ctx context.Context, id, userID string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = ? AND user_id = ?`
	return r.scanEnrollment(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLiteEnrollmentRepo) UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error) {
	query := `UPDATE enrollments SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, int(target), nowUTC(), id, int(observed))
	if err != nil {
		return 0, fmt.Errorf("updating enrollment status: %w", err)
	}
	return rowsAffected(res, "updating enrollment status")
}

func (r *SQLiteEnrollmentRepo) CountNonArchivedByCourse(ctx context.Context, courseID string) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE course_id = ? AND status != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID, int(domain.StatusArchived)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting course enrollments: %w", err)
	}
	return count, nil
}

func (r *SQLiteEnrollmentRepo) CountNonArchivedByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE user_id = ? AND status != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, int(domain.StatusArchived)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting user enrollments: %w", err)
	}
	return count, nil
}

func (r *SQLiteEnrollmentRepo) ListArchivedByUser(ctx context.Context, userID, search string) ([]ArchivedRow, error) {
	query := `SELECT e.id, c.name, e.updated_at, e.user_id
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.status = ? AND e.user_id = ?
		  AND (? = '' OR instr(lower(c.name), lower(?)) > 0)`
	rows, err := r.db.QueryContext(ctx, query, int(domain.StatusArchived), userID, search, search)
	if err != nil {
		return nil, fmt.Errorf("listing archived enrollments: %w", err)
	}
	defer rows.Close()
	return scanArchivedRows(rows, "enrollment")
}

func (r *SQLiteEnrollmentRepo) scanEnrollment(row *sql.Row) (*domain.Enrollment, error) {
	var e domain.Enrollment
	var status int
	var enrolledAt, updatedAt string

	err := row.Scan(&e.ID, &e.CourseID, &e.UserID, &status, &enrolledAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("enrollment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning enrollment: %w", err)
	}

	e.Status = domain.EntityStatus(status)
	if e.EnrolledAt, err = parseTime("enrolled_at", enrolledAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
