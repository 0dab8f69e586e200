package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo over a DBTX, so the same
// implementation serves both plain connections and transactions.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(dbtx db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: dbtx}
}

const courseColumns = `id, author_id, name, description, status, created_at, updated_at`

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.AuthorID,
		c.Name,
		c.Description,
		int(c.Status),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	return r.scanCourse(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCourseRepo) GetOwned(ctx context.Context, id, authorID string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ? AND author_id = ?`
	return r.scanCourse(r.db.QueryRowContext(ctx, query, id, authorID))
}

func (r *SQLiteCourseRepo) UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error) {
	query := `UPDATE courses SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, int(target), nowUTC(), id, int(observed))
	if err != nil {
		return 0, fmt.Errorf("updating course status: %w", err)
	}
	return rowsAffected(res, "updating course status")
}

func (r *SQLiteCourseRepo) CountNonArchivedByAuthor(ctx context.Context, authorID string) (int, error) {
	query := `SELECT COUNT(*) FROM courses WHERE author_id = ? AND status != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, authorID, int(domain.StatusArchived)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting authored courses: %w", err)
	}
	return count, nil
}

func (r *SQLiteCourseRepo) ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error) {
	query := `SELECT id, name, updated_at, author_id FROM courses
		WHERE status = ? AND author_id = ?
		  AND (? = '' OR instr(lower(name), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)`
	rows, err := r.db.QueryContext(ctx, query, int(domain.StatusArchived), authorID, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("listing archived courses: %w", err)
	}
	defer rows.Close()
	return scanArchivedRows(rows, "course")
}

func (r *SQLiteCourseRepo) scanCourse(row *sql.Row) (*domain.Course, error) {
	var c domain.Course
	var status int
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.AuthorID, &c.Name, &c.Description, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	c.Status = domain.EntityStatus(status)
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// scanArchivedRows scans the uniform recycle-bin projection shared by all
// ListArchived queries.
func scanArchivedRows(rows *sql.Rows, kind string) ([]ArchivedRow, error) {
	var out []ArchivedRow
	for rows.Next() {
		var row ArchivedRow
		var deletedAt string
		if err := rows.Scan(&row.EntityID, &row.EntityName, &deletedAt, &row.DeletedByUserID); err != nil {
			return nil, fmt.Errorf("scanning archived %s: %w", kind, err)
		}
		t, err := parseTime("updated_at", deletedAt)
		if err != nil {
			return nil, err
		}
		row.DeletedDate = t
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived %ss: %w", kind, err)
	}
	return out, nil
}
