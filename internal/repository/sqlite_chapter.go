package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteChapterRepo implements ChapterRepo over a DBTX.
type SQLiteChapterRepo struct {
	db db.DBTX
}

// NewSQLiteChapterRepo creates a new SQLiteChapterRepo.
func NewSQLiteChapterRepo(dbtx db.DBTX) *SQLiteChapterRepo {
	return &SQLiteChapterRepo{db: dbtx}
}

const chapterColumns = `id, course_id, name, description, order_index, unlock_after_chapter_id, status, created_at, updated_at`

func (r *SQLiteChapterRepo) Create(ctx context.Context, c *domain.Chapter) error {
	query := `INSERT INTO chapters (` + chapterColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CourseID,
		c.Name,
		c.Description,
		c.OrderIndex,
		nullableString(c.UnlockAfterChapterID),
		int(c.Status),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chapter: %w", err)
	}
	return nil
}

func (r *SQLiteChapterRepo) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = ?`
	return r.scanChapter(r.db.QueryRowContext(ctx, query, id))
}

// GetOwned resolves a chapter only when the acting user authored its course.
// A foreign chapter is indistinguishable from a missing one.
func (r *SQLiteChapterRepo) GetOwned(ctx context.Context, id, authorID string) (*domain.Chapter, error) {
	query := `SELECT ch.id, ch.course_id, ch.name, ch.description, ch.order_index,
			ch.unlock_after_chapter_id, ch.status, ch.created_at, ch.updated_at
		FROM chapters ch
		JOIN courses c ON ch.course_id = c.id
		WHERE ch.id = ? AND c.author_id = ?`
	return r.scanChapter(r.db.QueryRowContext(ctx, query, id, authorID))
}

func (r *SQLiteChapterRepo) UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error) {
	query := `UPDATE chapters SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, int(target), nowUTC(), id, int(observed))
	if err != nil {
		return 0, fmt.Errorf("updating chapter status: %w", err)
	}
	return rowsAffected(res, "updating chapter status")
}

func (r *SQLiteChapterRepo) CountDependents(ctx context.Context, chapterID string) (int, error) {
	query := `SELECT COUNT(*) FROM chapters WHERE unlock_after_chapter_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, chapterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting dependent chapters: %w", err)
	}
	return count, nil
}

func (r *SQLiteChapterRepo) DeleteOwned(ctx context.Context, id, authorID string) (int64, error) {
	query := `DELETE FROM chapters
		WHERE id = ? AND course_id IN (SELECT id FROM courses WHERE author_id = ?)`
	res, err := r.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return 0, fmt.Errorf("deleting chapter: %w", err)
	}
	return rowsAffected(res, "deleting chapter")
}

func (r *SQLiteChapterRepo) ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error) {
	query := `SELECT ch.id, ch.name, ch.updated_at, c.author_id
		FROM chapters ch
		JOIN courses c ON ch.course_id = c.id
		WHERE ch.status = ? AND c.author_id = ?
		  AND (? = '' OR instr(lower(ch.name), lower(?)) > 0 OR instr(lower(ch.description), lower(?)) > 0)`
	rows, err := r.db.QueryContext(ctx, query, int(domain.StatusArchived), authorID, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("listing archived chapters: %w", err)
	}
	defer rows.Close()
	return scanArchivedRows(rows, "chapter")
}

func (r *SQLiteChapterRepo) scanChapter(row *sql.Row) (*domain.Chapter, error) {
	var c domain.Chapter
	var status int
	var unlockAfter sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.CourseID, &c.Name, &c.Description, &c.OrderIndex,
		&unlockAfter, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("chapter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chapter: %w", err)
	}

	c.UnlockAfterChapterID = stringPtr(unlockAfter)
	c.Status = domain.EntityStatus(status)
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
