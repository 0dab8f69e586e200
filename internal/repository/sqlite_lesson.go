package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteLessonRepo implements LessonRepo over a DBTX.
type SQLiteLessonRepo struct {
	db db.DBTX
}

// NewSQLiteLessonRepo creates a new SQLiteLessonRepo.
func NewSQLiteLessonRepo(dbtx db.DBTX) *SQLiteLessonRepo {
	return &SQLiteLessonRepo{db: dbtx}
}

const lessonColumns = `id, chapter_id, name, description, order_index, unlock_after_lesson_id, status, created_at, updated_at`

func (r *SQLiteLessonRepo) Create(ctx context.Context, l *domain.Lesson) error {
	query := `INSERT INTO lessons (` + lessonColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.ChapterID,
		l.Name,
		l.Description,
		l.OrderIndex,
		nullableString(l.UnlockAfterLessonID),
		int(l.Status),
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}
	return nil
}

func (r *SQLiteLessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`
	return r.scanLesson(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteLessonRepo) GetOwned(ctx context.Context, id, authorID string) (*domain.Lesson, error) {
	query := `SELECT l.id, l.chapter_id, l.name, l.description, l.order_index,
			l.unlock_after_lesson_id, l.status, l.created_at, l.updated_at
		FROM lessons l
		JOIN chapters ch ON l.chapter_id = ch.id
		JOIN courses c ON ch.course_id = c.id
		WHERE l.id = ? AND c.author_id = ?`
	return r.scanLesson(r.db.QueryRowContext(ctx, query, id, authorID))
}

func (r *SQLiteLessonRepo) UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error) {
	query := `UPDATE lessons SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, int(target), nowUTC(), id, int(observed))
	if err != nil {
		return 0, fmt.Errorf("updating lesson status: %w", err)
	}
	return rowsAffected(res, "updating lesson status")
}

func (r *SQLiteLessonRepo) CountDependents(ctx context.Context, lessonID string) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE unlock_after_lesson_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting dependent lessons: %w", err)
	}
	return count, nil
}

func (r *SQLiteLessonRepo) ListIDsByChapter(ctx context.Context, chapterID string) ([]string, error) {
	query := `SELECT id FROM lessons WHERE chapter_id = ? ORDER BY order_index, id`
	rows, err := r.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("listing lesson ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning lesson id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson ids: %w", err)
	}
	return ids, nil
}

func (r *SQLiteLessonRepo) DeleteByChapter(ctx context.Context, chapterID string) (int64, error) {
	query := `DELETE FROM lessons WHERE chapter_id = ?`
	res, err := r.db.ExecContext(ctx, query, chapterID)
	if err != nil {
		return 0, fmt.Errorf("deleting chapter lessons: %w", err)
	}
	return rowsAffected(res, "deleting chapter lessons")
}

func (r *SQLiteLessonRepo) DeleteOwned(ctx context.Context, id, authorID string) (int64, error) {
	query := `DELETE FROM lessons
		WHERE id = ? AND chapter_id IN (
			SELECT ch.id FROM chapters ch
			JOIN courses c ON ch.course_id = c.id
			WHERE c.author_id = ?
		)`
	res, err := r.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return 0, fmt.Errorf("deleting lesson: %w", err)
	}
	return rowsAffected(res, "deleting lesson")
}

func (r *SQLiteLessonRepo) ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error) {
	query := `SELECT l.id, l.name, l.updated_at, c.author_id
		FROM lessons l
		JOIN chapters ch ON l.chapter_id = ch.id
		JOIN courses c ON ch.course_id = c.id
		WHERE l.status = ? AND c.author_id = ?
		  AND (? = '' OR instr(lower(l.name), lower(?)) > 0 OR instr(lower(l.description), lower(?)) > 0)`
	rows, err := r.db.QueryContext(ctx, query, int(domain.StatusArchived), authorID, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("listing archived lessons: %w", err)
	}
	defer rows.Close()
	return scanArchivedRows(rows, "lesson")
}

func (r *SQLiteLessonRepo) scanLesson(row *sql.Row) (*domain.Lesson, error) {
	var l domain.Lesson
	var status int
	var unlockAfter sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&l.ID, &l.ChapterID, &l.Name, &l.Description, &l.OrderIndex,
		&unlockAfter, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lesson: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lesson: %w", err)
	}

	l.UnlockAfterLessonID = stringPtr(unlockAfter)
	l.Status = domain.EntityStatus(status)
	if l.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
