package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// Learning-record repositories. These are write-light tables the deletion
// engine only counts against during validation.

// SQLiteUserProgressRepo implements UserProgressRepo over a DBTX.
type SQLiteUserProgressRepo struct {
	db db.DBTX
}

func NewSQLiteUserProgressRepo(dbtx db.DBTX) *SQLiteUserProgressRepo {
	return &SQLiteUserProgressRepo{db: dbtx}
}

func (r *SQLiteUserProgressRepo) Create(ctx context.Context, p *domain.UserProgress) error {
	query := `INSERT INTO user_progress (id, lesson_id, user_id, progress_pct, completed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.LessonID, p.UserID, p.ProgressPct,
		nullableTimeToString(p.CompletedAt),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user progress: %w", err)
	}
	return nil
}

func (r *SQLiteUserProgressRepo) CountByLesson(ctx context.Context, lessonID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_progress WHERE lesson_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting lesson progress: %w", err)
	}
	return count, nil
}

func (r *SQLiteUserProgressRepo) CountByChapter(ctx context.Context, chapterID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_progress up
		JOIN lessons l ON up.lesson_id = l.id
		WHERE l.chapter_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, chapterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chapter progress: %w", err)
	}
	return count, nil
}

// SQLiteQuizAttemptRepo implements QuizAttemptRepo over a DBTX.
type SQLiteQuizAttemptRepo struct {
	db db.DBTX
}

func NewSQLiteQuizAttemptRepo(dbtx db.DBTX) *SQLiteQuizAttemptRepo {
	return &SQLiteQuizAttemptRepo{db: dbtx}
}

func (r *SQLiteQuizAttemptRepo) Create(ctx context.Context, a *domain.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (id, lesson_id, user_id, score, attempted_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.LessonID, a.UserID, a.Score, a.AttemptedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting quiz attempt: %w", err)
	}
	return nil
}

func (r *SQLiteQuizAttemptRepo) CountByLesson(ctx context.Context, lessonID string) (int, error) {
	query := `SELECT COUNT(*) FROM quiz_attempts WHERE lesson_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting quiz attempts: %w", err)
	}
	return count, nil
}

// SQLiteCertificateRepo implements CertificateRepo over a DBTX.
type SQLiteCertificateRepo struct {
	db db.DBTX
}

func NewSQLiteCertificateRepo(dbtx db.DBTX) *SQLiteCertificateRepo {
	return &SQLiteCertificateRepo{db: dbtx}
}

func (r *SQLiteCertificateRepo) Create(ctx context.Context, c *domain.Certificate) error {
	query := `INSERT INTO certificates (id, enrollment_id, user_id, issued_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.EnrollmentID, c.UserID, c.IssuedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting certificate: %w", err)
	}
	return nil
}

func (r *SQLiteCertificateRepo) CountByEnrollment(ctx context.Context, enrollmentID string) (int, error) {
	query := `SELECT COUNT(*) FROM certificates WHERE enrollment_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, enrollmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting certificates: %w", err)
	}
	return count, nil
}

// SQLitePaymentTransactionRepo implements PaymentTransactionRepo over a DBTX.
type SQLitePaymentTransactionRepo struct {
	db db.DBTX
}

func NewSQLitePaymentTransactionRepo(dbtx db.DBTX) *SQLitePaymentTransactionRepo {
	return &SQLitePaymentTransactionRepo{db: dbtx}
}

func (r *SQLitePaymentTransactionRepo) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (id, user_id, amount_cents, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.AmountCents, t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting payment transaction: %w", err)
	}
	return nil
}

func (r *SQLitePaymentTransactionRepo) HasHistory(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payment_transactions WHERE user_id = ?)`
	var exists int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking payment history: %w", err)
	}
	return exists != 0, nil
}

// SQLiteFeedbackRepo implements FeedbackRepo over a DBTX.
type SQLiteFeedbackRepo struct {
	db db.DBTX
}

func NewSQLiteFeedbackRepo(dbtx db.DBTX) *SQLiteFeedbackRepo {
	return &SQLiteFeedbackRepo{db: dbtx}
}

func (r *SQLiteFeedbackRepo) Create(ctx context.Context, f *domain.CourseFeedback) error {
	query := `INSERT INTO course_feedback (id, course_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.CourseID, f.UserID, f.Rating, f.Comment, f.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting course feedback: %w", err)
	}
	return nil
}

func (r *SQLiteFeedbackRepo) CountByCourse(ctx context.Context, courseID string) (int, error) {
	query := `SELECT COUNT(*) FROM course_feedback WHERE course_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting course feedback: %w", err)
	}
	return count, nil
}
