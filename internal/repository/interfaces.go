package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/coursebin/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row. Ownership-scoped
// lookups return it for unauthorized rows too, so callers cannot tell a
// missing entity from one they are not allowed to see.
var ErrNotFound = errors.New("not found")

// ArchivedRow is the uniform projection of one soft-deleted entity used by
// the recycle-bin query.
type ArchivedRow struct {
	EntityID        string
	EntityName      string
	DeletedDate     time.Time
	DeletedByUserID string
}

type CourseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	GetOwned(ctx context.Context, id, authorID string) (*domain.Course, error)
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
	CountNonArchivedByAuthor(ctx context.Context, authorID string) (int, error)
	ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error)
}

type ChapterRepo interface {
	Create(ctx context.Context, c *domain.Chapter) error
	GetByID(ctx context.Context, id string) (*domain.Chapter, error)
	GetOwned(ctx context.Context, id, authorID string) (*domain.Chapter, error)
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
	// CountDependents counts chapters declaring the given chapter as their
	// unlock prerequisite.
	CountDependents(ctx context.Context, chapterID string) (int, error)
	DeleteOwned(ctx context.Context, id, authorID string) (int64, error)
	ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error)
}

type LessonRepo interface {
	Create(ctx context.Context, l *domain.Lesson) error
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
	GetOwned(ctx context.Context, id, authorID string) (*domain.Lesson, error)
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
	CountDependents(ctx context.Context, lessonID string) (int, error)
	ListIDsByChapter(ctx context.Context, chapterID string) ([]string, error)
	DeleteByChapter(ctx context.Context, chapterID string) (int64, error)
	DeleteOwned(ctx context.Context, id, authorID string) (int64, error)
	ListArchivedByAuthor(ctx context.Context, authorID, search string) ([]ArchivedRow, error)
}

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
	// ListArchivedSelf returns the caller's own account when it is archived
	// and matches the search text (zero or one row).
	ListArchivedSelf(ctx context.Context, userID, search string) ([]ArchivedRow, error)
}

type EnrollmentRepo interface {
	Create(ctx context.Context, e *domain.Enrollment) error
	GetByID(ctx context.Context, id string) (*domain.Enrollment, error)
	GetOwned(ctx context.Context, id, userID string) (*domain.Enrollment, error)
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
	CountNonArchivedByCourse(ctx context.Context, courseID string) (int, error)
	CountNonArchivedByUser(ctx context.Context, userID string) (int, error)
	ListArchivedByUser(ctx context.Context, userID, search string) ([]ArchivedRow, error)
}

type UserProgressRepo interface {
	Create(ctx context.Context, p *domain.UserProgress) error
	CountByLesson(ctx context.Context, lessonID string) (int, error)
	CountByChapter(ctx context.Context, chapterID string) (int, error)
}

type QuizAttemptRepo interface {
	Create(ctx context.Context, a *domain.QuizAttempt) error
	CountByLesson(ctx context.Context, lessonID string) (int, error)
}

type CertificateRepo interface {
	Create(ctx context.Context, c *domain.Certificate) error
	CountByEnrollment(ctx context.Context, enrollmentID string) (int, error)
}

type PaymentTransactionRepo interface {
	Create(ctx context.Context, t *domain.PaymentTransaction) error
	HasHistory(ctx context.Context, userID string) (bool, error)
}

type FeedbackRepo interface {
	Create(ctx context.Context, f *domain.CourseFeedback) error
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type AuditTrailRepo interface {
	Append(ctx context.Context, rec *domain.DeleteAuditTrail) error
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.DeleteAuditTrail, error)
}
