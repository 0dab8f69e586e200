package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
	"github.com/alexanderramin/coursebin/internal/testutil"
)

// engine bundles a fresh in-memory database with fully wired services.
type engine struct {
	db    *sql.DB
	repos Repos
	svc   SafeDeleteService
	bin   RecycleBinService
}

func newRepos(dbtx db.DBTX) Repos {
	return Repos{
		Courses:      repository.NewSQLiteCourseRepo(dbtx),
		Chapters:     repository.NewSQLiteChapterRepo(dbtx),
		Lessons:      repository.NewSQLiteLessonRepo(dbtx),
		Accounts:     repository.NewSQLiteAccountRepo(dbtx),
		Enrollments:  repository.NewSQLiteEnrollmentRepo(dbtx),
		Progress:     repository.NewSQLiteUserProgressRepo(dbtx),
		QuizAttempts: repository.NewSQLiteQuizAttemptRepo(dbtx),
		Certificates: repository.NewSQLiteCertificateRepo(dbtx),
		Payments:     repository.NewSQLitePaymentTransactionRepo(dbtx),
		Audit:        repository.NewSQLiteAuditTrailRepo(dbtx),
	}
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := newRepos(database)
	return &engine{
		db:    database,
		repos: repos,
		svc:   NewSafeDeleteService(repos, testutil.NewTestUoW(database)),
		bin:   NewRecycleBinService(repos),
	}
}

// seedCourse creates an instructor with one active course.
func seedCourse(t *testing.T, e *engine) (*domain.Account, *domain.Course) {
	t.Helper()
	ctx := context.Background()
	author := testutil.NewTestAccount("instructor")
	require.NoError(t, e.repos.Accounts.Create(ctx, author))
	course := testutil.NewTestCourse(author.ID, "Intro to Go")
	require.NoError(t, e.repos.Courses.Create(ctx, course))
	return author, course
}

// seedContent extends seedCourse with one chapter and one lesson.
func seedContent(t *testing.T, e *engine) (*domain.Account, *domain.Course, *domain.Chapter, *domain.Lesson) {
	t.Helper()
	ctx := context.Background()
	author, course := seedCourse(t, e)
	chapter := testutil.NewTestChapter(course.ID, "Basics")
	require.NoError(t, e.repos.Chapters.Create(ctx, chapter))
	lesson := testutil.NewTestLesson(chapter.ID, "Hello World")
	require.NoError(t, e.repos.Lessons.Create(ctx, lesson))
	return author, course, chapter, lesson
}

func auditCount(t *testing.T, e *engine, entityType domain.EntityType, entityID string) int {
	t.Helper()
	records, err := e.repos.Audit.ListByEntity(context.Background(), entityType, entityID)
	require.NoError(t, err)
	return len(records)
}
