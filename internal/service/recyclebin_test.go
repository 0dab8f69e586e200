package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/testutil"
)

// seedBin creates an instructor with one archived course, chapter, and
// lesson, deleted at strictly decreasing times (course newest).
func seedBin(t *testing.T, e *engine) (*domain.Account, *domain.Course, *domain.Chapter, *domain.Lesson) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	author := testutil.NewTestAccount("instructor")
	require.NoError(t, e.repos.Accounts.Create(ctx, author))

	course := testutil.NewTestCourse(author.ID, "Go Basics",
		testutil.WithCourseStatus(domain.StatusArchived),
		testutil.WithCourseDescription("an introduction"))
	course.UpdatedAt = now
	require.NoError(t, e.repos.Courses.Create(ctx, course))

	chapter := testutil.NewTestChapter(course.ID, "Syntax",
		testutil.WithChapterStatus(domain.StatusArchived))
	chapter.UpdatedAt = now.Add(-time.Hour)
	require.NoError(t, e.repos.Chapters.Create(ctx, chapter))

	lesson := testutil.NewTestLesson(chapter.ID, "Declarations",
		testutil.WithLessonStatus(domain.StatusArchived))
	lesson.UpdatedAt = now.Add(-2 * time.Hour)
	require.NoError(t, e.repos.Lessons.Create(ctx, lesson))

	return author, course, chapter, lesson
}

func TestRecycleBin_ListAllSortedByDeletedDateDesc(t *testing.T) {
	e := newEngine(t)
	author, course, chapter, lesson := seedBin(t, e)

	page, err := e.bin.List(context.Background(), contract.RecycleBinRequest{ActorUserID: author.ID})
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Items, 3)
	assert.Equal(t, course.ID, page.Items[0].EntityID)
	assert.Equal(t, chapter.ID, page.Items[1].EntityID)
	assert.Equal(t, lesson.ID, page.Items[2].EntityID)

	assert.Equal(t, domain.EntityCourse, page.Items[0].EntityType)
	assert.Equal(t, "Archived by author", page.Items[0].DeleteReason)
	assert.Equal(t, "Archived with course", page.Items[1].DeleteReason)
	assert.Equal(t, "Archived with chapter", page.Items[2].DeleteReason)
	assert.Equal(t, author.ID, page.Items[0].DeletedByUserID)
}

func TestRecycleBin_ScopedToActor(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	seedBin(t, e)

	other := testutil.NewTestAccount("other")
	require.NoError(t, e.repos.Accounts.Create(ctx, other))

	page, err := e.bin.List(ctx, contract.RecycleBinRequest{ActorUserID: other.ID})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Items)
}

func TestRecycleBin_NonArchivedRowsExcluded(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, _ := seedCourse(t, e)

	page, err := e.bin.List(ctx, contract.RecycleBinRequest{ActorUserID: author.ID})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount, "active course must not appear")
}

func TestRecycleBin_SearchIsCaseInsensitiveOnNameAndDescription(t *testing.T) {
	e := newEngine(t)
	author, course, _, _ := seedBin(t, e)

	page, err := e.bin.List(context.Background(), contract.RecycleBinRequest{
		ActorUserID: author.ID,
		Search:      "INTRODUCTION",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, course.ID, page.Items[0].EntityID, "matched on description")

	page, err = e.bin.List(context.Background(), contract.RecycleBinRequest{
		ActorUserID: author.ID,
		Search:      "syntax",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.EntityChapter, page.Items[0].EntityType)
}

func TestRecycleBin_TypeFilter(t *testing.T) {
	e := newEngine(t)
	author, _, _, lesson := seedBin(t, e)

	page, err := e.bin.List(context.Background(), contract.RecycleBinRequest{
		ActorUserID: author.ID,
		EntityType:  "Lesson",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, lesson.ID, page.Items[0].EntityID)
}

func TestRecycleBin_PaginatesAfterMerge(t *testing.T) {
	e := newEngine(t)
	author, _, _, lesson := seedBin(t, e)

	page, err := e.bin.List(context.Background(), contract.RecycleBinRequest{
		ActorUserID: author.ID,
		Page:        2,
		PageSize:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalCount, "total counts all matches before paging")
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, lesson.ID, page.Items[0].EntityID)
}

func TestRecycleBin_PageBeyondRangeIsEmpty(t *testing.T) {
	e := newEngine(t)
	author, _, _, _ := seedBin(t, e)

	page, err := e.bin.List(context.Background(), contract.RecycleBinRequest{
		ActorUserID: author.ID,
		Page:        9,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Empty(t, page.Items)
}

func TestRecycleBin_IncludesArchivedEnrollmentAndAccount(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	_, course := seedCourse(t, e)

	student := testutil.NewTestAccount("student",
		testutil.WithRole(domain.RoleLearner),
		testutil.WithAccountStatus(domain.StatusArchived))
	require.NoError(t, e.repos.Accounts.Create(ctx, student))
	enr := testutil.NewTestEnrollment(course.ID, student.ID,
		testutil.WithEnrollmentStatus(domain.StatusArchived))
	require.NoError(t, e.repos.Enrollments.Create(ctx, enr))

	page, err := e.bin.List(ctx, contract.RecycleBinRequest{ActorUserID: student.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, page.TotalCount)
	types := map[domain.EntityType]string{}
	for _, item := range page.Items {
		types[item.EntityType] = item.DeleteReason
	}
	assert.Equal(t, "Account archived", types[domain.EntityAccount])
	assert.Equal(t, "Archived by student", types[domain.EntityEnrollment])
}
