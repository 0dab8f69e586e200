package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/testutil"
)

func TestCourseRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	accounts := NewSQLiteAccountRepo(db)
	repo := NewSQLiteCourseRepo(db)
	ctx := context.Background()

	author := testutil.NewTestAccount("alice")
	require.NoError(t, accounts.Create(ctx, author))

	course := testutil.NewTestCourse(author.ID, "Algorithms",
		testutil.WithCourseDescription("sorting and searching"))
	require.NoError(t, repo.Create(ctx, course))

	fetched, err := repo.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, fetched.ID)
	assert.Equal(t, "Algorithms", fetched.Name)
	assert.Equal(t, "sorting and searching", fetched.Description)
	assert.Equal(t, domain.StatusActive, fetched.Status)
	assert.Equal(t, author.ID, fetched.AuthorID)
}

func TestCourseRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCourseRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepo_GetOwned_ScopesToAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	accounts := NewSQLiteAccountRepo(db)
	repo := NewSQLiteCourseRepo(db)
	ctx := context.Background()

	alice := testutil.NewTestAccount("alice")
	bob := testutil.NewTestAccount("bob")
	require.NoError(t, accounts.Create(ctx, alice))
	require.NoError(t, accounts.Create(ctx, bob))

	course := testutil.NewTestCourse(alice.ID, "Databases")
	require.NoError(t, repo.Create(ctx, course))

	fetched, err := repo.GetOwned(ctx, course.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, fetched.ID)

	_, err = repo.GetOwned(ctx, course.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound, "foreign courses look nonexistent")
}

func TestCourseRepo_UpdateStatusFrom_CompareAndSwap(t *testing.T) {
	db := testutil.NewTestDB(t)
	accounts := NewSQLiteAccountRepo(db)
	repo := NewSQLiteCourseRepo(db)
	ctx := context.Background()

	author := testutil.NewTestAccount("alice")
	require.NoError(t, accounts.Create(ctx, author))
	course := testutil.NewTestCourse(author.ID, "Networks")
	require.NoError(t, repo.Create(ctx, course))

	// Matching observed status flips the row.
	rows, err := repo.UpdateStatusFrom(ctx, course.ID, domain.StatusActive, domain.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)

	// Stale observed status misses.
	rows, err = repo.UpdateStatusFrom(ctx, course.ID, domain.StatusActive, domain.StatusInactive)
	require.NoError(t, err)
	assert.Zero(t, rows)

	got, err = repo.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status, "stale write must not apply")
}

func TestCourseRepo_CountNonArchivedByAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	accounts := NewSQLiteAccountRepo(db)
	repo := NewSQLiteCourseRepo(db)
	ctx := context.Background()

	author := testutil.NewTestAccount("alice")
	require.NoError(t, accounts.Create(ctx, author))

	require.NoError(t, repo.Create(ctx, testutil.NewTestCourse(author.ID, "One")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCourse(author.ID, "Two",
		testutil.WithCourseStatus(domain.StatusArchived))))

	count, err := repo.CountNonArchivedByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCourseRepo_ListArchivedByAuthor_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	accounts := NewSQLiteAccountRepo(db)
	repo := NewSQLiteCourseRepo(db)
	ctx := context.Background()

	author := testutil.NewTestAccount("alice")
	require.NoError(t, accounts.Create(ctx, author))

	require.NoError(t, repo.Create(ctx, testutil.NewTestCourse(author.ID, "Go Basics",
		testutil.WithCourseStatus(domain.StatusArchived))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCourse(author.ID, "Rust Basics",
		testutil.WithCourseStatus(domain.StatusArchived),
		testutil.WithCourseDescription("memory safety"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCourse(author.ID, "Live Course")))

	rows, err := repo.ListArchivedByAuthor(ctx, author.ID, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "active course excluded")

	rows, err = repo.ListArchivedByAuthor(ctx, author.ID, "GO")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go Basics", rows[0].EntityName)

	// Description matches too.
	rows, err = repo.ListArchivedByAuthor(ctx, author.ID, "Memory")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rust Basics", rows[0].EntityName)
}
