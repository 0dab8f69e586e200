package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
	"github.com/alexanderramin/coursebin/internal/service"
	"github.com/alexanderramin/coursebin/internal/testutil"
)

type webFixture struct {
	server *Server
	repos  service.Repos
	author *domain.Account
	course *domain.Course
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := service.Repos{
		Courses:      repository.NewSQLiteCourseRepo(database),
		Chapters:     repository.NewSQLiteChapterRepo(database),
		Lessons:      repository.NewSQLiteLessonRepo(database),
		Accounts:     repository.NewSQLiteAccountRepo(database),
		Enrollments:  repository.NewSQLiteEnrollmentRepo(database),
		Progress:     repository.NewSQLiteUserProgressRepo(database),
		QuizAttempts: repository.NewSQLiteQuizAttemptRepo(database),
		Certificates: repository.NewSQLiteCertificateRepo(database),
		Payments:     repository.NewSQLitePaymentTransactionRepo(database),
		Audit:        repository.NewSQLiteAuditTrailRepo(database),
	}
	uow := testutil.NewTestUoW(database)

	ctx := context.Background()
	author := testutil.NewTestAccount("instructor")
	require.NoError(t, repos.Accounts.Create(ctx, author))
	course := testutil.NewTestCourse(author.ID, "Go Basics")
	require.NoError(t, repos.Courses.Create(ctx, course))

	return &webFixture{
		server: NewServer(service.NewSafeDeleteService(repos, uow), service.NewRecycleBinService(repos)),
		repos:  repos,
		author: author,
		course: course,
	}
}

func (f *webFixture) do(t *testing.T, method, path, actorID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleValidate_OK(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/validate", f.author.ID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var result contract.SafeDeleteValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.CanDelete)
	assert.Equal(t, contract.ActionSoftDelete, result.RecommendedAction)
}

func TestHandleValidate_MissingActorHeader(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/validate", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate_UnknownEntityType(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Widget/w1/validate", f.author.ID, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDelete_SoftDeleteArchives(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID,
		`{"reason":"cleaning up"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result contract.SafeDeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, []string{"Course:" + f.course.ID}, result.AffectedEntities)

	got, err := f.repos.Courses.GetByID(context.Background(), f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)
}

func TestHandleDelete_HardDeleteBlockedForCourse(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID,
		`{"hard":true}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var result contract.SafeDeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, contract.ErrHardDeleteBlocked, result.ErrorCode)
}

func TestHandleDelete_ValidationFailureConflict(t *testing.T) {
	f := newWebFixture(t)
	ctx := context.Background()

	student := testutil.NewTestAccount("student", testutil.WithRole(domain.RoleLearner))
	require.NoError(t, f.repos.Accounts.Create(ctx, student))
	require.NoError(t, f.repos.Enrollments.Create(ctx, testutil.NewTestEnrollment(f.course.ID, student.ID)))

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID, "")

	require.Equal(t, http.StatusConflict, rec.Code)
	var result contract.SafeDeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, contract.ErrValidationFailed, result.ErrorCode)
	assert.Contains(t, result.Message, "active enrollment")
}

func TestHandleRestore_RoundTrip(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/restore", f.author.ID,
		`{"targetStatus":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := f.repos.Courses.GetByID(context.Background(), f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, got.Status)
}

func TestHandleRestore_OmittedTargetDefaultsToActive(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/restore", f.author.ID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := f.repos.Courses.GetByID(context.Background(), f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestHandleRestore_NotArchivedConflict(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/restore", f.author.ID, "")

	require.Equal(t, http.StatusConflict, rec.Code)
	var result contract.SafeDeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, contract.ErrNotArchived, result.ErrorCode)
}

func TestHandleRecycleBin_ListsAndPages(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/recycle-bin?page=1&pageSize=5", f.author.ID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var page contract.RecycleBinPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, f.course.ID, page.Items[0].EntityID)
	assert.Equal(t, 5, page.PageSize)
}

func TestHandleRecycleBin_TypeFilter(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/Course/"+f.course.ID+"/delete", f.author.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/recycle-bin?type=Lesson", f.author.ID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var page contract.RecycleBinPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Zero(t, page.TotalCount)
}
