package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/testutil"
)

func TestSoftDeleteCourse_ArchivesAndAudits(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, course := seedCourse(t, e)

	result := e.svc.SoftDelete(ctx, domain.EntityCourse, course.ID, author.ID, "")

	require.True(t, result.Success, "message: %s", result.Message)
	assert.Equal(t, "Course soft deleted successfully", result.Message)
	assert.Equal(t, []string{"Course:" + course.ID}, result.AffectedEntities)

	got, err := e.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)

	records, err := e.repos.Audit.ListByEntity(ctx, domain.EntityCourse, course.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OpSoftDelete, records[0].Operation)
	assert.Equal(t, author.ID, records[0].ActorUserID)
	assert.Equal(t, "Soft delete operation", records[0].Reason)
	assert.Contains(t, records[0].EntityStateSnapshot, course.ID)
}

func TestSoftDelete_CustomReasonRecorded(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, _, chapter, _ := seedContent(t, e)

	result := e.svc.SoftDelete(ctx, domain.EntityChapter, chapter.ID, author.ID, "restructuring course")

	require.True(t, result.Success)
	records, err := e.repos.Audit.ListByEntity(ctx, domain.EntityChapter, chapter.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "restructuring course", records[0].Reason)
}

func TestSoftDelete_ValidationFailureLeavesNoTrace(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, course := seedCourse(t, e)

	student := testutil.NewTestAccount("student", testutil.WithRole(domain.RoleLearner))
	require.NoError(t, e.repos.Accounts.Create(ctx, student))
	require.NoError(t, e.repos.Enrollments.Create(ctx, testutil.NewTestEnrollment(course.ID, student.ID)))

	result := e.svc.SoftDelete(ctx, domain.EntityCourse, course.ID, author.ID, "")

	require.False(t, result.Success)
	assert.Equal(t, contract.ErrValidationFailed, result.ErrorCode)
	assert.Equal(t, "Entity cannot be deleted: Course has 1 active enrollment(s)", result.Message)

	got, err := e.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status, "no mutation on failed validation")
	assert.Zero(t, auditCount(t, e, domain.EntityCourse, course.ID), "no audit row on failed validation")
}

func TestSoftDeleteAccount_SelfService(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	acct := testutil.NewTestAccount("leaver", testutil.WithRole(domain.RoleLearner))
	require.NoError(t, e.repos.Accounts.Create(ctx, acct))

	result := e.svc.SoftDelete(ctx, domain.EntityAccount, acct.ID, acct.ID, "")

	require.True(t, result.Success)
	got, err := e.repos.Accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)
	assert.Equal(t, 1, auditCount(t, e, domain.EntityAccount, acct.ID))
}

func TestSoftDeleteEnrollment_ByStudent(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	_, course := seedCourse(t, e)
	student := testutil.NewTestAccount("student", testutil.WithRole(domain.RoleLearner))
	require.NoError(t, e.repos.Accounts.Create(ctx, student))
	enr := testutil.NewTestEnrollment(course.ID, student.ID)
	require.NoError(t, e.repos.Enrollments.Create(ctx, enr))

	result := e.svc.SoftDelete(ctx, domain.EntityEnrollment, enr.ID, student.ID, "")

	require.True(t, result.Success)
	got, err := e.repos.Enrollments.GetByID(ctx, enr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)
}

func TestSoftDelete_ConcurrentStatusChangeFailsUpdate(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, course := seedCourse(t, e)

	// A competing writer flips the status between validation and the
	// mutation transaction; the compare-and-swap write must miss.
	raceUoW := &testutil.HookUoW{
		Inner: testutil.NewTestUoW(e.db),
		Before: func(ctx context.Context) error {
			_, err := e.repos.Courses.UpdateStatusFrom(ctx, course.ID, domain.StatusActive, domain.StatusInactive)
			return err
		},
	}
	svc := NewSafeDeleteService(e.repos, raceUoW)

	result := svc.SoftDelete(ctx, domain.EntityCourse, course.ID, author.ID, "")

	require.False(t, result.Success)
	assert.Equal(t, contract.ErrUpdateFailed, result.ErrorCode)
	assert.Equal(t, "Failed to update entity status", result.Message)

	got, err := e.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status, "competing write must survive")
	assert.Zero(t, auditCount(t, e, domain.EntityCourse, course.ID))
}

func TestSoftDelete_InjectedWriteFailureReportsInternal(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	author, course := seedCourse(t, e)

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     e.db,
		FailOn: 1,
		Err:    assert.AnError,
	}
	svc := NewSafeDeleteService(e.repos, failUoW)

	result := svc.SoftDelete(ctx, domain.EntityCourse, course.ID, author.ID, "")

	require.False(t, result.Success)
	assert.Equal(t, contract.ErrInternal, result.ErrorCode)

	got, err := e.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status, "rolled back")
	assert.Zero(t, auditCount(t, e, domain.EntityCourse, course.ID))
}
