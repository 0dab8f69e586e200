package service

import (
	"context"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
)

// SafeDeleteService decides whether an entity may be removed, executes the
// removal as a soft (reversible) or hard (irreversible) transition, and
// restores soft-deleted entities. All four operations return structured
// results rather than errors; internal failures surface as INTERNAL_ERROR
// results and are reported through the use-case observer.
type SafeDeleteService interface {
	Validate(ctx context.Context, entityType domain.EntityType, entityID, actorID string) *contract.SafeDeleteValidationResult
	SoftDelete(ctx context.Context, entityType domain.EntityType, entityID, actorID, reason string) *contract.SafeDeleteResult
	HardDelete(ctx context.Context, entityType domain.EntityType, entityID, actorID, reason string) *contract.SafeDeleteResult
	Restore(ctx context.Context, entityType domain.EntityType, entityID, actorID string, targetStatus domain.EntityStatus) *contract.SafeDeleteResult
}

// RecycleBinService serves the unified, searchable listing of soft-deleted
// entities owned by the acting user.
type RecycleBinService interface {
	List(ctx context.Context, req contract.RecycleBinRequest) (*contract.RecycleBinPage, error)
}

// Repos bundles the persistence collaborators the deletion engine reads
// through. Mutations go through tx-scoped repositories created inside a
// unit of work.
type Repos struct {
	Courses      repository.CourseRepo
	Chapters     repository.ChapterRepo
	Lessons      repository.LessonRepo
	Accounts     repository.AccountRepo
	Enrollments  repository.EnrollmentRepo
	Progress     repository.UserProgressRepo
	QuizAttempts repository.QuizAttemptRepo
	Certificates repository.CertificateRepo
	Payments     repository.PaymentTransactionRepo
	Audit        repository.AuditTrailRepo
}
