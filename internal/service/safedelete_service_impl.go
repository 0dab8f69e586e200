package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
)

// errNoRowsAffected signals that a mutation touched zero rows: the entity
// changed or vanished between validation and execution, or ownership no
// longer matches.
var errNoRowsAffected = errors.New("no rows affected")

type safeDeleteService struct {
	repos    Repos
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewSafeDeleteService builds the deletion engine over the given repositories
// and unit of work. Reads go through repos; every mutation runs inside a
// transaction with tx-scoped repositories.
func NewSafeDeleteService(repos Repos, uow db.UnitOfWork, observers ...UseCaseObserver) SafeDeleteService {
	return &safeDeleteService{
		repos:    repos,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// statusWriter is the slice of repository behavior the executors need for a
// compare-and-swap status transition.
type statusWriter interface {
	UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error)
}

func statusWriterFor(entityType domain.EntityType, tx db.DBTX) statusWriter {
	switch entityType {
	case domain.EntityCourse:
		return repository.NewSQLiteCourseRepo(tx)
	case domain.EntityChapter:
		return repository.NewSQLiteChapterRepo(tx)
	case domain.EntityLesson:
		return repository.NewSQLiteLessonRepo(tx)
	case domain.EntityAccount:
		return repository.NewSQLiteAccountRepo(tx)
	case domain.EntityEnrollment:
		return repository.NewSQLiteEnrollmentRepo(tx)
	}
	return nil
}

func (s *safeDeleteService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}

func opFields(entityType domain.EntityType, entityID, actorID string) map[string]any {
	return map[string]any{
		"entity_type": string(entityType),
		"entity_id":   entityID,
		"actor_id":    actorID,
	}
}

func (s *safeDeleteService) Validate(ctx context.Context, entityType domain.EntityType, entityID, actorID string) *contract.SafeDeleteValidationResult {
	start := time.Now()
	result, _, err := s.dispatchValidate(ctx, entityType, entityID, actorID)
	s.observe(ctx, "safe_delete.validate", start, err, opFields(entityType, entityID, actorID))
	if err != nil {
		result = contract.NewValidationResult()
		result.Block("Internal error during validation")
	}
	return result
}

func (s *safeDeleteService) SoftDelete(ctx context.Context, entityType domain.EntityType, entityID, actorID, reason string) *contract.SafeDeleteResult {
	start := time.Now()
	fields := opFields(entityType, entityID, actorID)

	validation, observed, err := s.dispatchValidate(ctx, entityType, entityID, actorID)
	if err != nil {
		s.observe(ctx, "safe_delete.soft_delete", start, err, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during soft delete")
	}
	if !validation.CanDelete {
		s.observe(ctx, "safe_delete.soft_delete", start, nil, fields)
		return contract.Failure(contract.ErrValidationFailed,
			"Entity cannot be deleted: "+validation.BlockingSummary())
	}

	snapshot := s.snapshot(ctx, entityType, entityID)

	txErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rows, err := statusWriterFor(entityType, tx).UpdateStatusFrom(ctx, entityID, observed, domain.StatusArchived)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errNoRowsAffected
		}
		return nil
	})
	if errors.Is(txErr, errNoRowsAffected) {
		s.observe(ctx, "safe_delete.soft_delete", start, nil, fields)
		return contract.Failure(contract.ErrUpdateFailed, "Failed to update entity status")
	}
	if txErr != nil {
		s.observe(ctx, "safe_delete.soft_delete", start, txErr, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during soft delete")
	}

	if reason == "" {
		reason = "Soft delete operation"
	}
	s.recordAudit(ctx, entityType, entityID, actorID, domain.OpSoftDelete, reason, snapshot)

	s.observe(ctx, "safe_delete.soft_delete", start, nil, fields)
	return &contract.SafeDeleteResult{
		Success:          true,
		Message:          fmt.Sprintf("%s soft deleted successfully", entityType),
		AffectedEntities: []string{contract.EntityToken(entityType, entityID)},
	}
}

func (s *safeDeleteService) HardDelete(ctx context.Context, entityType domain.EntityType, entityID, actorID, reason string) *contract.SafeDeleteResult {
	start := time.Now()
	fields := opFields(entityType, entityID, actorID)

	policy, ok := PolicyFor(entityType)
	if !ok || !policy.AllowHardDelete {
		s.observe(ctx, "safe_delete.hard_delete", start, nil, fields)
		return contract.Failure(contract.ErrHardDeleteBlocked, "Hard delete not allowed for this entity type")
	}

	validation, _, err := s.dispatchValidate(ctx, entityType, entityID, actorID)
	if err != nil {
		s.observe(ctx, "safe_delete.hard_delete", start, err, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during hard delete")
	}
	if validation.RequiresHardDelete != nil && !*validation.RequiresHardDelete {
		s.observe(ctx, "safe_delete.hard_delete", start, nil, fields)
		return contract.Failure(contract.ErrHardDeleteBlocked, "Hard delete not allowed for this entity type")
	}
	if !validation.CanDelete {
		s.observe(ctx, "safe_delete.hard_delete", start, nil, fields)
		return contract.Failure(contract.ErrHardDeleteBlocked,
			"Entity cannot be deleted: "+validation.BlockingSummary())
	}

	snapshot := s.snapshot(ctx, entityType, entityID)

	affected := []string{contract.EntityToken(entityType, entityID)}
	txErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch entityType {
		case domain.EntityChapter:
			lessons := repository.NewSQLiteLessonRepo(tx)
			lessonIDs, err := lessons.ListIDsByChapter(ctx, entityID)
			if err != nil {
				return err
			}
			if _, err := lessons.DeleteByChapter(ctx, entityID); err != nil {
				return err
			}
			rows, err := repository.NewSQLiteChapterRepo(tx).DeleteOwned(ctx, entityID, actorID)
			if err != nil {
				return err
			}
			if rows == 0 {
				return errNoRowsAffected
			}
			for _, id := range lessonIDs {
				affected = append(affected, contract.EntityToken(domain.EntityLesson, id))
			}
			return nil
		case domain.EntityLesson:
			rows, err := repository.NewSQLiteLessonRepo(tx).DeleteOwned(ctx, entityID, actorID)
			if err != nil {
				return err
			}
			if rows == 0 {
				return errNoRowsAffected
			}
			return nil
		default:
			return errNoRowsAffected
		}
	})
	if errors.Is(txErr, errNoRowsAffected) {
		s.observe(ctx, "safe_delete.hard_delete", start, nil, fields)
		return contract.Failure(contract.ErrDeleteFailed, "Failed to delete entity")
	}
	if txErr != nil {
		s.observe(ctx, "safe_delete.hard_delete", start, txErr, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during hard delete")
	}

	if reason == "" {
		reason = "Hard delete operation"
	}
	s.recordAudit(ctx, entityType, entityID, actorID, domain.OpHardDelete, reason, snapshot)

	s.observe(ctx, "safe_delete.hard_delete", start, nil, fields)
	return &contract.SafeDeleteResult{
		Success:          true,
		Message:          fmt.Sprintf("%s permanently deleted", entityType),
		AffectedEntities: affected,
	}
}

func (s *safeDeleteService) Restore(ctx context.Context, entityType domain.EntityType, entityID, actorID string, targetStatus domain.EntityStatus) *contract.SafeDeleteResult {
	start := time.Now()
	fields := opFields(entityType, entityID, actorID)

	current, err := s.currentStatus(ctx, entityType, entityID)
	if errors.Is(err, repository.ErrNotFound) {
		s.observe(ctx, "safe_delete.restore", start, nil, fields)
		return contract.Failure(contract.ErrNotArchived, "Entity is not archived or does not exist")
	}
	if err != nil {
		s.observe(ctx, "safe_delete.restore", start, err, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during restore")
	}
	if !current.Archived() {
		s.observe(ctx, "safe_delete.restore", start, nil, fields)
		return contract.Failure(contract.ErrNotArchived, "Entity is not archived or does not exist")
	}
	if targetStatus == domain.StatusArchived {
		// Restoring back to the archived sentinel is a no-op.
		s.observe(ctx, "safe_delete.restore", start, nil, fields)
		return contract.Failure(contract.ErrRestoreFailed, "Failed to restore entity")
	}

	txErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rows, err := statusWriterFor(entityType, tx).UpdateStatusFrom(ctx, entityID, domain.StatusArchived, targetStatus)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errNoRowsAffected
		}
		return nil
	})
	if errors.Is(txErr, errNoRowsAffected) {
		s.observe(ctx, "safe_delete.restore", start, nil, fields)
		return contract.Failure(contract.ErrRestoreFailed, "Failed to restore entity")
	}
	if txErr != nil {
		s.observe(ctx, "safe_delete.restore", start, txErr, fields)
		return contract.Failure(contract.ErrInternal, "Internal error during restore")
	}

	s.recordAudit(ctx, entityType, entityID, actorID, domain.OpRestore,
		fmt.Sprintf("Restored to status %d", int(targetStatus)), "")

	s.observe(ctx, "safe_delete.restore", start, nil, fields)
	return &contract.SafeDeleteResult{
		Success:          true,
		Message:          fmt.Sprintf("%s restored successfully", entityType),
		AffectedEntities: []string{contract.EntityToken(entityType, entityID)},
	}
}

// currentStatus reads the entity's status without an ownership scope. Restore
// is gated on the archived sentinel only; ownership was checked when the
// entity was deleted.
func (s *safeDeleteService) currentStatus(ctx context.Context, entityType domain.EntityType, entityID string) (domain.EntityStatus, error) {
	switch entityType {
	case domain.EntityCourse:
		c, err := s.repos.Courses.GetByID(ctx, entityID)
		if err != nil {
			return 0, err
		}
		return c.Status, nil
	case domain.EntityChapter:
		c, err := s.repos.Chapters.GetByID(ctx, entityID)
		if err != nil {
			return 0, err
		}
		return c.Status, nil
	case domain.EntityLesson:
		l, err := s.repos.Lessons.GetByID(ctx, entityID)
		if err != nil {
			return 0, err
		}
		return l.Status, nil
	case domain.EntityAccount:
		a, err := s.repos.Accounts.GetByID(ctx, entityID)
		if err != nil {
			return 0, err
		}
		return a.Status, nil
	case domain.EntityEnrollment:
		e, err := s.repos.Enrollments.GetByID(ctx, entityID)
		if err != nil {
			return 0, err
		}
		return e.Status, nil
	}
	return 0, repository.ErrNotFound
}

// snapshot serializes the entity's pre-mutation state for the audit record.
// Best-effort: lookup or marshal failures yield an empty snapshot.
func (s *safeDeleteService) snapshot(ctx context.Context, entityType domain.EntityType, entityID string) string {
	var entity any
	var err error
	switch entityType {
	case domain.EntityCourse:
		entity, err = s.repos.Courses.GetByID(ctx, entityID)
	case domain.EntityChapter:
		entity, err = s.repos.Chapters.GetByID(ctx, entityID)
	case domain.EntityLesson:
		entity, err = s.repos.Lessons.GetByID(ctx, entityID)
	case domain.EntityAccount:
		entity, err = s.repos.Accounts.GetByID(ctx, entityID)
	case domain.EntityEnrollment:
		entity, err = s.repos.Enrollments.GetByID(ctx, entityID)
	default:
		return ""
	}
	if err != nil {
		return ""
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return ""
	}
	return string(raw)
}

// recordAudit appends the audit record after the mutation committed. The
// write is best-effort: a failure is observed but never rolls back the
// already-committed mutation or fails the operation.
func (s *safeDeleteService) recordAudit(ctx context.Context, entityType domain.EntityType, entityID, actorID string, op domain.Operation, reason, snapshot string) {
	rec := &domain.DeleteAuditTrail{
		ID:                  uuid.New().String(),
		EntityType:          entityType,
		EntityID:            entityID,
		ActorUserID:         actorID,
		Operation:           op,
		Reason:              reason,
		EntityStateSnapshot: snapshot,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.repos.Audit.Append(ctx, rec); err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "safe_delete.audit_append",
			Success:   false,
			Err:       err,
			Fields:    opFields(entityType, entityID, actorID),
			StartedAt: time.Now().UTC(),
		})
	}
}
