package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
)

// Validators inspect live relationship state and produce a fresh
// SafeDeleteValidationResult per call. Each returns the entity's observed
// status alongside the result; the executors use it as the compare value for
// the status write, so a concurrent transition between validation and
// mutation fails the write instead of clobbering it.

func (s *safeDeleteService) dispatchValidate(ctx context.Context, entityType domain.EntityType, entityID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()
	if _, ok := PolicyFor(entityType); !ok {
		result.Block(fmt.Sprintf("No deletion policy defined for %s", entityType))
		return result, 0, nil
	}

	switch entityType {
	case domain.EntityCourse:
		return s.validateCourse(ctx, entityID, actorID)
	case domain.EntityChapter:
		return s.validateChapter(ctx, entityID, actorID)
	case domain.EntityLesson:
		return s.validateLesson(ctx, entityID, actorID)
	case domain.EntityAccount:
		return s.validateAccount(ctx, entityID, actorID)
	case domain.EntityEnrollment:
		return s.validateEnrollment(ctx, entityID, actorID)
	default:
		result.Block(fmt.Sprintf("No deletion policy defined for %s", entityType))
		return result, 0, nil
	}
}

func (s *safeDeleteService) validateCourse(ctx context.Context, courseID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()

	course, err := s.repos.Courses.GetOwned(ctx, courseID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		result.Block("Course not found or access denied")
		return result, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	activeEnrollments, err := s.repos.Enrollments.CountNonArchivedByCourse(ctx, courseID)
	if err != nil {
		return nil, 0, err
	}
	if activeEnrollments > 0 {
		result.Block(fmt.Sprintf("Course has %d active enrollment(s)", activeEnrollments))
		result.RecommendedAction = contract.ActionArchive
	}

	if course.Live() {
		result.Warn("Course is published/active. Consider archiving instead")
	}

	if !result.Blocked() {
		result.CanDelete = true
		result.RecommendedAction = contract.ActionSoftDelete
	}
	return result, course.Status, nil
}

func (s *safeDeleteService) validateChapter(ctx context.Context, chapterID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()

	chapter, err := s.repos.Chapters.GetOwned(ctx, chapterID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		result.Block("Chapter not found or access denied")
		return result, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	progressCount, err := s.repos.Progress.CountByChapter(ctx, chapterID)
	if err != nil {
		return nil, 0, err
	}
	if progressCount > 0 {
		result.Warn(fmt.Sprintf("Chapter has %d user progress record(s) in its lessons", progressCount))
		result.RecommendedAction = contract.ActionSoftDelete
	}

	dependents, err := s.repos.Chapters.CountDependents(ctx, chapterID)
	if err != nil {
		return nil, 0, err
	}
	if dependents > 0 {
		result.Block(fmt.Sprintf("Chapter is a prerequisite for %d other chapter(s)", dependents))
	}

	if !result.Blocked() {
		result.CanDelete = true
		if progressCount > 0 {
			result.RecommendedAction = contract.ActionSoftDelete
		} else {
			result.RecommendedAction = contract.ActionHardDelete
		}
	}
	return result, chapter.Status, nil
}

func (s *safeDeleteService) validateLesson(ctx context.Context, lessonID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()

	lesson, err := s.repos.Lessons.GetOwned(ctx, lessonID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		result.Block("Lesson not found or access denied")
		return result, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	progressCount, err := s.repos.Progress.CountByLesson(ctx, lessonID)
	if err != nil {
		return nil, 0, err
	}
	if progressCount > 0 {
		result.Warn(fmt.Sprintf("Lesson has %d user progress record(s)", progressCount))
		result.RecommendedAction = contract.ActionSoftDelete
	}

	quizAttempts, err := s.repos.QuizAttempts.CountByLesson(ctx, lessonID)
	if err != nil {
		return nil, 0, err
	}
	if quizAttempts > 0 {
		result.Warn(fmt.Sprintf("Lesson has %d quiz attempt(s)", quizAttempts))
	}

	dependents, err := s.repos.Lessons.CountDependents(ctx, lessonID)
	if err != nil {
		return nil, 0, err
	}
	if dependents > 0 {
		result.Block(fmt.Sprintf("Lesson is a prerequisite for %d other lesson(s)", dependents))
	}

	if !result.Blocked() {
		result.CanDelete = true
		if progressCount > 0 || quizAttempts > 0 {
			result.RecommendedAction = contract.ActionSoftDelete
		} else {
			result.RecommendedAction = contract.ActionHardDelete
		}
	}
	return result, lesson.Status, nil
}

func (s *safeDeleteService) validateAccount(ctx context.Context, accountID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()

	// Authorization gate ahead of dependency checks: only an admin or the
	// account owner may delete.
	actor, err := s.repos.Accounts.GetByID(ctx, actorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, 0, err
	}
	if (actor == nil || !actor.IsAdmin()) && actorID != accountID {
		result.Block("Insufficient permissions to delete account")
		return result, 0, nil
	}

	account, err := s.repos.Accounts.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		result.Block("Account not found")
		return result, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	activeCourses, err := s.repos.Courses.CountNonArchivedByAuthor(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if activeCourses > 0 {
		result.Block(fmt.Sprintf("Account has %d active course(s) as author", activeCourses))
	}

	activeEnrollments, err := s.repos.Enrollments.CountNonArchivedByUser(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if activeEnrollments > 0 {
		result.Block(fmt.Sprintf("Account has %d active enrollment(s)", activeEnrollments))
	}

	hasPayments, err := s.repos.Payments.HasHistory(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if hasPayments {
		result.Block("Account has payment transaction history")
	}

	// Accounts are compliance-retained: hard delete is pinned off regardless
	// of dependency state.
	result.PinSoftDeleteOnly()
	result.RecommendedAction = contract.ActionSoftDelete

	if !result.Blocked() {
		result.CanDelete = true
	}
	return result, account.Status, nil
}

func (s *safeDeleteService) validateEnrollment(ctx context.Context, enrollmentID, actorID string) (*contract.SafeDeleteValidationResult, domain.EntityStatus, error) {
	result := contract.NewValidationResult()

	enrollment, err := s.repos.Enrollments.GetOwned(ctx, enrollmentID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		result.Block("Enrollment not found or access denied")
		return result, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	certs, err := s.repos.Certificates.CountByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, 0, err
	}
	if certs > 0 {
		result.Block("Enrollment has issued certificates")
	}

	if enrollment.Status == domain.StatusCompleted {
		result.Warn("Enrollment is completed - consider soft delete for record keeping")
	}

	if !result.Blocked() {
		result.CanDelete = true
		result.RecommendedAction = contract.ActionSoftDelete
	}
	return result, enrollment.Status, nil
}
