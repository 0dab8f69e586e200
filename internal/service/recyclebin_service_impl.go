package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
	"github.com/alexanderramin/coursebin/internal/repository"
)

type recycleBinService struct {
	repos    Repos
	observer UseCaseObserver
}

// NewRecycleBinService builds the unified soft-deleted entity listing.
func NewRecycleBinService(repos Repos, observers ...UseCaseObserver) RecycleBinService {
	return &recycleBinService{
		repos:    repos,
		observer: useCaseObserverOrNoop(observers),
	}
}

// List fans out one archived-row query per entity type matching the filter,
// merges the results, sorts by deletion date descending, and paginates the
// merged set in memory. Pagination deliberately stays above the per-type
// queries: pushing it down would change ordering across types.
func (s *recycleBinService) List(ctx context.Context, req contract.RecycleBinRequest) (*contract.RecycleBinPage, error) {
	start := time.Now()
	req.Normalize()

	var items []contract.RecycleBinItem
	for _, entityType := range domain.AllEntityTypes {
		if !req.Matches(entityType) {
			continue
		}
		rows, err := s.listArchived(ctx, entityType, req.ActorUserID, req.Search)
		if err != nil {
			err = fmt.Errorf("listing archived %s entities: %w", entityType, err)
			s.observe(ctx, start, err, req)
			return nil, err
		}
		reason := deleteReasonFor(entityType)
		for _, row := range rows {
			items = append(items, contract.RecycleBinItem{
				EntityID:        row.EntityID,
				EntityType:      entityType,
				EntityName:      row.EntityName,
				DeletedDate:     row.DeletedDate,
				DeletedByUserID: row.DeletedByUserID,
				DeleteReason:    reason,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedDate.After(items[j].DeletedDate)
	})

	total := len(items)
	from := (req.Page - 1) * req.PageSize
	if from > total {
		from = total
	}
	to := from + req.PageSize
	if to > total {
		to = total
	}

	s.observe(ctx, start, nil, req)
	return &contract.RecycleBinPage{
		Items:      items[from:to],
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (s *recycleBinService) listArchived(ctx context.Context, entityType domain.EntityType, actorID, search string) ([]repository.ArchivedRow, error) {
	switch entityType {
	case domain.EntityCourse:
		return s.repos.Courses.ListArchivedByAuthor(ctx, actorID, search)
	case domain.EntityChapter:
		return s.repos.Chapters.ListArchivedByAuthor(ctx, actorID, search)
	case domain.EntityLesson:
		return s.repos.Lessons.ListArchivedByAuthor(ctx, actorID, search)
	case domain.EntityAccount:
		return s.repos.Accounts.ListArchivedSelf(ctx, actorID, search)
	case domain.EntityEnrollment:
		return s.repos.Enrollments.ListArchivedByUser(ctx, actorID, search)
	}
	return nil, nil
}

func deleteReasonFor(entityType domain.EntityType) string {
	switch entityType {
	case domain.EntityCourse:
		return "Archived by author"
	case domain.EntityChapter:
		return "Archived with course"
	case domain.EntityLesson:
		return "Archived with chapter"
	case domain.EntityAccount:
		return "Account archived"
	case domain.EntityEnrollment:
		return "Archived by student"
	}
	return ""
}

func (s *recycleBinService) observe(ctx context.Context, start time.Time, err error, req contract.RecycleBinRequest) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "recycle_bin.list",
		Duration: time.Since(start),
		Success:  err == nil,
		Err:      err,
		Fields: map[string]any{
			"actor_id":    req.ActorUserID,
			"entity_type": req.EntityType,
			"page":        req.Page,
		},
		StartedAt: start,
	})
}
