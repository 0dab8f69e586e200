// Package contract defines the request and result shapes exchanged between
// the deletion engine and its callers (CLI, HTTP, other services). Mutation
// outcomes are structured results, never errors: callers branch on ErrorCode,
// not on error types.
package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursebin/internal/domain"
)

// ErrorCode is a stable machine-readable failure code. Present only on
// failed results.
type ErrorCode string

const (
	ErrValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrUpdateFailed      ErrorCode = "UPDATE_FAILED"
	ErrHardDeleteBlocked ErrorCode = "HARD_DELETE_BLOCKED"
	ErrDeleteFailed      ErrorCode = "DELETE_FAILED"
	ErrNotArchived       ErrorCode = "NOT_ARCHIVED"
	ErrRestoreFailed     ErrorCode = "RESTORE_FAILED"
	ErrInternal          ErrorCode = "INTERNAL_ERROR"
)

// RecommendedAction steers the caller toward the safest removal mode.
type RecommendedAction string

const (
	ActionSoftDelete RecommendedAction = "SoftDelete"
	ActionHardDelete RecommendedAction = "HardDelete"
	ActionArchive    RecommendedAction = "Archive"
	ActionNone       RecommendedAction = "None"
)

// SafeDeleteValidationResult is produced fresh per validation call and never
// persisted. CanDelete is true iff BlockingDependencies is empty.
type SafeDeleteValidationResult struct {
	CanDelete            bool              `json:"canDelete"`
	BlockingDependencies []string          `json:"blockingDependencies"`
	Warnings             []string          `json:"warnings"`
	RecommendedAction    RecommendedAction `json:"recommendedAction"`
	// RequiresHardDelete is tri-state: nil means validation expressed no
	// opinion; an explicit false forbids hard delete regardless of
	// dependency state.
	RequiresHardDelete *bool `json:"requiresHardDelete,omitempty"`
}

// NewValidationResult returns an empty result with ActionNone.
func NewValidationResult() *SafeDeleteValidationResult {
	return &SafeDeleteValidationResult{RecommendedAction: ActionNone}
}

// Block records a blocking dependency and forces CanDelete false.
func (r *SafeDeleteValidationResult) Block(reason string) {
	r.CanDelete = false
	r.BlockingDependencies = append(r.BlockingDependencies, reason)
}

// Warn records a non-blocking concern.
func (r *SafeDeleteValidationResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Blocked reports whether any blocking dependency was recorded.
func (r *SafeDeleteValidationResult) Blocked() bool {
	return len(r.BlockingDependencies) > 0
}

// BlockingSummary joins the blocking reasons for a human-readable message.
func (r *SafeDeleteValidationResult) BlockingSummary() string {
	return strings.Join(r.BlockingDependencies, ", ")
}

// PinSoftDeleteOnly marks the result as explicitly forbidding hard delete.
func (r *SafeDeleteValidationResult) PinSoftDeleteOnly() {
	f := false
	r.RequiresHardDelete = &f
}

// SafeDeleteResult is the outcome of a soft-delete, hard-delete, or restore
// execution.
type SafeDeleteResult struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	ErrorCode        ErrorCode `json:"errorCode,omitempty"`
	AffectedEntities []string  `json:"affectedEntities,omitempty"`
}

// Failure builds a failed result with the given code and message.
func Failure(code ErrorCode, message string) *SafeDeleteResult {
	return &SafeDeleteResult{Success: false, Message: message, ErrorCode: code}
}

// EntityToken formats the "{EntityType}:{EntityId}" token reported in
// AffectedEntities.
func EntityToken(entityType domain.EntityType, entityID string) string {
	return fmt.Sprintf("%s:%s", entityType, entityID)
}

// RecycleBinRequest parameterizes the unified soft-deleted entity listing.
// EntityType is "All" or one of the supported entity type names.
type RecycleBinRequest struct {
	ActorUserID string
	Search      string
	EntityType  string
	Page        int
	PageSize    int
}

const (
	// EntityFilterAll selects every supported entity type.
	EntityFilterAll = "All"

	defaultPageSize = 10
)

// Normalize clamps paging values and defaults the type filter.
func (r *RecycleBinRequest) Normalize() {
	if r.EntityType == "" {
		r.EntityType = EntityFilterAll
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
}

// Matches reports whether the filter selects the given entity type.
func (r *RecycleBinRequest) Matches(t domain.EntityType) bool {
	return r.EntityType == EntityFilterAll || r.EntityType == string(t)
}

// RecycleBinItem is the uniform projection of one soft-deleted entity.
type RecycleBinItem struct {
	EntityID        string            `json:"entityId"`
	EntityType      domain.EntityType `json:"entityType"`
	EntityName      string            `json:"entityName"`
	DeletedDate     time.Time         `json:"deletedDate"`
	DeletedByUserID string            `json:"deletedByUserId"`
	DeleteReason    string            `json:"deleteReason"`
}

// RecycleBinPage is one page of the unified listing. TotalCount counts all
// matches before pagination.
type RecycleBinPage struct {
	Items      []RecycleBinItem `json:"items"`
	TotalCount int              `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}
