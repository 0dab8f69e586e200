package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteAuditTrailRepo implements AuditTrailRepo over a DBTX. The table is
// append-only; there is deliberately no update or delete method.
type SQLiteAuditTrailRepo struct {
	db db.DBTX
}

// NewSQLiteAuditTrailRepo creates a new SQLiteAuditTrailRepo.
func NewSQLiteAuditTrailRepo(dbtx db.DBTX) *SQLiteAuditTrailRepo {
	return &SQLiteAuditTrailRepo{db: dbtx}
}

func (r *SQLiteAuditTrailRepo) Append(ctx context.Context, rec *domain.DeleteAuditTrail) error {
	query := `INSERT INTO delete_audit_trail
		(id, entity_type, entity_id, actor_user_id, operation, reason, entity_snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.EntityType),
		rec.EntityID,
		rec.ActorUserID,
		string(rec.Operation),
		rec.Reason,
		rec.EntityStateSnapshot,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}

func (r *SQLiteAuditTrailRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.DeleteAuditTrail, error) {
	query := `SELECT id, entity_type, entity_id, actor_user_id, operation, reason, entity_snapshot, created_at
		FROM delete_audit_trail
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("listing audit records: %w", err)
	}
	defer rows.Close()

	var records []*domain.DeleteAuditTrail
	for rows.Next() {
		var rec domain.DeleteAuditTrail
		var entityTypeStr, operation, createdAt string
		if err := rows.Scan(&rec.ID, &entityTypeStr, &rec.EntityID, &rec.ActorUserID,
			&operation, &rec.Reason, &rec.EntityStateSnapshot, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		rec.EntityType = domain.EntityType(entityTypeStr)
		rec.Operation = domain.Operation(operation)
		t, err := parseTime("created_at", createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = t
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit records: %w", err)
	}
	return records, nil
}
