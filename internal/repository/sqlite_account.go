package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo over a DBTX.
type SQLiteAccountRepo struct {
	db db.DBTX
}

// NewSQLiteAccountRepo creates a new SQLiteAccountRepo.
func NewSQLiteAccountRepo(dbtx db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: dbtx}
}

const accountColumns = `id, username, email, role, status, created_at, updated_at`

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		string(a.Role),
		int(a.Status),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.Account
	var role string
	var status int
	var createdAt, updatedAt string

	err := row.Scan(&a.ID, &a.Username, &a.Email, &role, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}

	a.Role = domain.AccountRole(role)
	a.Status = domain.EntityStatus(status)
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAccountRepo) UpdateStatusFrom(ctx context.Context, id string, observed, target domain.EntityStatus) (int64, error) {
	query := `UPDATE accounts SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, int(target), nowUTC(), id, int(observed))
	if err != nil {
		return 0, fmt.Errorf("updating account status: %w", err)
	}
	return rowsAffected(res, "updating account status")
}

func (r *SQLiteAccountRepo) ListArchivedSelf(ctx context.Context, userID, search string) ([]ArchivedRow, error) {
	query := `SELECT id, username, updated_at, id FROM accounts
		WHERE status = ? AND id = ?
		  AND (? = '' OR instr(lower(username), lower(?)) > 0 OR instr(lower(email), lower(?)) > 0)`
	rows, err := r.db.QueryContext(ctx, query, int(domain.StatusArchived), userID, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("listing archived account: %w", err)
	}
	defer rows.Close()
	return scanArchivedRows(rows, "account")
}
