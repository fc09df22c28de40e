package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/db"
	"github.com/brunocamargo/trafficboard/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo using a SQLite database.
type SQLiteAccountRepo struct {
	db db.DBTX
}

// NewSQLiteAccountRepo creates a new SQLiteAccountRepo.
func NewSQLiteAccountRepo(db db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: db}
}

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, name, manager_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.ManagerID,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT id, name, manager_id, created_at, updated_at FROM accounts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.Account
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&a.ID, &a.Name, &a.ManagerID, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	return populateAccount(&a, createdAtStr, updatedAtStr)
}

func (r *SQLiteAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT id, name, manager_id, created_at, updated_at FROM accounts ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var a domain.Account
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&a.ID, &a.Name, &a.ManagerID, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		acct, err := populateAccount(&a, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *SQLiteAccountRepo) Update(ctx context.Context, a *domain.Account) error {
	query := `UPDATE accounts SET name = ?, manager_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Name,
		a.ManagerID,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func populateAccount(a *domain.Account, createdAtStr, updatedAtStr string) (*domain.Account, error) {
	var parseErr error
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return a, nil
}
