package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/db"
	"github.com/brunocamargo/trafficboard/internal/domain"
)

// demandColumns is the canonical SELECT column list for demands.
const demandColumns = `id, account_id, manager_id, title, description,
		budget_cents, creative_link, due_date, due_time, priority, status,
		created_at, started_at, updated_at`

// SQLiteDemandRepo implements DemandRepo using a SQLite database.
type SQLiteDemandRepo struct {
	db db.DBTX
}

// NewSQLiteDemandRepo creates a new SQLiteDemandRepo. Pass a *sql.Tx-backed
// DBTX to scope the repository to a transaction.
func NewSQLiteDemandRepo(db db.DBTX) *SQLiteDemandRepo {
	return &SQLiteDemandRepo{db: db}
}

func (r *SQLiteDemandRepo) Create(ctx context.Context, d *domain.Demand) error {
	query := `INSERT INTO demands (id, account_id, manager_id, title, description,
		budget_cents, creative_link, due_date, due_time, priority, status,
		created_at, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.AccountID,
		d.ManagerID,
		d.Title,
		d.Description,
		nullableInt64ToValue(d.BudgetCents),
		d.CreativeLink,
		nullableTimeToString(d.DueDate, dateLayout),
		d.DueTime,
		string(d.Priority),
		string(d.Status),
		d.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(d.StartedAt, time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting demand: %w", err)
	}
	return nil
}

func (r *SQLiteDemandRepo) GetByID(ctx context.Context, id string) (*domain.Demand, error) {
	query := `SELECT ` + demandColumns + ` FROM demands WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanDemand(row)
}

func (r *SQLiteDemandRepo) List(ctx context.Context, accountID string) ([]*domain.Demand, error) {
	query := `SELECT ` + demandColumns + ` FROM demands ORDER BY created_at DESC, id DESC`
	args := []any{}
	if accountID != "" {
		query = `SELECT ` + demandColumns + ` FROM demands WHERE account_id = ?
			ORDER BY created_at DESC, id DESC`
		args = append(args, accountID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing demands: %w", err)
	}
	defer rows.Close()
	return r.scanDemands(rows)
}

func (r *SQLiteDemandRepo) Update(ctx context.Context, d *domain.Demand) error {
	query := `UPDATE demands SET account_id = ?, manager_id = ?, title = ?,
		description = ?, budget_cents = ?, creative_link = ?, due_date = ?,
		due_time = ?, priority = ?, status = ?, started_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.AccountID,
		d.ManagerID,
		d.Title,
		d.Description,
		nullableInt64ToValue(d.BudgetCents),
		d.CreativeLink,
		nullableTimeToString(d.DueDate, dateLayout),
		d.DueTime,
		string(d.Priority),
		string(d.Status),
		nullableTimeToString(d.StartedAt, time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating demand: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating demand: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("demand %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

// scanDemand scans a single demand from a *sql.Row.
func (r *SQLiteDemandRepo) scanDemand(row *sql.Row) (*domain.Demand, error) {
	var d domain.Demand
	var priorityStr, statusStr string
	var budgetCents sql.NullInt64
	var dueDateStr, startedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID, &d.AccountID, &d.ManagerID, &d.Title, &d.Description,
		&budgetCents, &d.CreativeLink, &dueDateStr, &d.DueTime,
		&priorityStr, &statusStr,
		&createdAtStr, &startedAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("demand: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning demand: %w", err)
	}
	return r.populateDemand(&d, priorityStr, statusStr, budgetCents, dueDateStr, startedAtStr, createdAtStr, updatedAtStr)
}

// scanDemands scans multiple demands from *sql.Rows.
func (r *SQLiteDemandRepo) scanDemands(rows *sql.Rows) ([]*domain.Demand, error) {
	var demands []*domain.Demand
	for rows.Next() {
		var d domain.Demand
		var priorityStr, statusStr string
		var budgetCents sql.NullInt64
		var dueDateStr, startedAtStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&d.ID, &d.AccountID, &d.ManagerID, &d.Title, &d.Description,
			&budgetCents, &d.CreativeLink, &dueDateStr, &d.DueTime,
			&priorityStr, &statusStr,
			&createdAtStr, &startedAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning demand row: %w", err)
		}

		demand, err := r.populateDemand(&d, priorityStr, statusStr, budgetCents, dueDateStr, startedAtStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		demands = append(demands, demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating demands: %w", err)
	}
	return demands, nil
}

// populateDemand fills in parsed fields on a Demand after scanning raw values.
func (r *SQLiteDemandRepo) populateDemand(
	d *domain.Demand,
	priorityStr, statusStr string,
	budgetCents sql.NullInt64,
	dueDateStr, startedAtStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Demand, error) {
	d.Priority = domain.DemandPriority(priorityStr)
	d.Status = domain.DemandStatus(statusStr)
	d.BudgetCents = parseNullableInt64(budgetCents)
	d.DueDate = parseNullableTime(dueDateStr, dateLayout)
	d.StartedAt = parseNullableTime(startedAtStr, time.RFC3339)

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return d, nil
}
