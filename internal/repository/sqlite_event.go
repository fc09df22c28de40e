package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/db"
	"github.com/brunocamargo/trafficboard/internal/domain"
)

// SQLiteDemandEventRepo implements DemandEventRepo using a SQLite database.
type SQLiteDemandEventRepo struct {
	db db.DBTX
}

// NewSQLiteDemandEventRepo creates a new SQLiteDemandEventRepo.
func NewSQLiteDemandEventRepo(db db.DBTX) *SQLiteDemandEventRepo {
	return &SQLiteDemandEventRepo{db: db}
}

func (r *SQLiteDemandEventRepo) Append(ctx context.Context, e *domain.DemandEvent) error {
	query := `INSERT INTO demand_events (id, demand_id, kind, from_status, to_status, at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.DemandID,
		string(e.Kind),
		string(e.FromStatus),
		string(e.ToStatus),
		e.At.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting demand event: %w", err)
	}
	return nil
}

func (r *SQLiteDemandEventRepo) ListByDemand(ctx context.Context, demandID string) ([]*domain.DemandEvent, error) {
	query := `SELECT id, demand_id, kind, from_status, to_status, at
		FROM demand_events WHERE demand_id = ? ORDER BY at, id`
	rows, err := r.db.QueryContext(ctx, query, demandID)
	if err != nil {
		return nil, fmt.Errorf("listing demand events: %w", err)
	}
	defer rows.Close()

	var events []*domain.DemandEvent
	for rows.Next() {
		var e domain.DemandEvent
		var kindStr, fromStr, toStr, atStr string
		if err := rows.Scan(&e.ID, &e.DemandID, &kindStr, &fromStr, &toStr, &atStr); err != nil {
			return nil, fmt.Errorf("scanning demand event: %w", err)
		}
		e.Kind = domain.EventKind(kindStr)
		e.FromStatus = domain.DemandStatus(fromStr)
		e.ToStatus = domain.DemandStatus(toStr)
		at, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			return nil, fmt.Errorf("parsing event time: %w", err)
		}
		e.At = at
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating demand events: %w", err)
	}
	return events, nil
}
