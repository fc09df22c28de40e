package repository

import (
	"context"

	"github.com/brunocamargo/trafficboard/internal/domain"
)

// DemandRepo is the entity-store surface the workflow engine depends on.
// Single-record operations only; concurrent writes to the same row are
// last-write-wins at the storage layer.
type DemandRepo interface {
	Create(ctx context.Context, d *domain.Demand) error
	GetByID(ctx context.Context, id string) (*domain.Demand, error)
	// List returns demands newest-first. An empty accountID means no
	// account scoping. Board column order follows this return order.
	List(ctx context.Context, accountID string) ([]*domain.Demand, error)
	Update(ctx context.Context, d *domain.Demand) error
}

// AccountRepo resolves account references. The engine only reads accounts;
// create/update exist for the embedding CLI.
type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
}

// DemandEventRepo stores the append-only status history.
type DemandEventRepo interface {
	Append(ctx context.Context, e *domain.DemandEvent) error
	ListByDemand(ctx context.Context, demandID string) ([]*domain.DemandEvent, error)
}
