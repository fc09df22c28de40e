package service

import (
	"context"

	"github.com/brunocamargo/trafficboard/internal/domain"
)

// DemandService is the workflow engine's operation surface. All mutations
// run their state-machine side effects before persistence; validation
// failures never reach the entity store.
type DemandService interface {
	Create(ctx context.Context, d *domain.Demand) error
	GetByID(ctx context.Context, id string) (*domain.Demand, error)
	List(ctx context.Context, accountID string) ([]*domain.Demand, error)
	Update(ctx context.Context, d *domain.Demand) error
	// TransitionStatus moves the demand to newStatus. When newStatus
	// equals the current status it returns the stored record unchanged
	// and performs no write.
	TransitionStatus(ctx context.Context, id string, newStatus domain.DemandStatus) (*domain.Demand, error)
	History(ctx context.Context, id string) ([]*domain.DemandEvent, error)
}

type AccountService interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
}
