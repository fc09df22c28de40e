package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/db"
	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/google/uuid"
)

type demandService struct {
	database db.DBTX
	uow      db.UnitOfWork
	notifier Notifier
	observer UseCaseObserver
	now      func() time.Time
}

// DemandServiceOption tweaks service construction.
type DemandServiceOption func(*demandService)

// WithClock overrides the service clock. Tests use it to pin transition
// timestamps.
func WithClock(now func() time.Time) DemandServiceOption {
	return func(s *demandService) {
		s.now = now
	}
}

// WithNotifier attaches the notification sink.
func WithNotifier(n Notifier) DemandServiceOption {
	return func(s *demandService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithObservers attaches use-case observers (first non-nil wins).
func WithObservers(observers ...UseCaseObserver) DemandServiceOption {
	return func(s *demandService) {
		s.observer = useCaseObserverOrNoop(observers)
	}
}

// NewDemandService wires the workflow engine over the entity store. The
// DBTX is used for plain reads; the UnitOfWork scopes each mutation so a
// demand write and its audit event land together.
func NewDemandService(database db.DBTX, uow db.UnitOfWork, opts ...DemandServiceOption) DemandService {
	s := &demandService{
		database: database,
		uow:      uow,
		notifier: NoopNotifier{},
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *demandService) Create(ctx context.Context, d *domain.Demand) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := s.now()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Status == "" {
		d.Status = domain.DemandPending
	}
	if d.Priority == "" {
		d.Priority = domain.PriorityMedium
	}

	// Validation must fail before anything reaches the store.
	if err := d.Validate(); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDemandRepo(tx).Create(ctx, d); err != nil {
			return err
		}
		return repository.NewSQLiteDemandEventRepo(tx).Append(ctx, &domain.DemandEvent{
			ID:       uuid.New().String(),
			DemandID: d.ID,
			Kind:     domain.EventCreated,
			ToStatus: d.Status,
			At:       now,
		})
	})
	s.observe(ctx, "demand_create", now, err, map[string]any{"demand_id": d.ID})
	if err != nil {
		return s.persistErr(err)
	}

	s.notify(ctx, fmt.Sprintf("Demanda %q criada", d.Title))
	return nil
}

func (s *demandService) GetByID(ctx context.Context, id string) (*domain.Demand, error) {
	d, err := repository.NewSQLiteDemandRepo(s.database).GetByID(ctx, id)
	if err != nil {
		return nil, s.persistErr(err)
	}
	return d, nil
}

func (s *demandService) List(ctx context.Context, accountID string) ([]*domain.Demand, error) {
	demands, err := repository.NewSQLiteDemandRepo(s.database).List(ctx, accountID)
	if err != nil {
		return nil, s.persistErr(err)
	}
	return demands, nil
}

// Update applies arbitrary field changes atomically. When the incoming
// status differs from the stored one, the transition side effects run
// against the stored status before persistence.
func (s *demandService) Update(ctx context.Context, d *domain.Demand) error {
	if err := d.Validate(); err != nil {
		return err
	}

	stored, err := repository.NewSQLiteDemandRepo(s.database).GetByID(ctx, d.ID)
	if err != nil {
		return s.persistErr(err)
	}

	now := s.now()
	newStatus := d.Status
	statusChanged := newStatus != stored.Status
	if statusChanged {
		// Replay the transition from the stored status so StartedAt side
		// effects apply exactly once.
		d.Status = stored.Status
		d.StartedAt = stored.StartedAt
		if err := d.ApplyStatus(newStatus, now); err != nil {
			return err
		}
	} else {
		d.UpdatedAt = now
	}
	d.CreatedAt = stored.CreatedAt

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDemandRepo(tx).Update(ctx, d); err != nil {
			return err
		}
		ev := &domain.DemandEvent{
			ID:       uuid.New().String(),
			DemandID: d.ID,
			Kind:     domain.EventFieldsUpdated,
			At:       now,
		}
		if statusChanged {
			ev.Kind = domain.EventStatusChanged
			ev.FromStatus = stored.Status
			ev.ToStatus = newStatus
		}
		return repository.NewSQLiteDemandEventRepo(tx).Append(ctx, ev)
	})
	s.observe(ctx, "demand_update", now, err, map[string]any{"demand_id": d.ID})
	if err != nil {
		return s.persistErr(err)
	}

	s.notify(ctx, fmt.Sprintf("Demanda %q atualizada", d.Title))
	return nil
}

func (s *demandService) TransitionStatus(ctx context.Context, id string, newStatus domain.DemandStatus) (*domain.Demand, error) {
	d, err := repository.NewSQLiteDemandRepo(s.database).GetByID(ctx, id)
	if err != nil {
		return nil, s.persistErr(err)
	}

	// Dropping a card on the column it already occupies is a successful
	// no-op: no write, no timestamp churn.
	if d.Status == newStatus {
		return d, nil
	}

	now := s.now()
	from := d.Status
	if err := d.ApplyStatus(newStatus, now); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDemandRepo(tx).Update(ctx, d); err != nil {
			return err
		}
		return repository.NewSQLiteDemandEventRepo(tx).Append(ctx, &domain.DemandEvent{
			ID:         uuid.New().String(),
			DemandID:   d.ID,
			Kind:       domain.EventStatusChanged,
			FromStatus: from,
			ToStatus:   newStatus,
			At:         now,
		})
	})
	s.observe(ctx, "demand_transition", now, err, map[string]any{
		"demand_id": d.ID,
		"from":      string(from),
		"to":        string(newStatus),
	})
	if err != nil {
		return nil, s.persistErr(err)
	}

	s.notify(ctx, fmt.Sprintf("Demanda %q movida de %s para %s", d.Title, from, newStatus))
	return d, nil
}

func (s *demandService) History(ctx context.Context, id string) ([]*domain.DemandEvent, error) {
	events, err := repository.NewSQLiteDemandEventRepo(s.database).ListByDemand(ctx, id)
	if err != nil {
		return nil, s.persistErr(err)
	}
	return events, nil
}

// persistErr tags store failures so callers can distinguish them from
// validation and not-found errors.
func (s *demandService) persistErr(err error) error {
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func (s *demandService) notify(ctx context.Context, msg string) {
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:    "notify",
			Success: false,
			Err:     err,
		})
	}
}

func (s *demandService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  s.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}
