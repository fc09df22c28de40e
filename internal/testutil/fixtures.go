package testutil

import (
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/google/uuid"
)

var fixtureNow = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

// Account options

type AccountOption func(*domain.Account)

func WithManager(managerID string) AccountOption {
	return func(a *domain.Account) {
		a.ManagerID = managerID
	}
}

// NewTestAccount builds a persisted-ready account fixture.
func NewTestAccount(name string, opts ...AccountOption) *domain.Account {
	a := &domain.Account{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: fixtureNow,
		UpdatedAt: fixtureNow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Demand options

type DemandOption func(*domain.Demand)

func WithStatus(s domain.DemandStatus) DemandOption {
	return func(d *domain.Demand) {
		d.Status = s
	}
}

func WithPriority(p domain.DemandPriority) DemandOption {
	return func(d *domain.Demand) {
		d.Priority = p
	}
}

func WithBudgetCents(cents int64) DemandOption {
	return func(d *domain.Demand) {
		d.BudgetCents = &cents
	}
}

func WithStartedAt(t time.Time) DemandOption {
	return func(d *domain.Demand) {
		d.StartedAt = &t
	}
}

func WithDueDate(t time.Time) DemandOption {
	return func(d *domain.Demand) {
		d.DueDate = &t
	}
}

func WithCreatedAt(t time.Time) DemandOption {
	return func(d *domain.Demand) {
		d.CreatedAt = t
		d.UpdatedAt = t
	}
}

func WithDemandManager(managerID string) DemandOption {
	return func(d *domain.Demand) {
		d.ManagerID = managerID
	}
}

// NewTestDemand builds a pending demand fixture attached to accountID.
func NewTestDemand(accountID, title string, opts ...DemandOption) *domain.Demand {
	d := &domain.Demand{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Status:    domain.DemandPending,
		CreatedAt: fixtureNow,
		UpdatedAt: fixtureNow,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
