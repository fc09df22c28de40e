package service

import (
	"context"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/google/uuid"
)

type accountService struct {
	accounts repository.AccountRepo
}

func NewAccountService(accounts repository.AccountRepo) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Create(ctx context.Context, a *domain.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.accounts.Create(ctx, a)
}

func (s *accountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *accountService) Update(ctx context.Context, a *domain.Account) error {
	a.UpdatedAt = time.Now().UTC()
	return s.accounts.Update(ctx, a)
}
