package service

import (
	"context"
	"testing"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/brunocamargo/trafficboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAssignsID(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewAccountService(repository.NewSQLiteAccountRepo(database))
	ctx := context.Background()

	a := &domain.Account{Name: "Cliente Beta", ManagerID: "mgr-3"}
	require.NoError(t, svc.Create(ctx, a))
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente Beta", got.Name)
}

func TestAccountService_List(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewAccountService(repository.NewSQLiteAccountRepo(database))
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Account{Name: "B"}))
	require.NoError(t, svc.Create(ctx, &domain.Account{Name: "A"}))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
}
