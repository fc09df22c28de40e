package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/brunocamargo/trafficboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// fakeClock lets tests pin and advance the service clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func setupDemandService(t *testing.T) (DemandService, *fakeClock, *domain.Account) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	accounts := repository.NewSQLiteAccountRepo(database)
	acct := testutil.NewTestAccount("Cliente Alfa", testutil.WithManager("mgr-1"))
	require.NoError(t, accounts.Create(ctx, acct))

	clock := &fakeClock{t: t0}
	svc := NewDemandService(database, testutil.NewTestUoW(database), WithClock(clock.Now))
	return svc, clock, acct
}

func TestDemandService_Create(t *testing.T) {
	svc, _, acct := setupDemandService(t)
	ctx := context.Background()

	// Scenario: title and account only, no status given.
	d := &domain.Demand{Title: "Subir campanha X", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	assert.NotEmpty(t, d.ID, "service should assign UUID")

	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, got.Status)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, t0, got.CreatedAt)
	assert.Nil(t, got.StartedAt)
}

func TestDemandService_Create_RecordsEvent(t *testing.T) {
	svc, _, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Nova", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	events, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventCreated, events[0].Kind)
	assert.Equal(t, domain.DemandPending, events[0].ToStatus)
}

func TestDemandService_Create_ValidationWritesNothing(t *testing.T) {
	svc, _, acct := setupDemandService(t)
	ctx := context.Background()

	require.Error(t, svc.Create(ctx, &domain.Demand{AccountID: acct.ID}), "empty title")
	require.Error(t, svc.Create(ctx, &domain.Demand{Title: "Sem conta"}), "missing account")

	demands, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, demands, "an invalid create must not write anything")
}

func TestDemandService_TransitionStatus_TimerLifecycle(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Demanda", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	t1 := t0.Add(time.Hour)
	clock.t = t1
	got, err := svc.TransitionStatus(ctx, d.ID, domain.DemandInProgress)
	require.NoError(t, err)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, t1, *got.StartedAt)

	t2 := t0.Add(2 * time.Hour)
	clock.t = t2
	got, err = svc.TransitionStatus(ctx, d.ID, domain.DemandPending)
	require.NoError(t, err)
	assert.Nil(t, got.StartedAt)

	t3 := t0.Add(3 * time.Hour)
	clock.t = t3
	got, err = svc.TransitionStatus(ctx, d.ID, domain.DemandInProgress)
	require.NoError(t, err)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, t3, *got.StartedAt, "re-entry uses the new time, not the first one")

	// Everything above must have been persisted, not just returned.
	stored, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartedAt)
	assert.Equal(t, t3, *stored.StartedAt)
}

func TestDemandService_TransitionStatus_PendingDirectToDone(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Direto", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	clock.t = t0.Add(time.Hour)
	got, err := svc.TransitionStatus(ctx, d.ID, domain.DemandDone)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandDone, got.Status)
	assert.Nil(t, got.StartedAt, "skipping in_progress never sets the timer")
}

func TestDemandService_TransitionStatus_SameColumnNoOp(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Parada", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))
	before, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)

	clock.t = t0.Add(time.Hour)
	got, err := svc.TransitionStatus(ctx, d.ID, domain.DemandPending)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, got.UpdatedAt, "no-op must not refresh UpdatedAt")

	stored, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, stored.UpdatedAt)

	events, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1, "only the creation event; no transition recorded")
}

func TestDemandService_TransitionStatus_RecordsEvents(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Auditada", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	clock.t = t0.Add(time.Hour)
	_, err := svc.TransitionStatus(ctx, d.ID, domain.DemandInProgress)
	require.NoError(t, err)
	clock.t = t0.Add(2 * time.Hour)
	_, err = svc.TransitionStatus(ctx, d.ID, domain.DemandDone)
	require.NoError(t, err)

	events, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventCreated, events[0].Kind)
	assert.Equal(t, domain.DemandPending, events[1].FromStatus)
	assert.Equal(t, domain.DemandInProgress, events[1].ToStatus)
	assert.Equal(t, domain.DemandInProgress, events[2].FromStatus)
	assert.Equal(t, domain.DemandDone, events[2].ToStatus)
}

func TestDemandService_TransitionStatus_NotFound(t *testing.T) {
	svc, _, _ := setupDemandService(t)
	_, err := svc.TransitionStatus(context.Background(), "missing", domain.DemandDone)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDemandService_TransitionStatus_InvalidStatus(t *testing.T) {
	svc, _, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Demanda", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	_, err := svc.TransitionStatus(ctx, d.ID, domain.DemandStatus("blocked"))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	stored, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, stored.Status)
}

func TestDemandService_Update_BudgetRoundTrip(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Com verba", AccountID: acct.ID, Description: "desc"}
	require.NoError(t, svc.Create(ctx, d))

	clock.t = t0.Add(time.Hour)
	budget := int64(15050)
	updated := *d
	updated.BudgetCents = &budget
	require.NoError(t, svc.Update(ctx, &updated))

	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BudgetCents)
	assert.Equal(t, "150.50", domain.FormatMoney(*got.BudgetCents))
	assert.Equal(t, "Com verba", got.Title, "other fields unchanged")
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, t0, got.CreatedAt, "CreatedAt is immutable")
}

func TestDemandService_Update_StatusChangeAppliesSideEffects(t *testing.T) {
	svc, clock, acct := setupDemandService(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Via edição", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))

	t1 := t0.Add(time.Hour)
	clock.t = t1
	updated := *d
	updated.Status = domain.DemandInProgress
	require.NoError(t, svc.Update(ctx, &updated))

	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandInProgress, got.Status)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, t1, *got.StartedAt)

	events, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventStatusChanged, events[1].Kind)
}

func TestDemandService_Update_NotFound(t *testing.T) {
	svc, _, acct := setupDemandService(t)
	d := testutil.NewTestDemand(acct.ID, "Fantasma")
	err := svc.Update(context.Background(), d)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDemandService_PersistenceFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	accounts := repository.NewSQLiteAccountRepo(database)
	acct := testutil.NewTestAccount("Cliente")
	require.NoError(t, accounts.Create(ctx, acct))

	clock := &fakeClock{t: t0}
	healthy := NewDemandService(database, testutil.NewTestUoW(database), WithClock(clock.Now))
	d := &domain.Demand{Title: "Frágil", AccountID: acct.ID}
	require.NoError(t, healthy.Create(ctx, d))

	// Fail the second write in the transaction: the demand row goes in,
	// the audit event fails, the whole transition must roll back.
	storeErr := errors.New("disk is sad")
	failing := NewDemandService(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: storeErr}, WithClock(clock.Now))

	clock.t = t0.Add(time.Hour)
	_, err := failing.TransitionStatus(ctx, d.ID, domain.DemandInProgress)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	stored, err := healthy.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, stored.Status, "failed transition must not be partially persisted")
	assert.Nil(t, stored.StartedAt)
}

// recordingNotifier captures delivered messages; optionally fails.
type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, msg string) error {
	n.messages = append(n.messages, msg)
	return n.err
}

func TestDemandService_NotifierReceivesMessages(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	accounts := repository.NewSQLiteAccountRepo(database)
	acct := testutil.NewTestAccount("Cliente")
	require.NoError(t, accounts.Create(ctx, acct))

	notifier := &recordingNotifier{}
	svc := NewDemandService(database, testutil.NewTestUoW(database), WithNotifier(notifier))

	d := &domain.Demand{Title: "Notificada", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))
	_, err := svc.TransitionStatus(ctx, d.ID, domain.DemandDone)
	require.NoError(t, err)

	require.Len(t, notifier.messages, 2)
	assert.Contains(t, notifier.messages[0], "criada")
	assert.Contains(t, notifier.messages[1], "movida")
}

func TestDemandService_NotifierFailureDoesNotBlock(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	accounts := repository.NewSQLiteAccountRepo(database)
	acct := testutil.NewTestAccount("Cliente")
	require.NoError(t, accounts.Create(ctx, acct))

	notifier := &recordingNotifier{err: errors.New("sink offline")}
	svc := NewDemandService(database, testutil.NewTestUoW(database), WithNotifier(notifier))

	d := &domain.Demand{Title: "Resiliente", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d), "notification failure never fails the mutation")

	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, got.Status)
}
