package cli

import (
	"context"
	"testing"

	"github.com/brunocamargo/trafficboard/internal/board"
	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
	"github.com/brunocamargo/trafficboard/internal/service"
	"github.com/brunocamargo/trafficboard/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoardModel(t *testing.T) (*boardModel, service.DemandService, *domain.Account) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	accounts := repository.NewSQLiteAccountRepo(database)
	acct := testutil.NewTestAccount("Cliente Alfa")
	require.NoError(t, accounts.Create(ctx, acct))

	svc := service.NewDemandService(database, testutil.NewTestUoW(database))
	ctrl := board.NewController(svc, "")
	require.NoError(t, ctrl.Refresh(ctx))

	app := &App{Demands: svc}
	return newBoardModel(app, ctrl), svc, acct
}

func keyMsg(s string) tea.Msg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardModel_PickUpAndDrop(t *testing.T) {
	m, svc, acct := setupBoardModel(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Arrastável", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))
	require.NoError(t, m.ctrl.Refresh(ctx))

	// Pick up the card in the pending column.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*boardModel)
	assert.Equal(t, d.ID, m.grabbed)

	// Move focus to in_progress and drop.
	updated, _ = m.Update(keyMsg("l"))
	m = updated.(*boardModel)
	assert.Equal(t, 1, m.col)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*boardModel)
	require.NotNil(t, cmd)
	assert.True(t, m.busy, "card is disabled while the drop is in flight")
	assert.Empty(t, m.grabbed)

	// Run the drop command and feed its result back.
	msg := cmd()
	dropMsg, ok := msg.(dropDoneMsg)
	require.True(t, ok)
	require.NoError(t, dropMsg.err)
	updated, _ = m.Update(dropMsg)
	m = updated.(*boardModel)
	assert.False(t, m.busy)

	stored, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandInProgress, stored.Status)
}

func TestBoardModel_EscCancelsDrag(t *testing.T) {
	m, svc, acct := setupBoardModel(t)
	ctx := context.Background()

	d := &domain.Demand{Title: "Desistida", AccountID: acct.ID}
	require.NoError(t, svc.Create(ctx, d))
	require.NoError(t, m.ctrl.Refresh(ctx))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*boardModel)
	require.Equal(t, d.ID, m.grabbed)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*boardModel)
	assert.Empty(t, m.grabbed)

	stored, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, stored.Status, "cancel must not transition")
}

func TestBoardModel_GrabOnEmptyColumnIsIgnored(t *testing.T) {
	m, _, _ := setupBoardModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*boardModel)
	assert.Nil(t, cmd)
	assert.Empty(t, m.grabbed)
}

func TestBoardModel_ViewShowsColumns(t *testing.T) {
	m, svc, acct := setupBoardModel(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Demand{Title: "Na fila", AccountID: acct.ID}))
	require.NoError(t, m.ctrl.Refresh(ctx))

	view := m.View()
	assert.Contains(t, view, "Pendente")
	assert.Contains(t, view, "Em andamento")
	assert.Contains(t, view, "Concluída")
	assert.Contains(t, view, "Na fila")
}
