package board

import (
	"testing"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_GroupsByStatus(t *testing.T) {
	demands := []*domain.Demand{
		testutil.NewTestDemand("acc-1", "p1"),
		testutil.NewTestDemand("acc-1", "w1", testutil.WithStatus(domain.DemandInProgress)),
		testutil.NewTestDemand("acc-1", "p2"),
		testutil.NewTestDemand("acc-1", "d1", testutil.WithStatus(domain.DemandDone)),
	}

	s := Project(demands)
	require.Len(t, s.Pending, 2)
	require.Len(t, s.InProgress, 1)
	require.Len(t, s.Done, 1)
	assert.Equal(t, 4, s.Total())

	// Column order preserves input order.
	assert.Equal(t, "p1", s.Pending[0].Title)
	assert.Equal(t, "p2", s.Pending[1].Title)
}

func TestProject_DropsUnknownStatus(t *testing.T) {
	bad := testutil.NewTestDemand("acc-1", "weird")
	bad.Status = domain.DemandStatus("archived")

	s := Project([]*domain.Demand{bad})
	assert.Equal(t, 0, s.Total())
}

func TestSnapshot_Column(t *testing.T) {
	d := testutil.NewTestDemand("acc-1", "card", testutil.WithStatus(domain.DemandInProgress))
	s := Project([]*domain.Demand{d})

	assert.Len(t, s.Column(domain.DemandInProgress), 1)
	assert.Empty(t, s.Column(domain.DemandPending))
	assert.Nil(t, s.Column(domain.DemandStatus("nope")))
}

func TestSnapshot_Find(t *testing.T) {
	d := testutil.NewTestDemand("acc-1", "card")
	s := Project([]*domain.Demand{d})

	got, ok := s.Find(d.ID)
	require.True(t, ok)
	assert.Equal(t, d.ID, got.ID)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}
