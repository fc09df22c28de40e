package board

import "github.com/brunocamargo/trafficboard/internal/domain"

// Snapshot is the derived, read-only three-column view of a demand set.
// Order within a column follows the input order, which for the engine's
// List is the entity store's newest-first return order. Any other sorting
// is a presentation concern.
type Snapshot struct {
	Pending    []*domain.Demand
	InProgress []*domain.Demand
	Done       []*domain.Demand
}

// Project groups demands into columns by status. Demands carrying an
// unknown status (which the engine never produces) are dropped rather
// than invent a fourth column.
func Project(demands []*domain.Demand) Snapshot {
	var s Snapshot
	for _, d := range demands {
		switch d.Status {
		case domain.DemandPending:
			s.Pending = append(s.Pending, d)
		case domain.DemandInProgress:
			s.InProgress = append(s.InProgress, d)
		case domain.DemandDone:
			s.Done = append(s.Done, d)
		}
	}
	return s
}

// Column returns the slice for the given status, nil for unknown.
func (s Snapshot) Column(status domain.DemandStatus) []*domain.Demand {
	switch status {
	case domain.DemandPending:
		return s.Pending
	case domain.DemandInProgress:
		return s.InProgress
	case domain.DemandDone:
		return s.Done
	default:
		return nil
	}
}

// Find locates a demand by id across all columns.
func (s Snapshot) Find(id string) (*domain.Demand, bool) {
	for _, col := range [][]*domain.Demand{s.Pending, s.InProgress, s.Done} {
		for _, d := range col {
			if d.ID == id {
				return d, true
			}
		}
	}
	return nil, false
}

// Total is the number of demands across all columns.
func (s Snapshot) Total() int {
	return len(s.Pending) + len(s.InProgress) + len(s.Done)
}
