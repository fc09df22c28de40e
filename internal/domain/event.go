package domain

import "time"

// DemandEvent is an append-only audit row recorded alongside demand
// mutations. Status transitions carry the from/to pair; other kinds leave
// them empty. Events are never read back by the engine's own rules.
type DemandEvent struct {
	ID         string
	DemandID   string
	Kind       EventKind
	FromStatus DemandStatus
	ToStatus   DemandStatus
	At         time.Time
}
