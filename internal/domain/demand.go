package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus marks a status string outside the pending / in_progress
// / done enum. Both transition and validation failures wrap it.
var ErrInvalidStatus = errors.New("invalid demand status")

// Demand is a unit of work assigned to an ad account, moved through the
// three-column board (pending, in_progress, done).
type Demand struct {
	ID          string
	Title       string
	Description string

	// References to external entities. AccountID is required; the engine
	// passes it through without validating the account beyond lookup at
	// intake time. ManagerID defaults from the account's manager.
	AccountID string
	ManagerID string

	// BudgetCents holds the campaign budget in integer centavos so values
	// like 150.50 round-trip without float rounding. Nil means no budget.
	BudgetCents  *int64
	CreativeLink string

	DueDate *time.Time // date-only
	DueTime string     // "15:04", empty when unset

	Priority DemandPriority
	Status   DemandStatus

	CreatedAt time.Time
	// StartedAt is set when the demand enters in_progress and cleared when
	// it moves back to pending. A move into done leaves it untouched.
	StartedAt *time.Time
	UpdatedAt time.Time
}

// ApplyStatus moves the demand to newStatus at time now, applying all
// timing side effects. It is the single owner of transition behavior;
// callers never touch StartedAt directly. Any status may move to any
// other status. Returns an error only for an unknown status string.
// Applying the current status is a no-op and updates nothing.
func (d *Demand) ApplyStatus(newStatus DemandStatus, now time.Time) error {
	if !ValidDemandStatuses[string(newStatus)] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if newStatus == d.Status {
		return nil
	}

	from := d.Status
	d.Status = newStatus

	switch {
	case newStatus == DemandInProgress:
		t := now
		d.StartedAt = &t
	case from == DemandInProgress && newStatus == DemandPending:
		// Re-entering in_progress later must produce a fresh duration.
		d.StartedAt = nil
	}
	// Transitions touching done keep StartedAt as-is: the time-in-progress
	// figure freezes rather than resets, since done cards show no timer.

	d.UpdatedAt = now
	return nil
}

// Elapsed reports how long the demand has been in its current status at
// time now. For pending that is time since creation, for in_progress time
// since StartedAt. The bool is false for done (no timer is shown) and for
// an in_progress demand with no recorded start.
func (d *Demand) Elapsed(now time.Time) (time.Duration, bool) {
	switch d.Status {
	case DemandPending:
		return now.Sub(d.CreatedAt), true
	case DemandInProgress:
		if d.StartedAt == nil {
			return 0, false
		}
		return now.Sub(*d.StartedAt), true
	default:
		return 0, false
	}
}

// Validate checks the record-level invariants that must hold after intake
// normalization, regardless of how the demand was constructed.
func (d *Demand) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("demand title is required")
	}
	if d.AccountID == "" {
		return fmt.Errorf("demand account reference is required")
	}
	if !ValidDemandStatuses[string(d.Status)] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
	}
	if !ValidDemandPriorities[string(d.Priority)] {
		return fmt.Errorf("invalid demand priority %q", d.Priority)
	}
	if d.BudgetCents != nil && *d.BudgetCents < 0 {
		return fmt.Errorf("demand budget must not be negative")
	}
	return nil
}
