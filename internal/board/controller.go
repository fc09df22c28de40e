package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brunocamargo/trafficboard/internal/domain"
)

var (
	// ErrNoDrag is returned by Drop when no drag is in progress.
	ErrNoDrag = errors.New("no demand is being dragged")
	// ErrDropInFlight is returned when a drop arrives while a previous
	// one is still being persisted. Callers disable the source card and
	// retry after the in-flight drop settles.
	ErrDropInFlight = errors.New("a drop is already in flight")
	// ErrUnknownDemand is returned when the dragged id is not on the board.
	ErrUnknownDemand = errors.New("demand is not on the board")
)

// Engine is the slice of the workflow engine the board needs: a fresh
// read of the demand set and the drop-triggered transition.
type Engine interface {
	List(ctx context.Context, accountID string) ([]*domain.Demand, error)
	TransitionStatus(ctx context.Context, id string, newStatus domain.DemandStatus) (*domain.Demand, error)
}

// Controller owns the board's derived state and the drag/drop contract.
// It never patches its snapshot optimistically: after a successful drop
// it re-reads the store, so concurrent edits from other sessions are
// picked up at the cost of an extra round trip. A failed drop leaves the
// last successfully fetched snapshot untouched.
type Controller struct {
	engine    Engine
	accountID string // optional scope; empty means all accounts

	mu       sync.Mutex
	snapshot Snapshot
	dragging string // id of the card being dragged, empty when none
	inFlight bool
}

// NewController creates a board controller scoped to accountID (empty for
// all accounts). Call Refresh before first use.
func NewController(engine Engine, accountID string) *Controller {
	return &Controller{engine: engine, accountID: accountID}
}

// Refresh re-derives the snapshot from a fresh read of the entity store.
func (c *Controller) Refresh(ctx context.Context) error {
	demands, err := c.engine.List(ctx, c.accountID)
	if err != nil {
		return fmt.Errorf("refreshing board: %w", err)
	}
	c.mu.Lock()
	c.snapshot = Project(demands)
	c.mu.Unlock()
	return nil
}

// Snapshot returns the last successfully derived board state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// BeginDrag records the dragged demand's identity. The id must be on the
// current snapshot.
func (c *Controller) BeginDrag(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.snapshot.Find(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDemand, id)
	}
	c.dragging = id
	return nil
}

// CancelDrag clears the drag without any transition.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	c.dragging = ""
	c.mu.Unlock()
}

// Dragging returns the id of the card being dragged, if any.
func (c *Controller) Dragging() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging, c.dragging != ""
}

// Drop finishes the drag onto the given column. A drop on the card's own
// column is a successful no-op with no store write. One drop may be in
// flight at a time; the board serializes rapid repeated drops rather than
// racing out-of-order status writes.
func (c *Controller) Drop(ctx context.Context, column domain.DemandStatus) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrDropInFlight
	}
	id := c.dragging
	if id == "" {
		c.mu.Unlock()
		return ErrNoDrag
	}
	d, ok := c.snapshot.Find(id)
	if !ok {
		c.dragging = ""
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownDemand, id)
	}
	if d.Status == column {
		c.dragging = ""
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.dragging = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if _, err := c.engine.TransitionStatus(ctx, id, column); err != nil {
		return err
	}
	return c.Refresh(ctx)
}
