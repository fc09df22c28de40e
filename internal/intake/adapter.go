package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/repository"
)

// Submission is the loosely-typed payload coming off a form. Every field
// is a string; the adapter owns coercion and defaulting.
type Submission struct {
	Title        string
	Description  string
	AccountID    string
	ManagerID    string
	Budget       string // decimal string, e.g. "150.50"
	CreativeLink string
	DueDate      string // "2006-01-02"
	DueTime      string // "15:04"
	Priority     string
	Status       string // update-only; ignored on create
}

// AccountDirectory is the read-only account lookup the adapter needs to
// default the assigned manager at submission time.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// Adapter normalizes submissions into well-formed demand records.
type Adapter struct {
	accounts AccountDirectory
}

func NewAdapter(accounts AccountDirectory) *Adapter {
	return &Adapter{accounts: accounts}
}

// ParseCreate validates a creation submission and builds the demand the
// workflow engine will persist. Returns FieldErrors before any engine
// call when required fields are missing or values fail coercion. ID and
// timestamps are left for the engine to assign; status is always pending.
func (a *Adapter) ParseCreate(ctx context.Context, sub Submission) (*domain.Demand, error) {
	d := &domain.Demand{Status: domain.DemandPending, Priority: domain.PriorityMedium}
	errs := a.normalize(ctx, sub, d)
	if len(errs) > 0 {
		return nil, errs
	}
	return d, nil
}

// ParseUpdate validates an edit submission against the existing record.
// Identity, creation time, status, and the in-progress timer carry over
// from the existing demand untouched; a non-empty status field requests a
// transition, which the engine applies with its side effects.
func (a *Adapter) ParseUpdate(ctx context.Context, existing *domain.Demand, sub Submission) (*domain.Demand, error) {
	d := &domain.Demand{
		ID:        existing.ID,
		Status:    existing.Status,
		Priority:  existing.Priority,
		CreatedAt: existing.CreatedAt,
		StartedAt: existing.StartedAt,
		UpdatedAt: existing.UpdatedAt,
	}
	errs := a.normalize(ctx, sub, d)

	if s := strings.TrimSpace(sub.Status); s != "" {
		if !domain.ValidDemandStatuses[s] {
			errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)})
		} else {
			d.Status = domain.DemandStatus(s)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return d, nil
}

// normalize applies the shared field rules onto d and returns every field
// error found. Empty optional strings become absent values, never empty
// persisted strings or zeroes.
func (a *Adapter) normalize(ctx context.Context, sub Submission, d *domain.Demand) FieldErrors {
	var errs FieldErrors

	d.Title = strings.TrimSpace(sub.Title)
	if d.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}

	d.AccountID = strings.TrimSpace(sub.AccountID)
	if d.AccountID == "" {
		errs = append(errs, FieldError{Field: "account_id", Message: "is required"})
	}

	d.Description = strings.TrimSpace(sub.Description)
	d.CreativeLink = strings.TrimSpace(sub.CreativeLink)

	if budget := strings.TrimSpace(sub.Budget); budget != "" {
		cents, err := domain.ParseMoney(budget)
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "budget", Message: fmt.Sprintf("invalid amount %q", budget)})
		case cents < 0:
			errs = append(errs, FieldError{Field: "budget", Message: "must not be negative"})
		default:
			d.BudgetCents = &cents
		}
	} else {
		d.BudgetCents = nil
	}

	if dd := strings.TrimSpace(sub.DueDate); dd != "" {
		t, err := time.Parse("2006-01-02", dd)
		if err != nil {
			errs = append(errs, FieldError{Field: "due_date", Message: fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", dd)})
		} else {
			d.DueDate = &t
		}
	} else {
		d.DueDate = nil
	}

	if dt := strings.TrimSpace(sub.DueTime); dt != "" {
		if _, err := time.Parse("15:04", dt); err != nil {
			errs = append(errs, FieldError{Field: "due_time", Message: fmt.Sprintf("invalid time %q (expected HH:MM)", dt)})
		} else {
			d.DueTime = dt
		}
	} else {
		d.DueTime = ""
	}

	if p := strings.TrimSpace(sub.Priority); p != "" {
		if !domain.ValidDemandPriorities[p] {
			errs = append(errs, FieldError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", p)})
		} else {
			d.Priority = domain.DemandPriority(p)
		}
	}

	d.ManagerID = strings.TrimSpace(sub.ManagerID)
	if d.ManagerID == "" && d.AccountID != "" {
		// Manager defaulting happens once, at submission time. A stale or
		// unknown account reference passes through without a manager.
		acct, err := a.accounts.GetByID(ctx, d.AccountID)
		if err == nil {
			d.ManagerID = acct.ManagerID
		} else if !errors.Is(err, repository.ErrNotFound) {
			errs = append(errs, FieldError{Field: "account_id", Message: fmt.Sprintf("lookup failed: %v", err)})
		}
	}

	return errs
}
