package domain

import "time"

// Account is the external ad account a demand belongs to. The engine does
// not own account lifecycle; it reads accounts to resolve display names
// and the default manager at intake time.
type Account struct {
	ID        string
	Name      string
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
