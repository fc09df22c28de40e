package domain

type DemandStatus string

const (
	DemandPending    DemandStatus = "pending"
	DemandInProgress DemandStatus = "in_progress"
	DemandDone       DemandStatus = "done"
)

// ValidDemandStatuses is the canonical set of accepted status strings.
var ValidDemandStatuses = map[string]bool{
	"pending": true, "in_progress": true, "done": true,
}

type DemandPriority string

const (
	PriorityLow    DemandPriority = "low"
	PriorityMedium DemandPriority = "medium"
	PriorityHigh   DemandPriority = "high"
)

// ValidDemandPriorities is the canonical set of accepted priority strings.
var ValidDemandPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type EventKind string

const (
	EventCreated       EventKind = "created"
	EventFieldsUpdated EventKind = "fields_updated"
	EventStatusChanged EventKind = "status_changed"
)
