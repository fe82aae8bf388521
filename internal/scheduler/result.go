package scheduler

import "github.com/napolitain/lacuna-upgrader/internal/models"

// Outcome is the terminal state of one colony pass
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeAborted
	OutcomeSkipped
	OutcomeFailed
)

// String returns a string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeAborted:
		return "aborted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AbortReason tells why a colony was aborted
type AbortReason string

const (
	ReasonNone      AbortReason = ""
	ReasonBudget    AbortReason = "budget"
	ReasonQueueFull AbortReason = "queue_full"
	ReasonCancelled AbortReason = "cancelled"
)

// Status is what happened to one candidate building
type Status int

const (
	StatusPlanned Status = iota // dry-run only
	StatusQueued
	StatusFailed
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusQueued:
		return "queued"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Decision records one upgrade attempt, or intended attempt in dry-run
type Decision struct {
	Rule        models.UpgradeRule
	StructureID string
	Name        string
	FromLevel   int
	ToLevel     int
	Status      Status
	Seconds     int // build time returned by the service, queued only
	Err         error
}

// Result is the outcome of one colony pass
type Result struct {
	Colony    models.ColonyRef
	Outcome   Outcome
	Reason    AbortReason
	QueueTime int // running estimate when the pass ended
	Decisions []Decision
	Err       error // set for OutcomeFailed and cancelled passes
}

// Queued counts the upgrades actually enqueued
func (r Result) Queued() int {
	n := 0
	for _, d := range r.Decisions {
		if d.Status == StatusQueued {
			n++
		}
	}
	return n
}
