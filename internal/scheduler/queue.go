package scheduler

import "github.com/napolitain/lacuna-upgrader/internal/models"

// QueueTime estimates the seconds of work already queued in a colony.
//
// The service runs builds one after another, so the last queued building's
// remaining time covers everything before it: the estimate is the largest
// remaining time, not the sum.
func QueueTime(structures []models.Structure) int {
	longest := 0
	for _, s := range structures {
		if s.Pending != nil && s.Pending.SecondsRemaining > longest {
			longest = s.Pending.SecondsRemaining
		}
	}
	return longest
}
