package scheduler

import (
	"context"
	"errors"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// remoteError mimics a service error carrying only a message
type remoteError struct {
	message string
}

func (e *remoteError) Error() string { return e.message }

func (e *remoteError) Is(target error) bool {
	return target == ErrQueueFull && e.message == "There's no room left in the build queue."
}

var errQueueFullRemote = &remoteError{message: "There's no room left in the build queue."}

// fakeUpgrader replays scripted responses per building id and records calls
type fakeUpgrader struct {
	seconds map[string]int
	errs    map[string]error
	calls   *[]string
	onCall  func() // runs before answering, e.g. to cancel the run
}

func (f *fakeUpgrader) Upgrade(ctx context.Context, structureID string) (models.PendingBuild, error) {
	*f.calls = append(*f.calls, structureID)
	if f.onCall != nil {
		f.onCall()
	}
	if err := ctx.Err(); err != nil {
		return models.PendingBuild{}, err
	}
	if err, ok := f.errs[structureID]; ok {
		return models.PendingBuild{}, err
	}
	return models.PendingBuild{SecondsRemaining: f.seconds[structureID]}, nil
}

// fakeRegistry answers every kind in kinds with the same upgrader
type fakeRegistry struct {
	upgrader *fakeUpgrader
	missing  map[models.Kind]bool
}

func newFakeRegistry() *fakeRegistry {
	calls := []string{}
	return &fakeRegistry{
		upgrader: &fakeUpgrader{
			seconds: map[string]int{},
			errs:    map[string]error{},
			calls:   &calls,
		},
		missing: map[models.Kind]bool{},
	}
}

func (r *fakeRegistry) Lookup(kind models.Kind) (models.Upgradeable, bool) {
	if r.missing[kind] {
		return nil, false
	}
	return r.upgrader, true
}

func (r *fakeRegistry) calls() []string {
	return *r.upgrader.calls
}

// fakeEmpire serves fixed colonies and records building fetches
type fakeEmpire struct {
	colonies     []models.ColonyRef
	structures   map[string][]models.Structure
	fetchErrs    map[string]error
	listErr      error
	fetchedIDs   []string
	listRequests int
}

func (e *fakeEmpire) Colonies(context.Context) ([]models.ColonyRef, error) {
	e.listRequests++
	if e.listErr != nil {
		return nil, e.listErr
	}
	return e.colonies, nil
}

func (e *fakeEmpire) Structures(_ context.Context, colonyID string) ([]models.Structure, error) {
	e.fetchedIDs = append(e.fetchedIDs, colonyID)
	if err, ok := e.fetchErrs[colonyID]; ok {
		return nil, err
	}
	return e.structures[colonyID], nil
}

var errBoom = errors.New("boom")

func building(id, name string, level int) models.Structure {
	return models.Structure{ID: id, Name: name, Level: level, Kind: models.Kind("/" + id)}
}

func pendingBuilding(id, name string, level, seconds int) models.Structure {
	s := building(id, name, level)
	s.Pending = &models.PendingBuild{SecondsRemaining: seconds}
	return s
}
