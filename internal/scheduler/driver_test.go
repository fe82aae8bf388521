package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

func newTestDriver(t *testing.T, empire *fakeEmpire, registry *fakeRegistry) *Driver {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewDriver(empire, NewScheduler(testPriorities, registry, logger), logger)
}

func twoColonies() *fakeEmpire {
	return &fakeEmpire{
		colonies: []models.ColonyRef{
			{ID: "1", Name: "Ruby"},
			{ID: "2", Name: "Emerald"},
		},
		structures: map[string][]models.Structure{
			"1": {building("a1", "Embassy", 1), building("a2", "Shipyard", 1)},
			"2": {building("b1", "Embassy", 1)},
		},
		fetchErrs: map[string]error{},
	}
}

func TestRunProcessesEveryColonyInOrder(t *testing.T) {
	empire := twoColonies()
	registry := newFakeRegistry()
	d := newTestDriver(t, empire, registry)

	results, err := d.Run(context.Background(), models.DefaultRunConfig())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Ruby", results[0].Colony.Name)
	assert.Equal(t, "Emerald", results[1].Colony.Name)
	assert.Equal(t, []string{"1", "2"}, empire.fetchedIDs)
	assert.Equal(t, []string{"a1", "a2", "b1"}, registry.calls())
}

func TestRunSkipsNamedColony(t *testing.T) {
	empire := twoColonies()
	registry := newFakeRegistry()
	d := newTestDriver(t, empire, registry)

	cfg := models.DefaultRunConfig()
	cfg.Skip = "Ruby"
	results, err := d.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	assert.Equal(t, []string{"2"}, empire.fetchedIDs, "skipped colony must not be fetched")
	assert.Equal(t, []string{"b1"}, registry.calls(), "skipped colony must not be upgraded")
}

func TestRunSkipNeedsExactName(t *testing.T) {
	empire := twoColonies()
	d := newTestDriver(t, empire, newFakeRegistry())

	cfg := models.DefaultRunConfig()
	cfg.Skip = "ruby"
	results, err := d.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, results[0].Outcome)
	assert.Equal(t, []string{"1", "2"}, empire.fetchedIDs)
}

func TestRunQueueFullOnlyStopsThatColony(t *testing.T) {
	empire := twoColonies()
	registry := newFakeRegistry()
	registry.upgrader.errs["a1"] = errQueueFullRemote
	d := newTestDriver(t, empire, registry)

	results, err := d.Run(context.Background(), models.DefaultRunConfig())
	require.NoError(t, err)

	assert.Equal(t, OutcomeAborted, results[0].Outcome)
	assert.Equal(t, ReasonQueueFull, results[0].Reason)
	assert.Equal(t, OutcomeCompleted, results[1].Outcome)
	assert.Equal(t, []string{"a1", "b1"}, registry.calls())
}

func TestRunFetchFailureMovesOn(t *testing.T) {
	empire := twoColonies()
	empire.fetchErrs["1"] = errBoom
	registry := newFakeRegistry()
	d := newTestDriver(t, empire, registry)

	results, err := d.Run(context.Background(), models.DefaultRunConfig())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, results[0].Outcome)
	assert.ErrorIs(t, results[0].Err, errBoom)
	assert.Equal(t, OutcomeCompleted, results[1].Outcome)
	assert.Equal(t, []string{"b1"}, registry.calls())
}

func TestRunRejectsInvalidConfigBeforeAnyCall(t *testing.T) {
	empire := twoColonies()
	d := newTestDriver(t, empire, newFakeRegistry())

	_, err := d.Run(context.Background(), models.RunConfig{MaxTime: -5})

	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Zero(t, empire.listRequests)
	assert.Empty(t, empire.fetchedIDs)
}

func TestRunListFailure(t *testing.T) {
	empire := twoColonies()
	empire.listErr = errBoom
	d := newTestDriver(t, empire, newFakeRegistry())

	results, err := d.Run(context.Background(), models.DefaultRunConfig())

	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, results)
	assert.Empty(t, empire.fetchedIDs)
}

func TestRunDryRunIssuesNoUpgrades(t *testing.T) {
	empire := twoColonies()
	registry := newFakeRegistry()
	d := newTestDriver(t, empire, registry)

	cfg := models.DefaultRunConfig()
	cfg.DryRun = true
	results, err := d.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Empty(t, registry.calls())
	assert.Len(t, results[0].Decisions, 2)
	assert.Len(t, results[1].Decisions, 1)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	empire := twoColonies()
	registry := newFakeRegistry()
	registry.upgrader.onCall = cancel
	d := newTestDriver(t, empire, registry)

	results, err := d.Run(ctx, models.DefaultRunConfig())

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeAborted, results[0].Outcome)
	assert.Equal(t, ReasonCancelled, results[0].Reason)
	assert.Equal(t, []string{"1"}, empire.fetchedIDs, "no colony is fetched after cancellation")
	assert.Equal(t, []string{"a1"}, registry.calls())
}
