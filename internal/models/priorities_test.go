package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrioritiesValid(t *testing.T) {
	table := DefaultPriorities()

	require.NoError(t, table.Validate())
	assert.Equal(t, "Oversight Ministry", table[0].Name)
	assert.Equal(t, UpgradeRule{Name: "Space Port", Level: 28}, table[len(table)-1])
}

func TestDefaultPrioritiesSpaceStationLabs(t *testing.T) {
	for _, r := range DefaultPriorities() {
		switch r.Name {
		case "Space Station Lab (A)", "Space Station Lab (B)", "Space Station Lab (C)", "Space Station Lab (D)":
			assert.Equal(t, 20, r.Level, r.Name)
		}
	}
}

func TestPriorityTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   PriorityTable
		wantErr bool
	}{
		{"empty", PriorityTable{}, true},
		{"missing name", PriorityTable{{Name: "", Level: 3}}, true},
		{"zero level", PriorityTable{{Name: "Embassy", Level: 0}}, true},
		{"duplicate", PriorityTable{{Name: "Embassy", Level: 3}, {Name: "Embassy", Level: 5}}, true},
		{"ok", PriorityTable{{Name: "Embassy", Level: 3}, {Name: "Shipyard", Level: 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestPriorityTableNames(t *testing.T) {
	table := PriorityTable{{Name: "Embassy", Level: 3}, {Name: "Shipyard", Level: 5}}
	assert.Equal(t, []string{"Embassy", "Shipyard"}, table.Names())
}

func TestRunConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultRunConfig().Validate())
	assert.Equal(t, 172800, DefaultRunConfig().MaxTime)

	for _, maxTime := range []int{0, -1} {
		err := RunConfig{MaxTime: maxTime}.Validate()
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr, "max time %d", maxTime)
		assert.Equal(t, "max-time", cfgErr.Field)
	}
}

func TestStructureIsPending(t *testing.T) {
	idle := Structure{Name: "Embassy", Level: 3}
	busy := Structure{Name: "Embassy", Level: 3, Pending: &PendingBuild{SecondsRemaining: 10}}

	assert.False(t, idle.IsPending())
	assert.True(t, busy.IsPending())
}
