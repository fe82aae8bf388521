package models

import "fmt"

// UpgradeRule brings every building called Name up to Level
type UpgradeRule struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// PriorityTable is the ordered list of rules applied to every colony.
// Position in the table is the only priority signal.
type PriorityTable []UpgradeRule

// Names returns the building names in priority order
func (p PriorityTable) Names() []string {
	names := make([]string, len(p))
	for i, r := range p {
		names[i] = r.Name
	}
	return names
}

// Validate checks that every rule names a building once with a positive level
func (p PriorityTable) Validate() error {
	if len(p) == 0 {
		return &ConfigError{Field: "priorities", Reason: "table is empty"}
	}

	seen := make(map[string]bool, len(p))
	for i, r := range p {
		if r.Name == "" {
			return &ConfigError{Field: "priorities", Reason: fmt.Sprintf("rule %d has no name", i+1)}
		}
		if r.Level <= 0 {
			return &ConfigError{Field: "priorities", Reason: fmt.Sprintf("rule %q has non-positive level %d", r.Name, r.Level)}
		}
		if seen[r.Name] {
			return &ConfigError{Field: "priorities", Reason: fmt.Sprintf("rule %q appears twice", r.Name)}
		}
		seen[r.Name] = true
	}

	return nil
}

// DefaultPriorities returns the built-in upgrade order
func DefaultPriorities() PriorityTable {
	return PriorityTable{
		// Essentials
		{Name: "Oversight Ministry", Level: 30},
		{Name: "Archaeology Ministry", Level: 30},
		{Name: "Development Ministry", Level: 30},

		// Tyleon
		{Name: "Lost City of Tyleon (A)", Level: 30},
		{Name: "Lost City of Tyleon (B)", Level: 30},
		{Name: "Lost City of Tyleon (C)", Level: 30},
		{Name: "Lost City of Tyleon (D)", Level: 30},
		{Name: "Lost City of Tyleon (E)", Level: 30},
		{Name: "Lost City of Tyleon (F)", Level: 30},
		{Name: "Lost City of Tyleon (G)", Level: 30},
		{Name: "Lost City of Tyleon (H)", Level: 30},
		{Name: "Lost City of Tyleon (I)", Level: 30},

		// Spies
		{Name: "Intelligence Ministry", Level: 30},
		{Name: "Security Ministry", Level: 30},
		{Name: "Espionage Ministry", Level: 30},
		{Name: "Intel Training", Level: 30},
		{Name: "Mayhem Training", Level: 30},
		{Name: "Politics Training", Level: 30},
		{Name: "Theft Training", Level: 30},

		// Space Station Lab
		{Name: "Space Station Lab (A)", Level: 20},
		{Name: "Space Station Lab (B)", Level: 20},
		{Name: "Space Station Lab (C)", Level: 20},
		{Name: "Space Station Lab (D)", Level: 20},

		// Ships
		{Name: "Shipyard", Level: 30},
		{Name: "Trade Ministry", Level: 30},
		{Name: "Propulsion System Factory", Level: 30},
		{Name: "Cloaking Lab", Level: 30},
		{Name: "Observatory", Level: 30},
		{Name: "Terraforming Lab", Level: 30},
		{Name: "Gas Giant Lab", Level: 30},
		{Name: "Pilot Training Facility", Level: 30},
		{Name: "Munitions Lab", Level: 30},
		{Name: "Embassy", Level: 30},
		{Name: "Planetary Command Center", Level: 30},
		{Name: "Waste Sequestration Well", Level: 30},

		// Everything else
		{Name: "Shield Against Weapons", Level: 30},
		{Name: "Mission Command", Level: 30},
		{Name: "Entertainment District", Level: 30},
		{Name: "Subspace Transporter", Level: 30},
		{Name: "Food Reserve", Level: 30},
		{Name: "Ore Storage Tanks", Level: 30},
		{Name: "Water Storage Tank", Level: 30},
		{Name: "Energy Reserve", Level: 30},
		{Name: "Space Port", Level: 28},
	}
}
