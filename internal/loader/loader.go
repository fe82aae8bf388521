package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// ruleYAML represents one entry of a priorities file
type ruleYAML struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// prioritiesYAML accepts either a bare list of rules or a document with
// an "upgrades" key holding the list.
type prioritiesYAML struct {
	Upgrades []ruleYAML `yaml:"upgrades"`
}

// LoadPriorities loads a priority table from a YAML file. An empty path
// returns the built-in table.
func LoadPriorities(path string) (models.PriorityTable, error) {
	if path == "" {
		return models.DefaultPriorities(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	table, err := ParsePriorities(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return table, nil
}

// ParsePriorities decodes and validates a YAML priority table
func ParsePriorities(data []byte) (models.PriorityTable, error) {
	var rules []ruleYAML

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
		var doc prioritiesYAML
		if err := node.Content[0].Decode(&doc); err != nil {
			return nil, err
		}
		rules = doc.Upgrades
	} else if len(node.Content) > 0 {
		if err := node.Content[0].Decode(&rules); err != nil {
			return nil, err
		}
	}

	table := make(models.PriorityTable, 0, len(rules))
	for _, r := range rules {
		table = append(table, models.UpgradeRule{Name: r.Name, Level: r.Level})
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}
