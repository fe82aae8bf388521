package models

import "context"

// Kind identifies the category of a building and selects the upgrade
// handler for it (the building's URL on the remote service, e.g. "/spaceport").
type Kind string

// ColonyRef is a colony as listed by the empire, before its buildings are fetched
type ColonyRef struct {
	ID   string
	Name string
}

// Colony is one colony with its buildings in fetch order
type Colony struct {
	ID         string
	Name       string
	Structures []Structure
}

// Ref returns the colony's identity without its buildings
func (c Colony) Ref() ColonyRef {
	return ColonyRef{ID: c.ID, Name: c.Name}
}

// PendingBuild is an in-progress level-up
type PendingBuild struct {
	SecondsRemaining int
}

// Structure is a leveled building located in a colony
type Structure struct {
	ID      string
	Name    string
	Level   int
	Kind    Kind
	Pending *PendingBuild
}

// IsPending reports whether the building is currently being upgraded
func (s Structure) IsPending() bool {
	return s.Pending != nil
}

// Upgradeable is implemented by anything able to enqueue a level-up for a
// building of a given kind.
type Upgradeable interface {
	Upgrade(ctx context.Context, structureID string) (PendingBuild, error)
}
