package lacuna

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// BuildingURLs lists every building endpoint the game serves. A building's
// url on get_buildings is its kind.
var BuildingURLs = []string{
	// ministries and command
	"/archaeology", "/capitol", "/development", "/embassy", "/intelligence",
	"/miningministry", "/missioncommand", "/oversight", "/planetarycommand",
	"/security", "/stationcommand", "/parliament", "/policestation",
	"/warehouse", "/artmuseum", "/culinaryinstitute", "/ibs", "/operahouse",

	// spies
	"/espionage", "/inteltraining", "/mayhemtraining", "/politicstraining", "/thefttraining",

	// ships and labs
	"/cloakinglab", "/gasgiantlab", "/geneticslab", "/munitionslab", "/observatory",
	"/pilottraining", "/propulsion", "/shipyard", "/spaceport", "/terraforming",
	"/trade", "/transporter", "/university", "/ssla", "/sslb", "/sslc", "/ssld",
	"/mercenariesguild", "/distributioncenter", "/subspacesupplydepot",

	// defence and happiness
	"/saw", "/entertainment", "/luxuryhousing", "/network19", "/park", "/themepark",

	// storage
	"/energyreserve", "/foodreserve", "/orestorage", "/waterstorage", "/stockpile",

	// energy
	"/fission", "/fusion", "/geo", "/hydrocarbon", "/singularity", "/wasteenergy",

	// food
	"/algae", "/apple", "/bean", "/beeldeban", "/bread", "/burger", "/cheese",
	"/chip", "/cider", "/corn", "/cornmeal", "/dairy", "/denton", "/lapis",
	"/malcud", "/pancake", "/pie", "/potato", "/shake", "/soup", "/syrup", "/wheat",

	// ore and water
	"/mine", "/orerefinery", "/miningplatform", "/gasgiantplatform", "/terraformingplatform",
	"/waterproduction", "/waterpurification", "/waterreclamation",

	// waste
	"/wastedigester", "/wasteexchanger", "/wasterecycling", "/wastesequestration", "/wastetreatment",

	// glyph and special buildings
	"/lcota", "/lcotb", "/lcotc", "/lcotd", "/lcote", "/lcotf", "/lcotg", "/lcoth", "/lcoti",
	"/algaepond", "/amalgusmeadow", "/atmosphericevaporator", "/beeldebannest",
	"/blackholegenerator", "/citadelofknope", "/crashedshipsite", "/dentonbrambles",
	"/essentiavein", "/geothermalvent", "/gratchsgauntlet", "/hallsofvrbansk",
	"/interdimensionalrift", "/kalavianruins", "/kasternskeep", "/lapisforest",
	"/libraryofjith", "/malcudfield", "/massadshenge", "/naturalspring",
	"/oracleofanid", "/pantheonofhagness", "/templeofthedrajilites",
	"/thedillonforge", "/volcano", "/deployedbleeder", "/supplypod",
	"/greatballofjunk", "/junkhengesculpture", "/metaljunkarches",
	"/pyramidjunksculpture", "/spacejunkpark",

	// decor
	"/beach1", "/beach2", "/beach3", "/beach4", "/beach5", "/beach6", "/beach7",
	"/beach8", "/beach9", "/beach10", "/beach11", "/beach12", "/beach13",
	"/crater", "/grove", "/lagoon", "/lake", "/ravine", "/rockyoutcrop", "/sand",
}

// endpoint upgrades buildings served by one module
type endpoint struct {
	client *Client
	module string
}

type upgradeResult struct {
	Building *struct {
		ID           string            `json:"id"`
		Level        flexInt           `json:"level"`
		PendingBuild *pendingBuildJSON `json:"pending_build"`
	} `json:"building"`
}

// Upgrade queues the next level of a building
func (e *endpoint) Upgrade(ctx context.Context, structureID string) (models.PendingBuild, error) {
	session, err := e.client.session()
	if err != nil {
		return models.PendingBuild{}, err
	}

	var res upgradeResult
	if err := e.client.Call(ctx, e.module, "upgrade", []any{session, structureID}, &res); err != nil {
		return models.PendingBuild{}, err
	}

	if res.Building == nil || res.Building.PendingBuild == nil {
		return models.PendingBuild{}, fmt.Errorf("%s/upgrade %s: response has no pending build", e.module, structureID)
	}

	e.client.logger.Debug("upgrade accepted",
		zap.String("module", e.module),
		zap.String("building_id", res.Building.ID),
		zap.Int("level", int(res.Building.Level)),
		zap.Int("seconds", int(res.Building.PendingBuild.SecondsRemaining)))

	return models.PendingBuild{SecondsRemaining: int(res.Building.PendingBuild.SecondsRemaining)}, nil
}

// Registry maps building kinds to their upgrade endpoints. It is built once
// and read-only afterwards.
type Registry struct {
	handlers map[models.Kind]models.Upgradeable
}

// NewRegistry registers an endpoint for every known building url
func NewRegistry(client *Client) *Registry {
	return NewRegistryFor(client, BuildingURLs)
}

// NewRegistryFor registers endpoints for the given building urls only
func NewRegistryFor(client *Client, urls []string) *Registry {
	r := &Registry{handlers: make(map[models.Kind]models.Upgradeable, len(urls))}
	for _, url := range urls {
		r.handlers[models.Kind(url)] = &endpoint{
			client: client,
			module: strings.TrimPrefix(url, "/"),
		}
	}
	return r
}

// Lookup returns the upgrade handler for kind
func (r *Registry) Lookup(kind models.Kind) (models.Upgradeable, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Len returns the number of registered kinds
func (r *Registry) Len() int {
	return len(r.handlers)
}
