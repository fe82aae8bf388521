// Package scheduler decides which buildings to upgrade in each colony,
// following a fixed priority table under a per-colony build queue budget.
package scheduler

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// Registry resolves the upgrade handler for a building kind
type Registry interface {
	Lookup(kind models.Kind) (models.Upgradeable, bool)
}

// Scheduler runs the upgrade state machine over one colony at a time.
// It keeps no state between colonies.
type Scheduler struct {
	priorities models.PriorityTable
	registry   Registry
	logger     *zap.Logger
}

// NewScheduler creates a scheduler for the given priority table
func NewScheduler(priorities models.PriorityTable, registry Registry, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		priorities: priorities,
		registry:   registry,
		logger:     logger,
	}
}

// Process walks the priority table over the colony's buildings and enqueues
// upgrades until every rule is exhausted (completed) or the queue budget, the
// service's queue limit or ctx stops it (aborted).
func (s *Scheduler) Process(ctx context.Context, colony models.Colony, cfg models.RunConfig) Result {
	log := s.logger.With(zap.String("colony", colony.Name), zap.String("colony_id", colony.ID))

	queueTime := QueueTime(colony.Structures)
	log.Info("looking for buildings to upgrade",
		zap.Int("queue_time", queueTime),
		zap.Int("max_time", cfg.MaxTime),
		zap.Bool("dry_run", cfg.DryRun))

	result := Result{Colony: colony.Ref()}

	for _, rule := range s.priorities {
		for _, building := range matching(colony.Structures, rule.Name) {
			if building.Level >= rule.Level || building.IsPending() {
				continue
			}

			if err := ctx.Err(); err != nil {
				log.Warn("run cancelled, leaving colony", zap.Error(err))
				result.Err = err
				return result.finish(OutcomeAborted, ReasonCancelled, queueTime)
			}

			if !cfg.DryRun && queueTime >= cfg.MaxTime {
				log.Info("build queue full enough",
					zap.Int("queue_time", queueTime),
					zap.Int("max_time", cfg.MaxTime))
				return result.finish(OutcomeAborted, ReasonBudget, queueTime)
			}

			decision := Decision{
				Rule:        rule,
				StructureID: building.ID,
				Name:        building.Name,
				FromLevel:   building.Level,
				ToLevel:     building.Level + 1,
			}

			log.Info("upgrading building",
				zap.String("building", building.Name),
				zap.String("building_id", building.ID),
				zap.Int("to_level", decision.ToLevel))

			if cfg.DryRun {
				decision.Status = StatusPlanned
				result.Decisions = append(result.Decisions, decision)
				continue
			}

			pending, err := s.upgrade(ctx, building)
			if err == nil {
				queueTime += pending.SecondsRemaining
				decision.Status = StatusQueued
				decision.Seconds = pending.SecondsRemaining
				result.Decisions = append(result.Decisions, decision)
				log.Debug("upgrade queued",
					zap.String("building", building.Name),
					zap.Int("seconds", pending.SecondsRemaining),
					zap.Int("queue_time", queueTime))
				continue
			}

			decision.Status = StatusFailed
			decision.Err = err
			result.Decisions = append(result.Decisions, decision)

			if cancelled(ctx, err) {
				log.Warn("run cancelled, leaving colony",
					zap.String("building", building.Name),
					zap.Error(err))
				result.Err = err
				if ctx.Err() != nil {
					result.Err = ctx.Err()
				}
				return result.finish(OutcomeAborted, ReasonCancelled, queueTime)
			}

			if errors.Is(err, ErrQueueFull) {
				log.Info("build queue has no room left, moving to next colony",
					zap.String("building", building.Name))
				return result.finish(OutcomeAborted, ReasonQueueFull, queueTime)
			}

			log.Error("unrecognized remote error",
				zap.String("building", building.Name),
				zap.String("building_id", building.ID),
				zap.String("kind", string(building.Kind)),
				zap.Error(err))
		}
	}

	return result.finish(OutcomeCompleted, ReasonNone, queueTime)
}

func (s *Scheduler) upgrade(ctx context.Context, building models.Structure) (models.PendingBuild, error) {
	handler, ok := s.registry.Lookup(building.Kind)
	if !ok {
		return models.PendingBuild{}, &UnknownKindError{Kind: building.Kind}
	}
	return handler.Upgrade(ctx, building.ID)
}

// cancelled reports whether err came from the run being stopped rather than
// from the service
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (r Result) finish(outcome Outcome, reason AbortReason, queueTime int) Result {
	r.Outcome = outcome
	r.Reason = reason
	r.QueueTime = queueTime
	return r
}

// matching returns the buildings called name, lowest level first. Equal
// levels keep their fetch order.
func matching(structures []models.Structure, name string) []models.Structure {
	var out []models.Structure
	for _, s := range structures {
		if s.Name == name {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}
