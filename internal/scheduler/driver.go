package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// Empire lists colonies and their buildings
type Empire interface {
	Colonies(ctx context.Context) ([]models.ColonyRef, error)
	Structures(ctx context.Context, colonyID string) ([]models.Structure, error)
}

// Driver runs the scheduler over every colony of an empire, one at a time
type Driver struct {
	empire    Empire
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewDriver creates a run driver
func NewDriver(empire Empire, scheduler *Scheduler, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		empire:    empire,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Run processes every colony in listed order. An abort or failure in one
// colony never stops the others. Run returns an error when the options are
// invalid, the colonies cannot be listed or ctx is cancelled; in the last case
// the results gathered so far are returned with it.
func (d *Driver) Run(ctx context.Context, cfg models.RunConfig) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	colonies, err := d.empire.Colonies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", err)
	}

	d.logger.Info("starting upgrade run",
		zap.Int("colonies", len(colonies)),
		zap.Bool("dry_run", cfg.DryRun),
		zap.Int("max_time", cfg.MaxTime))

	results := make([]Result, 0, len(colonies))
	for _, ref := range colonies {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := d.runColony(ctx, ref, cfg)
		results = append(results, result)
		if result.Reason == ReasonCancelled {
			d.logger.Warn("run cancelled", zap.Int("colonies_done", len(results)))
			return results, result.Err
		}
	}

	return results, nil
}

func (d *Driver) runColony(ctx context.Context, ref models.ColonyRef, cfg models.RunConfig) Result {
	if cfg.Skip != "" && ref.Name == cfg.Skip {
		d.logger.Info("skipping colony according to command line option", zap.String("colony", ref.Name))
		return Result{Colony: ref, Outcome: OutcomeSkipped}
	}

	structures, err := d.empire.Structures(ctx, ref.ID)
	if err != nil && cancelled(ctx, err) {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return Result{Colony: ref, Outcome: OutcomeAborted, Reason: ReasonCancelled, Err: err}
	}
	if err != nil {
		d.logger.Error("failed to fetch buildings",
			zap.String("colony", ref.Name),
			zap.String("colony_id", ref.ID),
			zap.Error(err))
		return Result{Colony: ref, Outcome: OutcomeFailed, Err: err}
	}

	colony := models.Colony{ID: ref.ID, Name: ref.Name, Structures: structures}
	result := d.scheduler.Process(ctx, colony, cfg)

	d.logger.Info("colony done",
		zap.String("colony", ref.Name),
		zap.Stringer("outcome", result.Outcome),
		zap.String("reason", string(result.Reason)),
		zap.Int("queued", result.Queued()),
		zap.Int("queue_time", result.QueueTime))

	return result
}
