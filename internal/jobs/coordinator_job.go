package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
)

// CoordinatorJob schedules the fleet coordinator's periodic work: one
// matching pass over the pending order queue every second, plus a heartbeat
// log line every five seconds summarizing the world state.
type CoordinatorJob struct {
	processOrders commands.ProcessOrdersCommandHandler
	fleetSnapshot queries.GetFleetSnapshotQueryHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewCoordinatorJob creates the coordinator scheduling job.
func NewCoordinatorJob(
	processOrders commands.ProcessOrdersCommandHandler,
	fleetSnapshot queries.GetFleetSnapshotQueryHandler,
	logger *slog.Logger,
) *CoordinatorJob {
	return &CoordinatorJob{
		processOrders: processOrders,
		fleetSnapshot: fleetSnapshot,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "coordinator_job"),
	}
}

// Start begins the matching pass (every second) and the heartbeat (every
// five seconds).
func (j *CoordinatorJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", j.matchTick); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("*/5 * * * * *", j.heartbeat); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Coordinator started (matching every second)")
	return nil
}

// Stop stops the coordinator job.
func (j *CoordinatorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Coordinator stopped")
}

func (j *CoordinatorJob) matchTick() {
	ctx := context.Background()
	if err := j.processOrders.Handle(ctx, commands.NewProcessOrdersCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Matching pass failed", "error", err)
	}
}

func (j *CoordinatorJob) heartbeat() {
	ctx := context.Background()
	snapshot, err := j.fleetSnapshot.Handle(ctx, queries.NewGetFleetSnapshotQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Heartbeat snapshot failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Fleet heartbeat",
		"pending_orders", snapshot.PendingOrders,
		"robots_busy", snapshot.RobotsBusy,
		"robots_total", len(snapshot.Robots),
		"locked_stations", snapshot.LockedStations,
	)
}
