package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shelf"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

// replenishmentDelay is the simulated lead time between detecting low stock
// and the refill landing.
const replenishmentDelay = 2 * time.Second

// ShelfEngineJob drives one shelf's reservation engine. It publishes the
// shelf's sensor status on the raw hierarchy at a configurable cadence,
// consumes dispatch intents addressed to the shelf, and watches normalized
// robot status reports for physical picks at its location. Low stock
// triggers a delayed refill, simulating a replenishment crew; status
// publication pauses until the refill lands.
type ShelfEngineJob struct {
	shelf       *shelf.Shelf
	bus         ports.MessageBus
	group       string
	updateEvery int
	cron        *cron.Cron
	logger      *slog.Logger

	mu       sync.Mutex
	refillAt time.Time
}

// NewShelfEngineJob creates a job driving one shelf aggregate, publishing
// status every updateSeconds seconds (floored at one).
func NewShelfEngineJob(s *shelf.Shelf, bus ports.MessageBus, group string, updateSeconds int, logger *slog.Logger) *ShelfEngineJob {
	if updateSeconds < 1 {
		updateSeconds = 1
	}
	return &ShelfEngineJob{
		shelf:       s,
		bus:         bus,
		group:       group,
		updateEvery: updateSeconds,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "shelf_engine_job", "shelf_id", s.ID().String()),
	}
}

// Start subscribes to the dispatch topic and the normalized robot status
// hierarchy, then begins the publish schedule.
func (j *ShelfEngineJob) Start() error {
	ctx := context.Background()

	if err := j.bus.Subscribe(ctx, wire.DispatchTopic(j.group), j.handleDispatch); err != nil {
		return err
	}
	if err := j.bus.Subscribe(ctx, wire.InternalRobotStatusFilter(j.group), j.handleRobotStatus); err != nil {
		return err
	}

	schedule := fmt.Sprintf("*/%d * * * * *", j.updateEvery)
	if _, err := j.cron.AddFunc(schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Shelf engine started", "update_seconds", j.updateEvery)
	return nil
}

// Stop stops the shelf engine job.
func (j *ShelfEngineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shelf engine stopped")
}

func (j *ShelfEngineJob) tick() {
	j.mu.Lock()
	if j.shelf.LowStock() && j.refillAt.IsZero() {
		j.refillAt = time.Now().Add(replenishmentDelay)
		j.logger.Warn("low stock, replenishment scheduled",
			"stock", j.shelf.Stock(), "nominal", j.shelf.NominalStock())
	}
	if !j.refillAt.IsZero() {
		if time.Now().Before(j.refillAt) {
			// Publication stays paused until the replenishment lands.
			j.mu.Unlock()
			return
		}
		j.shelf.Refill()
		j.refillAt = time.Time{}
		j.logger.Info("replenishment complete", "stock", j.shelf.Stock())
	}
	status := j.shelf.Status()
	j.mu.Unlock()

	j.publishStatus(status)
}

func (j *ShelfEngineJob) publishStatus(status wire.ShelfStatus) {
	payload, err := json.Marshal(status)
	if err != nil {
		j.logger.Error("failed to encode status", "error", err)
		return
	}

	topic := wire.ShelfStatusTopic(j.group, j.shelf.Zone(), j.shelf.ID().String())
	if err := j.bus.Publish(context.Background(), topic, payload); err != nil {
		j.logger.Error("failed to publish status", "error", err)
	}
}

// handleDispatch applies dispatch intents addressed to this shelf: RESTOCK
// adds stock immediately, EXECUTE_TASK reserves quantity for the robot's
// arrival. A restock is answered with an immediate status publish so the
// coordinator's mirror converges without waiting for the next tick.
func (j *ShelfEngineJob) handleDispatch(_ string, payload []byte) {
	var msg wire.DispatchMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		j.logger.Warn("dropping malformed dispatch message", "error", err)
		return
	}

	if msg.TargetShelfID != j.shelf.ID().String() {
		return
	}

	j.mu.Lock()
	restocked := j.shelf.ApplyDispatch(msg)
	status := j.shelf.Status()
	j.mu.Unlock()

	if restocked {
		j.logger.Info("restocked", "quantity", msg.Quantity, "stock", status.Stock)
		j.publishStatus(status)
	} else if msg.Command == wire.CommandExecuteTask {
		j.logger.Info("reservation added", "robot_id", msg.RobotID, "quantity", msg.Quantity)
	}
}

// handleRobotStatus watches for robots physically picking at this shelf and
// for stalls that void a reservation.
func (j *ShelfEngineJob) handleRobotStatus(_ string, payload []byte) {
	var status wire.RobotStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return
	}

	j.mu.Lock()
	deducted := j.shelf.ApplyRobotStatus(kernel.RobotID(status.RobotID), status.Status, status.LocationID)
	stock := j.shelf.Stock()
	j.mu.Unlock()

	if deducted {
		j.logger.Info("pick confirmed, stock deducted", "robot_id", status.RobotID, "stock", stock)
	}
}
