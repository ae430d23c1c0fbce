package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"warehouse/internal/core/domain/model/robot"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

// RobotAgentJob drives one simulated robot: a cron tick every second
// advances the aggregate's state machine and publishes its status on the
// raw hierarchy, while a bus subscription feeds it binary commands. The
// job's mutex serializes ticks against command handling, the aggregate
// itself is not concurrency-safe.
type RobotAgentJob struct {
	robot  *robot.Robot
	bus    ports.MessageBus
	group  string
	cron   *cron.Cron
	logger *slog.Logger

	mu sync.Mutex
}

// NewRobotAgentJob creates a job driving one robot aggregate.
func NewRobotAgentJob(r *robot.Robot, bus ports.MessageBus, group string, logger *slog.Logger) *RobotAgentJob {
	return &RobotAgentJob{
		robot:  r,
		bus:    bus,
		group:  group,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "robot_agent_job", "robot_id", r.ID().String()),
	}
}

// Start subscribes to the robot's command topic and begins ticking every
// second.
func (j *RobotAgentJob) Start() error {
	ctx := context.Background()

	commandTopic := wire.RobotCommandTopic(j.group, j.robot.ID().String())
	if err := j.bus.Subscribe(ctx, commandTopic, j.handleCommand); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc("* * * * * *", j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Robot agent started (ticking every second)")
	return nil
}

// Stop stops the robot agent job.
func (j *RobotAgentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Robot agent stopped")
}

func (j *RobotAgentJob) tick() {
	j.mu.Lock()
	stalled := j.robot.Tick()
	status := wire.RobotStatus{
		RobotID:    j.robot.ID().String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		LocationID: j.robot.Location(),
		Battery:    j.robot.BatteryPercent(),
		Status:     j.robot.ReportedStatus(),
	}
	j.mu.Unlock()

	if stalled {
		j.logger.Warn("robot stalled", "location", status.LocationID)
	}

	payload, err := json.Marshal(status)
	if err != nil {
		j.logger.Error("failed to encode status", "error", err)
		return
	}

	topic := wire.RobotStatusTopic(j.group, status.RobotID)
	if err := j.bus.Publish(context.Background(), topic, payload); err != nil {
		j.logger.Error("failed to publish status", "error", err)
	}
}

// handleCommand decodes a binary command frame. Malformed frames and
// unknown opcodes are dropped, a robot never crashes on bad input.
func (j *RobotAgentJob) handleCommand(_ string, payload []byte) {
	cmd, err := wire.DecodeCommand(payload)
	if err != nil {
		j.logger.Warn("dropping malformed command frame", "bytes", len(payload), "error", err)
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	switch cmd.Op {
	case wire.OpExecuteTask:
		accepted := j.robot.ExecuteTask(int(cmd.Shelf), int(cmd.Station))
		if accepted {
			j.logger.Info("task accepted", "shelf", cmd.Shelf, "station", cmd.Station)
		} else {
			j.logger.Warn("task dropped",
				"shelf", cmd.Shelf, "station", cmd.Station,
				"status", j.robot.ReportedStatus(), "battery", j.robot.BatteryPercent())
		}
	case wire.OpForceCharge:
		j.robot.ForceCharge()
		j.logger.Info("force charge accepted")
	default:
		j.logger.Warn("ignoring unknown opcode", "op", cmd.Op)
	}
}
