// Package gateway bridges the raw device hierarchy and the internal one.
// Robots and shelf sensors publish raw telemetry under warehouse/{group}/...;
// the gateway normalizes it, republishes it on the internal hierarchy the
// coordinator consumes, archives every sample, and translates coordinator
// dispatch intents into the 3-byte binary command frames robots execute.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/wire"
)

// kgPerUnit is the conversion factor applied to shelf stock reported in
// discrete units. Downstream consumers always see kilograms; the original
// reading travels alongside.
const kgPerUnit = 23.0

const (
	assetTypeRobot = "amr"
	assetTypeShelf = "static"
)

// Gateway normalizes raw telemetry and encodes robot commands.
type Gateway struct {
	bus    ports.MessageBus
	store  ports.TelemetryStore
	group  string
	logger *slog.Logger
}

// NewGateway creates a gateway for one deployment group.
func NewGateway(bus ports.MessageBus, store ports.TelemetryStore, group string, logger *slog.Logger) (*Gateway, error) {
	if bus == nil {
		return nil, errs.NewValueIsRequiredError("bus")
	}
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if group == "" {
		return nil, errs.NewValueIsRequiredError("group")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		bus:    bus,
		store:  store,
		group:  group,
		logger: logger.With("component", "gateway"),
	}, nil
}

// Start subscribes the gateway to the raw telemetry hierarchy and the
// dispatch topic.
func (g *Gateway) Start(ctx context.Context) error {
	if err := g.bus.Subscribe(ctx, wire.RawTelemetryFilter(g.group), g.handleRawTelemetry); err != nil {
		return err
	}
	return g.bus.Subscribe(ctx, wire.DispatchTopic(g.group), g.handleDispatch)
}

// handleRawTelemetry routes one raw message by its topic shape:
// warehouse/{g}/amr/{id}/status or warehouse/{g}/locations/{zone}/{id}/status.
// Command topics also live under the raw hierarchy and are skipped, the
// gateway itself publishes there.
func (g *Gateway) handleRawTelemetry(topic string, payload []byte) {
	if strings.HasSuffix(topic, "/command") {
		return
	}

	levels := strings.Split(topic, "/")
	switch {
	case len(levels) == 5 && levels[2] == "amr" && levels[4] == "status":
		g.relayRobotStatus(levels[3], payload)
	case len(levels) == 6 && levels[2] == "locations" && levels[5] == "status":
		g.relayShelfStatus(payload)
	default:
		g.logger.Debug("ignoring raw message on unrecognized topic", "topic", topic)
	}
}

// relayRobotStatus forwards a robot report unchanged and archives it.
func (g *Gateway) relayRobotStatus(robotID string, payload []byte) {
	var status wire.RobotStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		g.logger.Warn("dropping malformed robot status", "robot_id", robotID, "error", err)
		return
	}

	ctx := context.Background()
	if err := g.bus.Publish(ctx, wire.InternalRobotStatusTopic(g.group, robotID), payload); err != nil {
		g.logger.Error("failed to relay robot status", "robot_id", robotID, "error", err)
		return
	}

	g.archive(ports.TelemetryRecord{
		ObservedAt: time.Now(),
		AssetID:    status.RobotID,
		AssetType:  assetTypeRobot,
		Location:   status.LocationID,
		Battery:    status.Battery,
		Status:     status.Status,
	})
}

// relayShelfStatus normalizes a shelf report to kilograms, keeping the
// original reading in original_stock/original_unit, then forwards and
// archives it.
func (g *Gateway) relayShelfStatus(payload []byte) {
	var status wire.ShelfStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		g.logger.Warn("dropping malformed shelf status", "error", err)
		return
	}

	if status.Unit == "units" {
		original := status.Stock
		status.OriginalStock = &original
		status.OriginalUnit = status.Unit
		status.Stock = original * kgPerUnit
		status.Unit = "kg"
	}

	normalized, err := json.Marshal(status)
	if err != nil {
		g.logger.Error("failed to encode shelf status", "asset_id", status.AssetID, "error", err)
		return
	}

	ctx := context.Background()
	if err := g.bus.Publish(ctx, wire.InternalShelfStatusTopic(g.group, status.AssetID), normalized); err != nil {
		g.logger.Error("failed to relay shelf status", "asset_id", status.AssetID, "error", err)
		return
	}

	g.archive(ports.TelemetryRecord{
		ObservedAt: time.Now(),
		AssetID:    status.AssetID,
		AssetType:  assetTypeShelf,
		ItemID:     status.ItemID,
		Stock:      status.Stock,
		Unit:       status.Unit,
	})
}

// handleDispatch encodes EXECUTE_TASK intents into binary command frames.
// RESTOCK intents target shelves and pass the gateway by.
func (g *Gateway) handleDispatch(_ string, payload []byte) {
	var msg wire.DispatchMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		g.logger.Warn("dropping malformed dispatch message", "error", err)
		return
	}

	if msg.Command != wire.CommandExecuteTask || msg.RobotID == "" {
		return
	}

	shelf := kernel.ExtractNumber(msg.TargetShelfID)
	station := kernel.ExtractNumber(msg.TargetStationID)
	if shelf <= 0 || station <= 0 {
		g.logger.Warn("dropping dispatch with unparseable targets",
			"robot_id", msg.RobotID, "shelf", msg.TargetShelfID, "station", msg.TargetStationID)
		return
	}

	g.publishCommand(msg.RobotID, wire.EncodeCommand(wire.OpExecuteTask, shelf, station))
}

// HandleOverride encodes a monitor override into a command frame. Only
// FORCE_CHARGE is supported.
func (g *Gateway) HandleOverride(override wire.Override) {
	if override.OverrideTask != wire.OverrideForceCharge {
		g.logger.Warn("ignoring unsupported override",
			"robot_id", override.RobotID, "override_task", override.OverrideTask)
		return
	}
	if override.RobotID == "" {
		g.logger.Warn("ignoring override without robot id")
		return
	}

	g.logger.Info("forwarding force charge override", "robot_id", override.RobotID, "level", override.Level)
	g.publishCommand(override.RobotID, wire.EncodeCommand(wire.OpForceCharge, 0, 0))
}

func (g *Gateway) publishCommand(robotID string, frame []byte) {
	topic := wire.RobotCommandTopic(g.group, robotID)
	if err := g.bus.PublishAcked(context.Background(), topic, frame); err != nil {
		g.logger.Error("failed to publish robot command", "robot_id", robotID, "error", err)
	}
}

func (g *Gateway) archive(record ports.TelemetryRecord) {
	if err := g.store.Append(context.Background(), record); err != nil {
		g.logger.Error("failed to archive telemetry sample", "asset_id", record.AssetID, "error", err)
	}
}
