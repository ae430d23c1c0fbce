package gateway_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/adapters/gateway"
	"warehouse/internal/adapters/out/inprocbus"
	"warehouse/internal/core/ports"
	"warehouse/internal/wire"
)

const group = "site-a"

// recordingStore captures archived telemetry samples.
type recordingStore struct {
	mu      sync.Mutex
	records []ports.TelemetryRecord
}

func (s *recordingStore) Append(_ context.Context, record ports.TelemetryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *recordingStore) all() []ports.TelemetryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.TelemetryRecord(nil), s.records...)
}

// collect subscribes to a filter and gathers payloads into a channel.
func collect(t *testing.T, bus *inprocbus.Bus, filter string) <-chan []byte {
	t.Helper()
	out := make(chan []byte, 16)
	require.NoError(t, bus.Subscribe(context.Background(), filter, func(_ string, payload []byte) {
		out <- payload
	}))
	return out
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func newStartedGateway(t *testing.T, bus *inprocbus.Bus, store ports.TelemetryStore) *gateway.Gateway {
	t.Helper()
	g, err := gateway.NewGateway(bus, store, group, nil)
	require.NoError(t, err)
	require.NoError(t, g.Start(context.Background()))
	return g
}

func TestGateway_RelaysRobotStatus(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	store := &recordingStore{}
	newStartedGateway(t, bus, store)

	internal := collect(t, bus, wire.InternalRobotStatusFilter(group))

	status := wire.RobotStatus{RobotID: "AMR-001", LocationID: "TRANSIT", Battery: 87, Status: "MOVING_TO_PICK"}
	payload, err := json.Marshal(status)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), wire.RobotStatusTopic(group, "AMR-001"), payload))

	var relayed wire.RobotStatus
	require.NoError(t, json.Unmarshal(receive(t, internal), &relayed))
	assert.Equal(t, status, relayed)

	require.Eventually(t, func() bool { return len(store.all()) == 1 }, time.Second, 10*time.Millisecond)
	record := store.all()[0]
	assert.Equal(t, "AMR-001", record.AssetID)
	assert.Equal(t, "amr", record.AssetType)
	assert.Equal(t, 87, record.Battery)
}

func TestGateway_NormalizesShelfStatusToKilograms(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	store := &recordingStore{}
	newStartedGateway(t, bus, store)

	internal := collect(t, bus, wire.InternalShelfStatusFilter(group))

	status := wire.ShelfStatus{AssetID: "shelf-2", Type: "shelf", ItemID: "item_B", Stock: 100, Unit: "units"}
	payload, err := json.Marshal(status)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(),
		wire.ShelfStatusTopic(group, "storage-a", "shelf-2"), payload))

	var relayed wire.ShelfStatus
	require.NoError(t, json.Unmarshal(receive(t, internal), &relayed))
	assert.Equal(t, 2300.0, relayed.Stock)
	assert.Equal(t, "kg", relayed.Unit)
	require.NotNil(t, relayed.OriginalStock)
	assert.Equal(t, 100.0, *relayed.OriginalStock)
	assert.Equal(t, "units", relayed.OriginalUnit)
}

func TestGateway_LeavesKilogramShelfStatusUntouched(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	newStartedGateway(t, bus, &recordingStore{})

	internal := collect(t, bus, wire.InternalShelfStatusFilter(group))

	status := wire.ShelfStatus{AssetID: "shelf-9", Type: "shelf", ItemID: "item_I", Stock: 150, Unit: "kg"}
	payload, err := json.Marshal(status)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(),
		wire.ShelfStatusTopic(group, "storage-b", "shelf-9"), payload))

	var relayed wire.ShelfStatus
	require.NoError(t, json.Unmarshal(receive(t, internal), &relayed))
	assert.Equal(t, 150.0, relayed.Stock)
	assert.Equal(t, "kg", relayed.Unit)
	assert.Nil(t, relayed.OriginalStock)
}

func TestGateway_EncodesDispatchIntoBinaryCommand(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	newStartedGateway(t, bus, &recordingStore{})

	commands := collect(t, bus, wire.RobotCommandTopic(group, "AMR-001"))

	msg := wire.DispatchMessage{
		RobotID:         "AMR-001",
		Command:         wire.CommandExecuteTask,
		TargetShelfID:   "shelf-3",
		TargetStationID: "P2",
		Quantity:        10,
	}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), wire.DispatchTopic(group), payload))

	frame := receive(t, commands)
	cmd, err := wire.DecodeCommand(frame)
	require.NoError(t, err)
	assert.Equal(t, wire.OpExecuteTask, cmd.Op)
	assert.Equal(t, byte(3), cmd.Shelf)
	assert.Equal(t, byte(2), cmd.Station)
}

func TestGateway_IgnoresRestockDispatches(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	newStartedGateway(t, bus, &recordingStore{})

	commands := collect(t, bus, "warehouse/"+group+"/amr/+/command")

	msg := wire.DispatchMessage{Command: wire.CommandRestock, TargetShelfID: "shelf-3", Quantity: 100}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), wire.DispatchTopic(group), payload))

	select {
	case <-commands:
		t.Fatal("restock must not produce a robot command")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGateway_HandleOverride(t *testing.T) {
	t.Run("force_charge_is_encoded", func(t *testing.T) {
		bus := inprocbus.NewBus()
		defer bus.Close()
		g := newStartedGateway(t, bus, &recordingStore{})

		commands := collect(t, bus, wire.RobotCommandTopic(group, "AMR-007"))

		g.HandleOverride(wire.Override{RobotID: "AMR-007", Level: "CRITICAL", OverrideTask: wire.OverrideForceCharge})

		cmd, err := wire.DecodeCommand(receive(t, commands))
		require.NoError(t, err)
		assert.Equal(t, wire.OpForceCharge, cmd.Op)
	})

	t.Run("unknown_override_task_is_dropped", func(t *testing.T) {
		bus := inprocbus.NewBus()
		defer bus.Close()
		g := newStartedGateway(t, bus, &recordingStore{})

		commands := collect(t, bus, "warehouse/"+group+"/amr/+/command")

		g.HandleOverride(wire.Override{RobotID: "AMR-007", OverrideTask: "SELF_DESTRUCT"})

		select {
		case <-commands:
			t.Fatal("unsupported override must not produce a command")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestGateway_DropsMalformedPayloads(t *testing.T) {
	bus := inprocbus.NewBus()
	defer bus.Close()
	store := &recordingStore{}
	newStartedGateway(t, bus, store)

	internal := collect(t, bus, wire.InternalRobotStatusFilter(group))

	require.NoError(t, bus.Publish(context.Background(),
		wire.RobotStatusTopic(group, "AMR-001"), []byte("not json")))
	require.NoError(t, bus.Publish(context.Background(),
		wire.DispatchTopic(group), []byte("{broken")))

	select {
	case <-internal:
		t.Fatal("malformed payload must not be relayed")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, store.all())
}
