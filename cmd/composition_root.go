package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"warehouse/internal/adapters/gateway"
	busin "warehouse/internal/adapters/in/bus"
	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/inprocbus"
	"warehouse/internal/adapters/out/mqttbus"
	"warehouse/internal/adapters/out/noop"
	"warehouse/internal/adapters/out/postgres/dispatchlog"
	"warehouse/internal/adapters/out/postgres/telemetry"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/robot"
	"warehouse/internal/core/domain/model/shelf"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"
)

// CompositionRoot wires the whole simulation: the message bus, the world
// state, the archival stores, and factories for every handler, adapter, and
// job.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	bus       ports.MessageBus
	state     *fleet.State
	selector  *services.RandomRobotSelector
	archive   ports.DispatchArchive
	telemetry ports.TelemetryStore
	gormDB    *gorm.DB
	rng       *rand.Rand
}

// NewCompositionRoot builds the object graph from config. gormDB may be nil
// when archiving is disabled; the no-op stores take its place.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	state, err := fleet.NewState(config.NominalStock)
	if err != nil {
		return nil, fmt.Errorf("creating fleet state: %w", err)
	}

	selector, err := services.NewRandomRobotSelector(rand.New(rand.NewSource(rng.Int63())))
	if err != nil {
		return nil, fmt.Errorf("creating robot selector: %w", err)
	}

	var bus ports.MessageBus
	switch config.BusMode {
	case "", "inproc":
		bus = inprocbus.NewBus()
	case "mqtt":
		bus, err = mqttbus.Connect(mqttbus.Config{
			BrokerURL: config.MQTTBrokerURL,
			ClientID:  config.MQTTClientID,
			Username:  config.MQTTUsername,
			Password:  config.MQTTPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting message bus: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown bus mode %q", config.BusMode)
	}

	var archive ports.DispatchArchive = noop.DispatchArchive{}
	var telemetryStore ports.TelemetryStore = noop.TelemetryStore{}
	if gormDB != nil {
		archive = dispatchlog.NewGormDispatchArchive(gormDB)
		telemetryStore = telemetry.NewGormTelemetryStore(gormDB)
	}

	return &CompositionRoot{
		config:    config,
		logger:    logger,
		bus:       bus,
		state:     state,
		selector:  selector,
		archive:   archive,
		telemetry: telemetryStore,
		gormDB:    gormDB,
		rng:       rng,
	}, nil
}

// Bus returns the message bus.
func (c *CompositionRoot) Bus() ports.MessageBus {
	return c.bus
}

// CreateSubmitOrderCommandHandler builds the order intake handler.
func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.state)
}

// CreateProcessOrdersCommandHandler builds the matching pass handler.
func (c *CompositionRoot) CreateProcessOrdersCommandHandler() commands.ProcessOrdersCommandHandler {
	return commands.NewProcessOrdersCommandHandler(c.state, c.selector, c.bus, c.archive, c.config.Group)
}

// CreateUpdateRobotStatusCommandHandler builds the robot reconciliation
// handler.
func (c *CompositionRoot) CreateUpdateRobotStatusCommandHandler() commands.UpdateRobotStatusCommandHandler {
	return commands.NewUpdateRobotStatusCommandHandler(c.state, c.bus, c.archive, c.config.Group)
}

// CreateUpdateShelfStatusCommandHandler builds the shelf mirror handler.
func (c *CompositionRoot) CreateUpdateShelfStatusCommandHandler() commands.UpdateShelfStatusCommandHandler {
	return commands.NewUpdateShelfStatusCommandHandler(c.state)
}

// CreateGetFleetSnapshotQueryHandler builds the fleet read model handler.
func (c *CompositionRoot) CreateGetFleetSnapshotQueryHandler() queries.GetFleetSnapshotQueryHandler {
	return queries.NewGetFleetSnapshotQueryHandler(c.state)
}

// CreateDispatchLogReader builds the dispatch archive read side: SQL-backed
// when a database is configured, otherwise an empty reader.
func (c *CompositionRoot) CreateDispatchLogReader() httpin.DispatchLogReader {
	if c.gormDB != nil {
		return queries.NewGetDispatchLogQueryHandler(c.gormDB)
	}
	return emptyDispatchLog{}
}

// CreateHTTPServer builds the operator API server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateGetFleetSnapshotQueryHandler(),
		c.CreateDispatchLogReader(),
	)
}

// CreateGateway builds the telemetry gateway.
func (c *CompositionRoot) CreateGateway() (*gateway.Gateway, error) {
	return gateway.NewGateway(c.bus, c.telemetry, c.config.Group, c.logger)
}

// CreateCoordinatorListener builds the internal topic subscriber feeding the
// coordinator.
func (c *CompositionRoot) CreateCoordinatorListener() (*busin.CoordinatorListener, error) {
	return busin.NewCoordinatorListener(
		c.bus,
		c.CreateUpdateRobotStatusCommandHandler(),
		c.CreateUpdateShelfStatusCommandHandler(),
		c.config.Group,
		c.logger,
	)
}

// CreateJobManager builds every scheduled actor: the robot agents, the shelf
// engines per zone, and the coordinator.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	scheduled := make([]jobs.Job, 0, c.config.RobotCount+c.config.ShelvesStorageA+c.config.ShelvesStorageB+1)

	for i := 1; i <= c.config.RobotCount; i++ {
		id, err := kernel.NewRobotID(fmt.Sprintf("AMR-%03d", i))
		if err != nil {
			return nil, err
		}
		r, err := robot.NewRobot(id, robot.DefaultParams(), rand.New(rand.NewSource(c.rng.Int63())))
		if err != nil {
			return nil, err
		}
		scheduled = append(scheduled, jobs.NewRobotAgentJob(r, c.bus, c.config.Group, c.logger))
	}

	shelfNum := 1
	for i := 0; i < c.config.ShelvesStorageA; i++ {
		s, err := shelf.NewShelf(kernel.ShelfIDFromNumber(shelfNum), shelf.ZoneStorageA, c.config.NominalStock)
		if err != nil {
			return nil, err
		}
		scheduled = append(scheduled, jobs.NewShelfEngineJob(s, c.bus, c.config.Group, c.config.ShelfUpdateSeconds, c.logger))
		shelfNum++
	}
	for i := 0; i < c.config.ShelvesStorageB; i++ {
		s, err := shelf.NewShelf(kernel.ShelfIDFromNumber(shelfNum), shelf.ZoneStorageB, c.config.NominalStock)
		if err != nil {
			return nil, err
		}
		scheduled = append(scheduled, jobs.NewShelfEngineJob(s, c.bus, c.config.Group, c.config.ShelfUpdateSeconds, c.logger))
		shelfNum++
	}

	scheduled = append(scheduled, jobs.NewCoordinatorJob(
		c.CreateProcessOrdersCommandHandler(),
		c.CreateGetFleetSnapshotQueryHandler(),
		c.logger,
	))

	return jobs.NewJobManager(c.logger, scheduled...), nil
}

// emptyDispatchLog serves an empty archive for database-less deployments.
type emptyDispatchLog struct{}

func (emptyDispatchLog) Handle(
	_ context.Context,
	query queries.GetDispatchLogQuery,
) ([]queries.GetDispatchLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return []queries.GetDispatchLogQueryResponse{}, nil
}
