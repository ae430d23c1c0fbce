package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warehouse/cmd"
	"warehouse/internal/adapters/gateway"
	"warehouse/internal/adapters/in/udp"
	"warehouse/internal/adapters/out/postgres/dispatchlog"
	"warehouse/internal/adapters/out/postgres/telemetry"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/wire"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfig()

	var gormDB *gorm.DB
	if config.ArchivingEnabled() {
		db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{})
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := db.AutoMigrate(&dispatchlog.DispatchEventDTO{}, &telemetry.SampleDTO{}); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		gormDB = db
	} else {
		logger.Info("no database configured, archiving disabled")
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		logger.Error("failed to build composition root", "error", err)
		os.Exit(1)
	}
	defer root.Bus().Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw, err := root.CreateGateway()
	if err != nil {
		logger.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}
	if err := gw.Start(ctx); err != nil {
		logger.Error("failed to start gateway", "error", err)
		os.Exit(1)
	}

	listener, err := root.CreateCoordinatorListener()
	if err != nil {
		logger.Error("failed to create coordinator listener", "error", err)
		os.Exit(1)
	}
	if err := listener.Start(ctx); err != nil {
		logger.Error("failed to start coordinator listener", "error", err)
		os.Exit(1)
	}

	startUDPIntake(ctx, root, gw, config, logger)

	jobManager, err := root.CreateJobManager()
	if err != nil {
		logger.Error("failed to create jobs", "error", err)
		os.Exit(1)
	}
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, root, config, logger)
}

// startUDPIntake binds the order and override datagram listeners.
func startUDPIntake(ctx context.Context, root *cmd.CompositionRoot, gw *gateway.Gateway, config cmd.Config, logger *slog.Logger) {
	submitOrders := root.CreateSubmitOrderCommandHandler()

	ordersListener, err := udp.Listen("orders", config.OrdersUDPAddr, func(payload []byte) {
		var intake wire.OrderIntake
		if err := json.Unmarshal(payload, &intake); err != nil {
			logger.Warn("dropping malformed order datagram", "error", err)
			return
		}
		orderCmd, err := commands.NewSubmitOrderCommand(intake.OrderID, intake.Item, intake.Quantity, intake.PackStation)
		if err != nil {
			logger.Warn("dropping invalid order datagram", "error", err)
			return
		}
		if err := submitOrders.Handle(ctx, orderCmd); err != nil {
			logger.Error("failed to submit order", "error", err)
		}
	}, logger)
	if err != nil {
		logger.Error("failed to bind order intake", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := ordersListener.Run(ctx); err != nil {
			logger.Error("order intake stopped", "error", err)
		}
	}()

	overridesListener, err := udp.Listen("overrides", config.OverridesUDPAddr, func(payload []byte) {
		var override wire.Override
		if err := json.Unmarshal(payload, &override); err != nil {
			logger.Warn("dropping malformed override datagram", "error", err)
			return
		}
		gw.HandleOverride(override)
	}, logger)
	if err != nil {
		logger.Error("failed to bind override intake", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := overridesListener.Run(ctx); err != nil {
			logger.Error("override intake stopped", "error", err)
		}
	}()
}

func startWebServer(ctx context.Context, root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Use(middleware.Recover())

	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		_ = e.Shutdown(context.Background())
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil {
		logger.Info("web server stopped", "error", err)
	}
}

func getConfig() cmd.Config {
	// Missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "8080"),
		Group:              envOrDefault("WAREHOUSE_GROUP", "site-a"),
		BusMode:            envOrDefault("BUS_MODE", "inproc"),
		MQTTBrokerURL:      os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:       envOrDefault("MQTT_CLIENT_ID", "warehouse-sim"),
		MQTTUsername:       os.Getenv("MQTT_USERNAME"),
		MQTTPassword:       os.Getenv("MQTT_PASSWORD"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOrDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOrDefault("DB_SSLMODE", "disable"),
		OrdersUDPAddr:      envOrDefault("ORDERS_UDP_ADDR", "0.0.0.0:9091"),
		OverridesUDPAddr:   envOrDefault("OVERRIDES_UDP_ADDR", "0.0.0.0:9090"),
		RobotCount:         envOrDefaultInt("ROBOT_COUNT", 3),
		ShelvesStorageA:    envOrDefaultInt("SHELVES_STORAGE_A", 5),
		ShelvesStorageB:    envOrDefaultInt("SHELVES_STORAGE_B", 5),
		NominalStock:       envOrDefaultInt("NOMINAL_STOCK", 100),
		ShelfUpdateSeconds: envOrDefaultInt("SHELF_UPDATE_SECONDS", 1),
		RandomSeed:         int64(envOrDefaultInt("RANDOM_SEED", 0)),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring non-numeric environment value", "key", key, "value", raw)
		return fallback
	}
	return value
}
