package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warehouse/internal/adapters/out/postgres/telemetry"
	"warehouse/internal/core/ports"
)

// TelemetryStoreIntegrationTestSuite provides integration tests for the
// telemetry store using PostgreSQL containers.
type TelemetryStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *telemetry.GormTelemetryStore
}

func (suite *TelemetryStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&telemetry.SampleDTO{}))

	suite.store = telemetry.NewGormTelemetryStore(db)
}

func (suite *TelemetryStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TelemetryStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE telemetry_samples").Error)
}

func (suite *TelemetryStoreIntegrationTestSuite) TestAppendRobotSample() {
	err := suite.store.Append(context.Background(), ports.TelemetryRecord{
		ObservedAt: time.Now().UTC(),
		AssetID:    "AMR-001",
		AssetType:  "amr",
		Location:   "TRANSIT",
		Battery:    87,
		Status:     "MOVING_TO_PICK",
	})
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Table("telemetry_samples").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *TelemetryStoreIntegrationTestSuite) TestAppendShelfSample() {
	err := suite.store.Append(context.Background(), ports.TelemetryRecord{
		ObservedAt: time.Now().UTC(),
		AssetID:    "shelf-3",
		AssetType:  "static",
		ItemID:     "item_C",
		Stock:      2300,
		Unit:       "kg",
	})
	suite.Require().NoError(err)

	var dto telemetry.SampleDTO
	suite.Require().NoError(suite.db.First(&dto).Error)
	suite.Equal("shelf-3", dto.AssetID)
	suite.Equal(2300.0, dto.Stock)
	suite.Equal("kg", dto.Unit)
}

func TestTelemetryStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TelemetryStoreIntegrationTestSuite))
}
