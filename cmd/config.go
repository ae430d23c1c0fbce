package cmd

import "fmt"

// Config carries all deployment settings. Values come from the environment
// (.env in development); zero values fall back to hermetic defaults where
// noted.
type Config struct {
	HTTPPort string

	// Group is the deployment group identifier used in every topic.
	Group string

	// BusMode selects the transport: "inproc" (default, hermetic) or "mqtt".
	BusMode       string
	MQTTBrokerURL string
	MQTTClientID  string
	MQTTUsername  string
	MQTTPassword  string

	// Database settings. An empty DBHost disables archiving; the simulation
	// runs with no-op stores.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// UDP intake addresses.
	OrdersUDPAddr    string
	OverridesUDPAddr string

	// Fleet shape.
	RobotCount      int
	ShelvesStorageA int
	ShelvesStorageB int
	NominalStock    int

	// ShelfUpdateSeconds is the shelf status publish cadence.
	ShelfUpdateSeconds int

	// RandomSeed makes stall injection and robot selection reproducible.
	// Zero seeds from the clock.
	RandomSeed int64
}

// ArchivingEnabled reports whether a database is configured.
func (c Config) ArchivingEnabled() bool {
	return c.DBHost != ""
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
