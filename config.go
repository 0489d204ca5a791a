package screens

import (
	"errors"
	"strings"

	"github.com/goliatone/go-screens/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Storage driver identifiers accepted by StorageConfig.
const (
	StorageDriverMemory = "memory"
	StorageDriverBun    = "bun"
)

var (
	ErrStorageDriverUnknown = errors.New("screens: unknown storage driver")
	ErrStorageDBRequired    = errors.New("screens: bun storage requires a database handle")
	ErrLoggingLevelInvalid  = errors.New("screens: invalid logging level")
	ErrLoggingFormatInvalid = errors.New("screens: invalid logging format")
	ErrSeedNameRequired     = errors.New("screens: seed configuration requires a name")
)

// Config wires the module: where configurations persist, how the runtime
// logs, and whether a starter configuration is seeded on startup.
type Config struct {
	Logging LoggingConfig
	Storage StorageConfig
	Seed    SeedConfig
}

// LoggingConfig selects the logging backend. When Provider is set it is used
// as-is; otherwise a go-logger provider is built from the remaining fields.
type LoggingConfig struct {
	Provider  interfaces.LoggerProvider
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// StorageConfig selects the persistence backend. The memory driver needs no
// further setup; the bun driver persists through the supplied database.
type StorageConfig struct {
	Driver string
	DB     *bun.DB
}

// SeedConfig controls the deterministic starter configuration installed when
// the store is empty. Seeding is idempotent: the derived identifier is stable
// per name, so repeated startups never duplicate the record.
type SeedConfig struct {
	Enabled  bool
	Name     string
	Activate bool
}

// DefaultConfig returns a memory-backed module with JSON logging at info
// level and seeding disabled.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
	}
}

// Validate checks configuration coherence before any wiring happens.
func (c Config) Validate() error {
	if err := c.Logging.validate(); err != nil {
		return err
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	return c.Seed.validate()
}

func (c LoggingConfig) validate() error {
	if c.Provider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}

func (c StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", StorageDriverMemory:
		return nil
	case StorageDriverBun:
		if c.DB == nil {
			return ErrStorageDBRequired
		}
		return nil
	default:
		return ErrStorageDriverUnknown
	}
}

func (c SeedConfig) validate() error {
	if c.Enabled && strings.TrimSpace(c.Name) == "" {
		return ErrSeedNameRequired
	}
	return nil
}
