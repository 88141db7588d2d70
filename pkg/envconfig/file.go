package envconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/BrandonWrob/ExtendedManager/pkg/database"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// AppConfig is the full process configuration. It is read from a YAML file,
// then environment variables override individual fields.
type AppConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Log      logger.Config   `yaml:"log"`
	Storage  string          `yaml:"storage"`
	Database database.Config `yaml:"database"`
	// InitialTaxRate seeds the tax rate record on startup when set.
	InitialTaxRate *decimal.Decimal `yaml:"initial_tax_rate"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Server:   ServerConfig{Host: "localhost", Port: "8080"},
		Log:      logger.DefaultConfig(),
		Storage:  StoragePostgres,
		Database: database.DefaultConfig(),
	}
}

// LoadFile reads the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func LoadFile(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads the file at path and applies environment overrides.
func Load(path string) (AppConfig, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *AppConfig) applyEnv() {
	c.Server.Host = GetEnv("HOST", c.Server.Host)
	c.Server.Port = GetEnv("PORT", c.Server.Port)
	c.Storage = GetEnv("STORAGE", c.Storage)

	if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.Log.Level = GetLogLevel()
	}
	c.Log.Format = GetEnv("LOG_FORMAT", c.Log.Format)
	c.Log.Output = GetEnv("LOG_OUTPUT", c.Log.Output)
	c.Log.Environment = GetEnv("ENVIRONMENT", c.Log.Environment)
	if v := GetEnv("LOG_ENABLE_CALLER", ""); v != "" {
		c.Log.EnableCaller = v == "true"
	}

	c.Database = applyDatabaseEnv(c.Database)
}

func (c AppConfig) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage %q: must be %q or %q", c.Storage, StorageMemory, StoragePostgres)
	}
	if c.InitialTaxRate != nil && c.InitialTaxRate.IsNegative() {
		return errors.New("initial_tax_rate cannot be negative")
	}
	return nil
}
