package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Simulator holds all configuration for the battle simulator.
type Simulator struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Battles
	Seed         int64 `yaml:"seed"` // 0 = random seed per run
	Battles      int   `yaml:"battles"`
	Workers      int   `yaml:"workers"`
	MaxTurns     int   `yaml:"max_turns"`
	VerifyReplay bool  `yaml:"verify_replay"`

	// Reference data. Empty paths use the embedded defaults.
	MovesPath  string `yaml:"moves_path"`
	RosterPath string `yaml:"roster_path"`

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:     "info",
		Battles:      8,
		Workers:      4,
		MaxTurns:     100,
		VerifyReplay: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "turnbattle",
			Password: "turnbattle",
			DBName:   "turnbattle",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (s Simulator) Validate() error {
	switch {
	case s.Battles < 1:
		return fmt.Errorf("%w: battles must be positive, got %d", ErrInvalidConfig, s.Battles)
	case s.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, s.Workers)
	case s.MaxTurns < 1:
		return fmt.Errorf("%w: max_turns must be positive, got %d", ErrInvalidConfig, s.MaxTurns)
	}
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel. Empty means info.
func (s Simulator) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s.LogLevel)
	}
	return lvl, nil
}
