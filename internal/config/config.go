package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the timing and probability parameters of the environment
// simulation shared by the weather-sim binaries.
type Config struct {
	// ListenAddress is the address the HTTP status endpoint binds to.
	ListenAddress string `yaml:"listen_addr"`
	// DayLength is the real-time duration of the day phase.
	DayLength time.Duration `yaml:"day_length"`
	// NightLength is the real-time duration of the night phase.
	NightLength time.Duration `yaml:"night_length"`
	// TimeStep is the interval between clock ticks within a phase.
	TimeStep time.Duration `yaml:"time_step"`
	// WeatherCheckInterval is how often the scheduler rolls for a storm.
	WeatherCheckInterval time.Duration `yaml:"weather_check_interval"`
	// StormProbability is the chance in [0,1] that an eligible check starts a storm.
	StormProbability float64 `yaml:"storm_probability"`
	// ThunderIntervalMin is the lower bound of the random wait between thunder claps.
	ThunderIntervalMin time.Duration `yaml:"thunder_interval_min"`
	// ThunderIntervalMax is the upper bound of the random wait between thunder claps.
	ThunderIntervalMax time.Duration `yaml:"thunder_interval_max"`
	// StormDuration is the nominal length of a storm.
	StormDuration time.Duration `yaml:"storm_duration"`
	// RainGracePeriod is how long the rain resource lingers after emission stops.
	RainGracePeriod time.Duration `yaml:"rain_grace_period"`
	// ThunderLinger is how long a thunder resource is kept before release.
	ThunderLinger time.Duration `yaml:"thunder_linger"`
	// Seed feeds the weather RNG; zero means time-based seeding.
	Seed int64 `yaml:"seed"`
}

const (
	// DefaultConfigFilename is the default filename for simulation settings.
	DefaultConfigFilename = "weather-sim-settings.yaml"

	// DefaultListenAddress is the default bind address of the status endpoint.
	DefaultListenAddress = "localhost:8095"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errListenAddressRequired is returned when the listen address is missing.
	errListenAddressRequired = errors.New("listen address must be provided")
	// errThunderIntervalOrder is returned when the thunder interval bounds are inverted.
	errThunderIntervalOrder = errors.New("thunder_interval_min must not exceed thunder_interval_max")
	// errStormProbabilityRange is returned when the storm probability is outside [0,1].
	errStormProbabilityRange = errors.New("storm_probability must be within [0, 1]")
)

// Default returns the reference configuration of the simulation.
func Default() *Config {
	return &Config{
		ListenAddress:        DefaultListenAddress,
		DayLength:            300 * time.Second,
		NightLength:          120 * time.Second,
		TimeStep:             time.Second,
		WeatherCheckInterval: 30 * time.Second,
		StormProbability:     0.3,
		ThunderIntervalMin:   5 * time.Second,
		ThunderIntervalMax:   15 * time.Second,
		StormDuration:        120 * time.Second,
		RainGracePeriod:      3 * time.Second,
		ThunderLinger:        10 * time.Second,
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and ranges.
// Every violation is a startup-time fatal error: the loops divide by the
// phase durations and sleep for the intervals, so none of them may be
// zero or negative.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ListenAddress == "" {
		return errListenAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	durations := map[string]time.Duration{
		"day_length":             cfg.DayLength,
		"night_length":           cfg.NightLength,
		"time_step":              cfg.TimeStep,
		"weather_check_interval": cfg.WeatherCheckInterval,
		"thunder_interval_min":   cfg.ThunderIntervalMin,
		"thunder_interval_max":   cfg.ThunderIntervalMax,
		"storm_duration":         cfg.StormDuration,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	// Cleanup delays may be zero (release immediately) but never negative.
	if cfg.RainGracePeriod < 0 {
		return fmt.Errorf("rain_grace_period must not be negative, got %s", cfg.RainGracePeriod)
	}

	if cfg.ThunderLinger < 0 {
		return fmt.Errorf("thunder_linger must not be negative, got %s", cfg.ThunderLinger)
	}

	if cfg.ThunderIntervalMin > cfg.ThunderIntervalMax {
		return errThunderIntervalOrder
	}

	if cfg.StormProbability < 0 || cfg.StormProbability > 1 {
		return errStormProbabilityRange
	}

	return nil
}
