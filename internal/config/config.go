package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Storage StorageConfig `json:"storage"`
}

// AthleteConfig holds the declared training profile used to seed
// calibration before enough measured history exists
type AthleteConfig struct {
	ID              string  `json:"id"`
	WeeklyFrequency int     `json:"weekly_frequency"`
	ActivityLevel   string  `json:"activity_level"` // moderately_active, very_active, extra_active
	TDEE            float64 `json:"tdee"`           // maintenance calories, 0 = untracked
}

// StorageConfig holds database settings
type StorageConfig struct {
	DBPath string `json:"db_path"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			ID:              "default",
			WeeklyFrequency: 3,
			ActivityLevel:   "moderately_active",
		},
	}
}

// Load reads the configuration from ~/.fightcamp/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.ID == "" {
		cfg.Athlete.ID = defaults.Athlete.ID
	}
	if cfg.Athlete.WeeklyFrequency == 0 {
		cfg.Athlete.WeeklyFrequency = defaults.Athlete.WeeklyFrequency
	}
	if cfg.Athlete.ActivityLevel == "" {
		cfg.Athlete.ActivityLevel = defaults.Athlete.ActivityLevel
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.fightcamp/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks if the config has acceptable values
func (c *Config) Validate() error {
	if c.Athlete.ID == "" {
		return errors.New("athlete.id is required")
	}
	if c.Athlete.WeeklyFrequency < 0 || c.Athlete.WeeklyFrequency > 14 {
		return fmt.Errorf("athlete.weekly_frequency must be between 0 and 14, got %d", c.Athlete.WeeklyFrequency)
	}
	switch c.Athlete.ActivityLevel {
	case "", "moderately_active", "very_active", "extra_active":
	default:
		return fmt.Errorf("athlete.activity_level must be \"moderately_active\", \"very_active\" or \"extra_active\", got %q", c.Athlete.ActivityLevel)
	}
	if c.Athlete.TDEE < 0 {
		return errors.New("athlete.tdee cannot be negative")
	}
	return nil
}

// GetConfigDir returns the directory holding the config file
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".fightcamp"), nil
}

func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".fightcamp", "config.json"), nil
}
