package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	State    StateConfig    `mapstructure:"state"`
	Presets  []PresetConfig `mapstructure:"presets"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	ExtraHolidaysFile string `mapstructure:"extra_holidays_file"` // one "YYYY-MM-DD [name]" per line
}

// StateConfig represents session storage configuration
type StateConfig struct {
	SessionFile string `mapstructure:"session_file"`
}

// PresetConfig represents a named equipment preset
type PresetConfig struct {
	Name string  `mapstructure:"name"`
	Rate float64 `mapstructure:"rate"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	Metrics      bool   `mapstructure:"metrics"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const envPrefix = "PLANT_HIRE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.extra_holidays_file", "")
	v.SetDefault("state.session_file", "plant-hire-session.json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.metrics", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file.
// An explicit path must exist; when searching, a missing config file yields defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.plant-hire")
		v.AddConfigPath("/etc/plant-hire")
	}

	// Read environment variables (PLANT_HIRE_SERVER_ADDR -> server.addr)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for i, preset := range c.Presets {
		if strings.TrimSpace(preset.Name) == "" {
			return fmt.Errorf("presets[%d].name is required", i)
		}
		if preset.Rate < 0 {
			return fmt.Errorf("presets[%d].rate must not be negative", i)
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := parseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("server.read_timeout: %w", err)
	}
	if _, err := parseDuration(c.Server.WriteTimeout); err != nil {
		return fmt.Errorf("server.write_timeout: %w", err)
	}

	return nil
}

// GetReadTimeout returns the HTTP read timeout. Default: 10s
func (c *ServerConfig) GetReadTimeout() time.Duration {
	d, err := parseDuration(c.ReadTimeout)
	if err != nil || d == 0 {
		return 10 * time.Second
	}
	return d
}

// GetWriteTimeout returns the HTTP write timeout. Default: 10s
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	d, err := parseDuration(c.WriteTimeout)
	if err != nil || d == 0 {
		return 10 * time.Second
	}
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// ExpandEnvVars expands environment variables in file paths
func (c *Config) ExpandEnvVars() {
	c.Calendar.ExtraHolidaysFile = os.ExpandEnv(c.Calendar.ExtraHolidaysFile)
	c.State.SessionFile = os.ExpandEnv(c.State.SessionFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
