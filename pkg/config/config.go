// Package config loads pagedriver's service configuration from defaults,
// environment variables, and an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service.
type Config struct {
	// Host and Port form the HTTP listen address.
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// APIKey enables the shared-secret gate when non-empty. Requests must
	// then carry it in the X-API-Key header or api_key query parameter.
	APIKey string `mapstructure:"api_key"`

	// Headless controls the browser launch mode.
	Headless bool `mapstructure:"headless"`

	// ViewportWidth and ViewportHeight fix the automation target viewport.
	ViewportWidth  int `mapstructure:"viewport_width"`
	ViewportHeight int `mapstructure:"viewport_height"`

	// LogFile, when set, receives component logs instead of stderr.
	LogFile string `mapstructure:"log_file"`

	// ReadTimeout and WriteTimeout bound the HTTP server, not actions.
	// WriteTimeout must stay above the 30s action bound or long actions
	// would have their responses cut off mid-write.
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration. Precedence: environment variables
// (PAGEDRIVER_* with PORT and API_KEY also honored bare), then the YAML
// file at path, then defaults. A missing file at an explicit path is an
// error; an empty path skips file loading entirely.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 3001)
	v.SetDefault("api_key", "")
	v.SetDefault("headless", true)
	v.SetDefault("viewport_width", 1280)
	v.SetDefault("viewport_height", 720)
	v.SetDefault("log_file", "")
	v.SetDefault("read_timeout", 30*time.Second)
	v.SetDefault("write_timeout", 5*time.Minute)

	v.SetEnvPrefix("PAGEDRIVER")
	v.AutomaticEnv()

	// Bare PORT and API_KEY match the deployment environments this
	// service typically runs in.
	_ = v.BindEnv("port", "PAGEDRIVER_PORT", "PORT")
	_ = v.BindEnv("api_key", "PAGEDRIVER_API_KEY", "API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		return nil, fmt.Errorf("invalid viewport: %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}

	return &cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
