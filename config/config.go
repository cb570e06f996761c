package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config carries operator-supplied settings. Credentials are required at
// startup; everything else falls back to the defaults in this package.
type Config struct {
	Username   string
	Password   string
	GatewayURL string

	ExportDirs []string

	PacingMin        time.Duration
	PacingMax        time.Duration
	OperationTimeout time.Duration
}

// ErrMissingCredentials indicates the provider principal is not configured.
var ErrMissingCredentials = errors.New("config: MCPGRAM_USERNAME and MCPGRAM_PASSWORD are required")

// Load reads configuration from MCPGRAM_* environment variables via viper.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("mcpgram")
	v.AutomaticEnv()

	v.SetDefault("gateway_url", "http://127.0.0.1:8787")
	v.SetDefault("pacing_min", DefaultPacingMin)
	v.SetDefault("pacing_max", DefaultPacingMax)
	v.SetDefault("operation_timeout", DefaultOperationTimeout)

	cfg := Config{
		Username:         v.GetString("username"),
		Password:         v.GetString("password"),
		GatewayURL:       v.GetString("gateway_url"),
		ExportDirs:       v.GetStringSlice("export_dirs"),
		PacingMin:        v.GetDuration("pacing_min"),
		PacingMax:        v.GetDuration("pacing_max"),
		OperationTimeout: v.GetDuration("operation_timeout"),
	}

	if cfg.Username == "" || cfg.Password == "" {
		return cfg, ErrMissingCredentials
	}
	if cfg.PacingMax < cfg.PacingMin {
		cfg.PacingMax = cfg.PacingMin
	}
	return cfg, nil
}
