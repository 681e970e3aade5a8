// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable, e.g. CHARTKEEP_APP_PORT.
const EnvPrefix = "chartkeep"

// Config is the full service configuration.
type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Remote RemoteConfig
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Port      string `envconfig:"CHARTKEEP_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"CHARTKEEP_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"CHARTKEEP_LOG_FORMAT" default:"json"`
	CompanyID string `envconfig:"CHARTKEEP_COMPANY_ID" default:"default"`
}

// DBConfig selects the remote store backend. An empty URL runs the service
// against the in-memory remote (dev mode).
type DBConfig struct {
	URL string `envconfig:"CHARTKEEP_DATABASE_URL"`
}

// RedisConfig selects the snapshot cache backend. An empty URL falls back to
// the in-process cache.
type RedisConfig struct {
	URL          string        `envconfig:"CHARTKEEP_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"CHARTKEEP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHARTKEEP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHARTKEEP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RemoteConfig struct {
	// Timeout bounds each remote call, both the synchronous id-issuing
	// create and the queued writes.
	Timeout time.Duration `envconfig:"CHARTKEEP_REMOTE_TIMEOUT" default:"5s"`
}
