package config

import (
	"fmt"
	"strings"
	"time"

	libconfig "powermonitor/backend/libs/config"
	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/store"
	"powermonitor/backend/services/monitor-service/internal/telemetry"
)

const defaultPort = "8085"

// Config defines monitor service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"MONITOR_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"MONITOR_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"MONITOR_REDIS_ADDR"`
		Password string `yaml:"password" env:"MONITOR_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"MONITOR_REDIS_DB"`
		TTL      int    `yaml:"ttlSeconds" env:"MONITOR_REDIS_TTL"`
	} `yaml:"redis"`
	Readings struct {
		Capacity int `yaml:"capacity" env:"MONITOR_READINGS_CAPACITY"`
	} `yaml:"readings"`
	Pricing struct {
		File  string               `yaml:"file" env:"MONITOR_PRICING_FILE"`
		Slabs []models.PricingSlab `yaml:"slabs" env:"-"`
	} `yaml:"pricing"`
	Telemetry struct {
		Exporter string `yaml:"exporter" env:"MONITOR_OTEL_EXPORTER"`
		Endpoint string `yaml:"endpoint" env:"MONITOR_OTEL_ENDPOINT"`
	} `yaml:"telemetry"`
	WS struct {
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"MONITOR_WS_WRITE_TIMEOUT"`
	} `yaml:"ws"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Redis.TTL = 300
	cfg.Readings.Capacity = store.DefaultCapacity
	cfg.Telemetry.Exporter = telemetry.ExporterNone
	cfg.Telemetry.Endpoint = "localhost:4317"
	cfg.WS.WriteTimeoutSeconds = 10

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Readings.Capacity <= 0 {
		return nil, fmt.Errorf("config: readings capacity must be positive, got %d", cfg.Readings.Capacity)
	}
	switch cfg.Telemetry.Exporter {
	case telemetry.ExporterNone, telemetry.ExporterStdout, telemetry.ExporterOTLP:
	default:
		return nil, fmt.Errorf("config: unknown telemetry exporter %q", cfg.Telemetry.Exporter)
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// LatestReadingTTL returns the redis ttl as duration.
func (c *Config) LatestReadingTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// WSWriteTimeout returns the websocket write timeout as duration.
func (c *Config) WSWriteTimeout() time.Duration {
	if c.WS.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.WS.WriteTimeoutSeconds) * time.Second
}

// PersistenceEnabled reports whether a postgres DSN is configured.
func (c *Config) PersistenceEnabled() bool {
	return strings.TrimSpace(c.Database.DSN) != ""
}

// CacheEnabled reports whether a redis address is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// PricingSchedule returns the validated initial schedule: the pricing file
// when set, else inline slabs, else the built-in default.
func (c *Config) PricingSchedule() (models.PricingSchedule, error) {
	slabs := c.Pricing.Slabs
	if c.Pricing.File != "" {
		loaded, err := LoadPricingFile(c.Pricing.File)
		if err != nil {
			return nil, err
		}
		slabs = loaded
	}
	if len(slabs) == 0 {
		return models.DefaultSchedule(), nil
	}

	schedule, err := billing.ValidateSchedule(slabs)
	if err != nil {
		return nil, fmt.Errorf("config: pricing schedule: %w", err)
	}
	return schedule, nil
}

type pricingFile struct {
	Slabs []models.PricingSlab `yaml:"slabs"`
}

// LoadPricingFile decodes a YAML `slabs:` document without validating it.
func LoadPricingFile(path string) ([]models.PricingSlab, error) {
	var doc pricingFile
	if err := libconfig.LoadYAMLFile(path, &doc); err != nil {
		return nil, err
	}
	return doc.Slabs, nil
}
