package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. It is read from a YAML file and a
// few keys can be overridden from the environment.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Spanner   SpannerConfig   `yaml:"spanner"`
	Redis     RedisConfig     `yaml:"redis"`
	Outbox    OutboxConfig    `yaml:"outbox"`
	Wizard    WizardConfig    `yaml:"wizard"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

type SpannerConfig struct {
	Database string `yaml:"database"`
	// HealthInterval is how often the gRPC health probe pings Spanner.
	HealthInterval time.Duration `yaml:"health_interval"`
}

// RedisConfig enables the product cache and the outbox relay. An empty Addr
// turns both off.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Stream   string `yaml:"stream"`

	// StreamMaxLen trims the event stream approximately; zero keeps all.
	StreamMaxLen int64         `yaml:"stream_max_len"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

type OutboxConfig struct {
	Enabled      bool          `yaml:"enabled"`
	BatchSize    int           `yaml:"batch_size"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type WizardConfig struct {
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// RateLimitConfig is a per-client token bucket. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS       float64       `yaml:"rps"`
	Burst     int           `yaml:"burst"`
	ClientTTL time.Duration `yaml:"client_ttl"`
}

// AuthConfig enables bearer auth on write methods when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		GRPC: GRPCConfig{Addr: ":9090"},
		Spanner: SpannerConfig{
			Database:       "projects/test-project/instances/emulator-instance/databases/test-db",
			HealthInterval: 15 * time.Second,
		},
		Redis: RedisConfig{
			Stream:       "catalog-events",
			StreamMaxLen: 100000,
			CacheTTL:     5 * time.Minute,
		},
		Outbox: OutboxConfig{
			Enabled:      true,
			BatchSize:    100,
			PollInterval: 2 * time.Second,
		},
		Wizard: WizardConfig{
			SessionTTL:    30 * time.Minute,
			SweepInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			RPS:       20,
			Burst:     40,
			ClientTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the file named by CONFIG_PATH (default config.yaml).
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return LoadFrom(path)
}

// LoadFrom reads path on top of the defaults, applies environment overrides
// and validates the result. A missing file is not an error.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"HTTP_ADDR":        &c.HTTP.Addr,
		"GRPC_ADDR":        &c.GRPC.Addr,
		"SPANNER_DATABASE": &c.Spanner.Database,
		"REDIS_ADDR":       &c.Redis.Addr,
		"JWT_SECRET":       &c.Auth.JWTSecret,
		"LOG_LEVEL":        &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("OUTBOX_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: OUTBOX_ENABLED: %w", err)
		}
		c.Outbox.Enabled = b
	}
	return nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.GRPC.Addr == "" {
		errs = append(errs, errors.New("grpc.addr is required"))
	}
	if c.Spanner.Database == "" {
		errs = append(errs, errors.New("spanner.database is required"))
	}
	if c.Spanner.HealthInterval <= 0 {
		errs = append(errs, errors.New("spanner.health_interval must be positive"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if c.Redis.Addr != "" {
		if c.Redis.Stream == "" {
			errs = append(errs, errors.New("redis.stream is required when redis.addr is set"))
		}
		if c.Redis.CacheTTL <= 0 {
			errs = append(errs, errors.New("redis.cache_ttl must be positive"))
		}
	}
	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, errors.New("outbox.batch_size must be positive"))
	}
	if c.Outbox.PollInterval <= 0 {
		errs = append(errs, errors.New("outbox.poll_interval must be positive"))
	}
	if c.Wizard.SessionTTL <= 0 {
		errs = append(errs, errors.New("wizard.session_ttl must be positive"))
	}
	if c.Wizard.SweepInterval <= 0 {
		errs = append(errs, errors.New("wizard.sweep_interval must be positive"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values cannot be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.ClientTTL <= 0 {
		errs = append(errs, errors.New("rate_limit.client_ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
