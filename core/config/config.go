// Package config loads service configuration from defaults, an optional
// YAML file, a .env file and SCHEDULER_* environment variables, in that
// order of precedence (later wins).
package config

import (
	"fmt"
	"strings"
	"time"

	"meeting-scheduler/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SCHEDULER"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

func (s ServerConfig) Address() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in minutes
	ConnectTimeout  int    `mapstructure:"connect_timeout"`   // in seconds
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QueueConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Queue       string `mapstructure:"queue"`
	MaxRetry    int    `mapstructure:"max_retry"`
}

// StorageConfig controls the S3 archive of scheduling run reports.
type StorageConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// AuthConfig guards the scheduling trigger. Empty JWTSecret disables the guard.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type SchedulingConfig struct {
	OpeningHour  float64       `mapstructure:"opening_hour"`
	ClosingHour  float64       `mapstructure:"closing_hour"`
	StepHours    float64       `mapstructure:"step_hours"`
	RunTimeout   time.Duration `mapstructure:"run_timeout"`
	RunStatusTTL time.Duration `mapstructure:"run_status_ttl"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8455)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "meeting_scheduler")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)
	v.SetDefault("database.max_open_conns", constants.DatabaseMaxOpenConns)
	v.SetDefault("database.max_idle_conns", constants.DatabaseMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", constants.DatabaseConnMaxLifetime)
	v.SetDefault("database.connect_timeout", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.queue", "scheduling")
	v.SetDefault("queue.max_retry", 0)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.prefix", "scheduling-runs")
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("scheduling.opening_hour", constants.DefaultOpeningHour)
	v.SetDefault("scheduling.closing_hour", constants.DefaultClosingHour)
	v.SetDefault("scheduling.step_hours", constants.DefaultStepHours)
	v.SetDefault("scheduling.run_timeout", constants.DefaultRunTimeout)
	v.SetDefault("scheduling.run_status_ttl", constants.DefaultRunStatusTTL)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults are static; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration. configFile may be empty, in which case
// ./config.yaml is used when present. A missing .env file is not an error.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/meeting-scheduler")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	s := c.Scheduling
	if s.StepHours <= 0 {
		return fmt.Errorf("invalid config: scheduling.step_hours must be positive, got %v", s.StepHours)
	}
	if s.OpeningHour < 0 || s.ClosingHour > 24 {
		return fmt.Errorf("invalid config: scheduling window %v-%v is outside 0-24", s.OpeningHour, s.ClosingHour)
	}
	if s.ClosingHour <= s.OpeningHour {
		return fmt.Errorf("invalid config: scheduling.closing_hour (%v) must be after opening_hour (%v)", s.ClosingHour, s.OpeningHour)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("invalid config: storage.bucket is required when storage is enabled")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid config: server.port must be positive")
	}
	return nil
}
