package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Clinic    ClinicConfig    `mapstructure:"clinic"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	Dir        string `mapstructure:"dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type ClinicConfig struct {
	DefaultDoctorEmail string `mapstructure:"default_doctor_email"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// envOverrides are the deployment knobs that may be set without a config
// file, prefixed P360_ (e.g. P360_PORT, P360_JWT_SECRET).
type envOverrides struct {
	Port          int    `envconfig:"PORT"`
	JWTSecret     string `envconfig:"JWT_SECRET"`
	StorageDriver string `envconfig:"STORAGE_DRIVER"`
	StorageDir    string `envconfig:"STORAGE_DIR"`
	SQLitePath    string `envconfig:"SQLITE_PATH"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("storage.driver", StorageDriverFile)
	viper.SetDefault("storage.dir", "data")
	viper.SetDefault("storage.sqlite_path", "data/patient360.db")
	viper.SetDefault("jwt.secret", "dev-only-secret")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("clinic.default_doctor_email", "ahmed@clinic.com")
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)
}

// Load reads config.yaml (working dir or ./config), falling back to
// defaults when absent, then applies environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("p360", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	applyOverrides(&cfg, env)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyOverrides(cfg *Config, env envOverrides) {
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.JWTSecret != "" {
		cfg.JWT.Secret = env.JWTSecret
	}
	if env.StorageDriver != "" {
		cfg.Storage.Driver = env.StorageDriver
	}
	if env.StorageDir != "" {
		cfg.Storage.Dir = env.StorageDir
	}
	if env.SQLitePath != "" {
		cfg.Storage.SQLitePath = env.SQLitePath
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}

func validate(cfg *Config) error {
	switch cfg.Storage.Driver {
	case StorageDriverFile, StorageDriverSQLite, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry must be positive")
	}
	return nil
}
