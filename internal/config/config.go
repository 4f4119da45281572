package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ZENITH"

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	HTTPHost              string        `mapstructure:"HTTP_HOST"`
	HTTPPort              string        `mapstructure:"HTTP_PORT"`
	HTTPReadHeaderTimeout time.Duration `mapstructure:"HTTP_READ_HEADER_TIMEOUT"`
	MaxRequestsPerMin     int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage driver: memory, sqlite or redis.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	BookingsKey   string `mapstructure:"BOOKINGS_KEY"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// IDGenerator: random or sequential.
	IDGenerator string        `mapstructure:"ID_GENERATOR"`
	SubmitDelay time.Duration `mapstructure:"SUBMIT_DELAY"`
	AuthDelay   time.Duration `mapstructure:"AUTH_DELAY"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
}

var ErrUnknownDriver = errors.New("unknown storage driver")

// Load reads config.yaml from path (or from "." and "./config" when path is
// empty) and applies ZENITH_* environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := conf.validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "localhost")
	v.SetDefault("HTTP_PORT", "8092")
	v.SetDefault("HTTP_READ_HEADER_TIMEOUT", 20*time.Second)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", defaultSQLitePath())
	v.SetDefault("BOOKINGS_KEY", "zenith-bookings")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ID_GENERATOR", "random")
	v.SetDefault("SUBMIT_DELAY", 2*time.Second)
	v.SetDefault("AUTH_DELAY", 1500*time.Millisecond)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "info@zenithcleaning.com")
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("storage driver %q: %w", c.StorageDriver, ErrUnknownDriver)
	}

	switch c.IDGenerator {
	case "random", "sequential":
	default:
		return fmt.Errorf("unknown id generator %q", c.IDGenerator)
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookings.db"
	}

	return filepath.Join(home, ".config", "zenith", "bookings.db")
}
