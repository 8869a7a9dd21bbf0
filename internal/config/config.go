package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Seed     Seed     `mapstructure:"seed"`
	Client   Client   `mapstructure:"client"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Seed controls demo data creation on startup.
type Seed struct {
	Enabled bool `mapstructure:"enabled"`
}

// Client holds the configuration for the API client used by konnectctl.
type Client struct {
	BaseURL        string        `mapstructure:"base_url"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults and KONNECT_* variables still apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.SetEnvPrefix("konnect")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5004)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.dsn", "konnect_db.sqlite")
	v.SetDefault("database.max_open_conns", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 28)

	v.SetDefault("seed.enabled", true)

	v.SetDefault("client.base_url", "http://localhost:5004")
	v.SetDefault("client.rate_limit", 20)      // requests per second
	v.SetDefault("client.rate_limit_burst", 5) // burst size
	v.SetDefault("client.timeout", 10*time.Second)
}
