// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	Server   ServerConfig
	Download DownloadConfig
	Google   GoogleConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	APIKeys         []string
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// DownloadConfig contains media acquisition configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DownloadConfig struct {
	TempDir            string
	YtdlpPath          string
	Timeout            time.Duration
	MaxHeight          int
	PreferredContainer string
}

// GoogleConfig contains OAuth client configuration for the Drive and
// YouTube upload targets.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// DSN returns the postgres connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.apikeys", []string{})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "directtoyt")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Download
	viper.SetDefault("download.tempdir", filepath.Join(os.TempDir(), "directtoyt"))
	viper.SetDefault("download.ytdlppath", "yt-dlp")
	viper.SetDefault("download.timeout", 15*time.Minute)
	viper.SetDefault("download.maxheight", 360)
	viper.SetDefault("download.preferredcontainer", "mp4")

	// Google OAuth
	viper.SetDefault("google.clientid", os.Getenv("GOOGLE_CLIENT_ID"))
	viper.SetDefault("google.clientsecret", os.Getenv("GOOGLE_CLIENT_SECRET"))
	viper.SetDefault("google.redirecturl", "http://localhost:5000/auth/google/callback")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
