package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"staffbot/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// StoreBackend selects where guild configs are persisted
type StoreBackend string

const (
	StoreBackendFile     StoreBackend = "file"
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendMemory   StoreBackend = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	AppID        string
	GuildID      string // Guild used by deploy-commands when --guild is omitted

	// Guild config store
	StoreBackend    StoreBackend
	GuildConfigPath string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Admin API
	AdminAPIAddr string

	// Bot behaviour
	SetupTimeout time.Duration
	EmbedFooter  string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// ValidateForBot checks the settings needed to connect to Discord and open the store
func (c *Config) ValidateForBot() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return c.ValidateStore()
}

// ValidateStore checks the settings needed by the selected store backend
func (c *Config) ValidateStore() error {
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.GuildConfigPath == "" {
			return fmt.Errorf("GUILD_CONFIG_PATH is required for the file store")
		}
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// load reads configuration from the environment, after applying a .env file if present
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to read .env file")
	}

	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		AppID:        os.Getenv("DISCORD_APP_ID"),
		GuildID:      os.Getenv("GUILD_ID"),

		StoreBackend:    StoreBackend(strings.ToLower(getEnvWithDefault("STORE_BACKEND", string(StoreBackendFile)))),
		GuildConfigPath: getEnvWithDefault("GUILD_CONFIG_PATH", "config/guildConfig.json"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		AdminAPIAddr: getEnvWithDefault("ADMIN_API_ADDR", "127.0.0.1:8899"),

		SetupTimeout: 15 * time.Minute,
		EmbedFooter:  getEnvWithDefault("EMBED_FOOTER", "Bounty County Roleplay"),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if timeout := os.Getenv("SETUP_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid SETUP_TIMEOUT %q", timeout)
		}
		config.SetupTimeout = parsed
	}

	if err := config.ValidateStore(); err != nil {
		return nil, err
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		StoreBackend: StoreBackendMemory,
		AdminAPIAddr: "127.0.0.1:0",
		SetupTimeout: 15 * time.Minute,
		EmbedFooter:  "Bounty County Roleplay",
		LogLevel:     "debug",
		LogFormat:    "text",
		Environment:  "test",
	}
}
