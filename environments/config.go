package environments

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Events   EventsConfig
	Message  MessageConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// EventsConfig configures the ops webhook that receives mutation events.
// An empty URL disables eventing entirely.
type EventsConfig struct {
	WebhookURL string
	AuthKey    string
	Timeout    time.Duration
}

type MessageConfig struct {
	MaxContentLength int
}

type AuthConfig struct {
	AdminAPIKey string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "outreach"),
			Password: GetEnv("DB_PASSWORD", "outreach123"),
			DBName:   GetEnv("DB_NAME", "outreach_console"),
		},
		Cache: CacheConfig{
			Host:     GetEnv("CACHE_HOST", "localhost"),
			Port:     GetEnv("CACHE_PORT", "6379"),
			Password: GetEnv("CACHE_PASSWORD", ""),
			DB:       GetEnvAsInt("CACHE_DB", 0),
		},
		Events: EventsConfig{
			WebhookURL: GetEnv("EVENTS_WEBHOOK_URL", ""),
			AuthKey:    GetEnv("EVENTS_WEBHOOK_AUTH_KEY", ""),
			Timeout:    time.Duration(GetEnvAsInt("EVENTS_WEBHOOK_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Message: MessageConfig{
			MaxContentLength: GetEnvAsInt("MESSAGE_MAX_CONTENT_LENGTH", 5000),
		},
		Auth: AuthConfig{
			AdminAPIKey: GetEnv("ADMIN_API_KEY", ""),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
