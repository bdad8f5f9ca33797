package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	Port         string
	ApiKey       string
	RedisAddr    string
	DatabaseFile string
	ConfigFile   string
)

// Tunables are the non-secret knobs, loaded from an optional YAML file.
type Tunables struct {
	MaxSessions         int `yaml:"maxSessions"`
	MessageHistoryLimit int `yaml:"messageHistoryLimit"`
	SubscriberLimit     int `yaml:"subscriberLimit"`
	ShutdownTimeoutSecs int `yaml:"shutdownTimeoutSeconds"`

	RedisPoolSize     int `yaml:"redisPoolSize"`
	RedisMinIdleConns int `yaml:"redisMinIdleConns"`
	RedisMaxRetries   int `yaml:"redisMaxRetries"`
}

var Limits = Tunables{
	MaxSessions:         50,
	MessageHistoryLimit: 100,
	SubscriberLimit:     200,
	ShutdownTimeoutSecs: 10,

	RedisPoolSize:     10,
	RedisMinIdleConns: 5,
	RedisMaxRetries:   5,
}

func init() {
	// Loads .env only when present, for local development.
	_ = godotenv.Load()

	Port = getEnv("PORT", "7000")
	ApiKey = os.Getenv("API_KEY") // empty means the API runs open
	RedisAddr = getEnv("REDIS_HOST", "localhost:6379")
	DatabaseFile = getEnv("DATABASE_FILE", "channelgate.db")
	ConfigFile = os.Getenv("CONFIG_FILE") // optional

	if ConfigFile != "" {
		if err := loadTunables(ConfigFile, &Limits); err != nil {
			log.Fatalf("Failed to load config file %s: %v", ConfigFile, err)
		}
	}
}

func (t Tunables) ShutdownTimeout() time.Duration {
	return time.Duration(t.ShutdownTimeoutSecs) * time.Second
}

func loadTunables(path string, t *Tunables) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, t)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
