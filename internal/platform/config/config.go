package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Server captures the store server configuration.
type Server struct {
	Addr           string
	Backend        string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Log            Log
	Postgres       PostgresConfig
	Redis          RedisConfig
	Mongo          MongoConfig
	Kafka          KafkaConfig
}

// Log selects the slog handler.
type Log struct {
	Format string
	Level  string
}

// PostgresConfig holds the Postgres backend settings.
type PostgresConfig struct {
	URL          string
	Table        string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MongoConfig holds the Mongo backend settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// KafkaConfig enables submission notifications when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enricher captures the background host configuration.
type Enricher struct {
	Addr         string
	BackendURL   string
	RelayTimeout time.Duration
	Log          Log
	Identity     IdentityConfig
}

// IdentityConfig selects the identity provider. A token takes precedence over a
// static email; neither means no provider is available.
type IdentityConfig struct {
	Email    string
	Token    string
	TokenKey string
}

// Client captures the settings shared by the detector and dashboard CLIs.
type Client struct {
	EnricherURL string
	BackendURL  string
	Timeout     time.Duration
	Log         Log
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:           getEnv("FORMTRAIL_ADDR", ":3000"),
		Backend:        strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		Log:            logFromEnv(),
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Table:        getEnv("STORE_TABLE", "logs"),
			MaxOpenConns: getEnvInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "logs"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Mongo: MongoConfig{
			URI:        os.Getenv("MONGO_URI"),
			Database:   getEnv("MONGO_DATABASE", "form-submissions"),
			Collection: getEnv("STORE_TABLE", "logs"),
			Timeout:    getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "form-submissions"),
		},
	}
}

// EnricherFromEnv builds the background host configuration.
func EnricherFromEnv() Enricher {
	return Enricher{
		Addr:         getEnv("ENRICHER_ADDR", ":3001"),
		BackendURL:   getEnv("BACKEND_URL", "http://localhost:3000"),
		RelayTimeout: getEnvDuration("RELAY_TIMEOUT", 10*time.Second),
		Log:          logFromEnv(),
		Identity: IdentityConfig{
			Email:    os.Getenv("IDENTITY_EMAIL"),
			Token:    os.Getenv("IDENTITY_TOKEN"),
			TokenKey: os.Getenv("IDENTITY_TOKEN_KEY"),
		},
	}
}

// ClientFromEnv builds the CLI configuration; flags override these values.
func ClientFromEnv() Client {
	return Client{
		EnricherURL: getEnv("ENRICHER_URL", "http://localhost:3001"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3000"),
		Timeout:     getEnvDuration("CLIENT_TIMEOUT", 10*time.Second),
		Log:         Log{Format: getEnv("LOG_FORMAT", "text"), Level: getEnv("LOG_LEVEL", "warn")},
	}
}

func logFromEnv() Log {
	return Log{
		Format: getEnv("LOG_FORMAT", "json"),
		Level:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
