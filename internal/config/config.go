package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendS3       Backend = "s3"
)

type Config struct {
	App      string
	LogLevel string
	Port     int
	Lambda   bool

	SlotName           string
	PostgresDSN        string
	PostgresMigrations string
	DBPath             string
	DBMigrations       string

	S3Bucket          string
	S3Prefix          string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	WriteKeyHash string
	CORSOrigins  []string
	SeedFile     string
	TimeZone     string

	WriterMaxRetries int
	WriterRetryDelay time.Duration
}

// Load reads the configuration from the environment. Outside Lambda the
// .env and .env.local files are loaded first when present.
func Load() (*Config, error) {
	lambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !lambda {
		_ = godotenv.Load(".env", ".env.local")
	}

	port, err := getEnvAsInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}
	retries, err := getEnvAsInt("WRITER_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	delay, err := time.ParseDuration(getEnv("WRITER_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITER_RETRY_DELAY: %w", err)
	}

	cfg := &Config{
		App:      strings.ToLower(getEnv("APP", "dev")),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     port,
		Lambda:   lambda,

		SlotName:           getEnv("ROSTER_SLOT", "@teams_data"),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		PostgresMigrations: getEnv("POSTGRES_MIGRATIONS_DIR", ""),
		DBPath:             getEnv("DB_PATH", ""),
		DBMigrations:       getEnv("DB_MIGRATIONS_DIR", ""),

		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),

		WriteKeyHash: getEnv("WRITE_KEY_HASH", ""),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "")),
		SeedFile:     getEnv("SEED_FILE", ""),
		TimeZone:     getEnv("TZ_NAME", ""),

		WriterMaxRetries: retries,
		WriterRetryDelay: delay,
	}
	return cfg, nil
}

// Backend picks the slot storage: Postgres, then SQLite, then S3, then memory.
func (c *Config) Backend() Backend {
	switch {
	case c.PostgresDSN != "":
		return BackendPostgres
	case c.DBPath != "":
		return BackendSQLite
	case c.S3Bucket != "":
		return BackendS3
	}
	return BackendMemory
}

func (c *Config) IsDev() bool {
	return c.App == "dev"
}

// Location resolves TZ_NAME for reading match times; empty means local time.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME: %w", err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
