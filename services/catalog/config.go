package main

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment
type Config struct {
	Port string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string

	// Schema bootstrap retry policy
	DBInitRetries int
	DBInitDelay   time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	OTelEnabled  bool
	OTLPEndpoint string
	ServiceName  string
}

// LoadConfig reads .env (when present) and then the process environment
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseName:     getEnv("DATABASE_NAME", "inventory_db"),
		DBInitRetries:    getEnvInt("DB_INIT_RETRIES", 5),
		DBInitDelay:      getEnvDuration("DB_INIT_DELAY", 5*time.Second),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		CacheTTL:         getEnvDuration("CACHE_TTL", 30*time.Second),
		OTelEnabled:      getEnvBool("OTEL_ENABLED", true),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		ServiceName:      getEnv("SERVICE_NAME", "catalog-service"),
	}
}

// PoolDSN is the pgx connection string
func (c Config) PoolDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DatabaseUser, c.DatabasePassword),
		Host:     net.JoinHostPort(c.DatabaseHost, c.DatabasePort),
		Path:     "/" + c.DatabaseName,
		RawQuery: "sslmode=disable&pool_max_conns=25&pool_min_conns=0",
	}
	return dsn.String()
}

// SQLDSN is the lib/pq keyword/value connection string
func (c Config) SQLDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dsnValue(c.DatabaseHost),
		dsnValue(c.DatabasePort),
		dsnValue(c.DatabaseUser),
		dsnValue(c.DatabasePassword),
		dsnValue(c.DatabaseName),
	)
}

// dsnValue quotes v for lib/pq when it is empty or holds special characters
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
