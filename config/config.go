package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StoreDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string

	ImportCSVPath   string
	RawSnapshotPath string

	CatalogURL   string
	CatalogPages int
	ChromeBin    string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	ReportPath   string
	ReportBrands []string
	CompareIDs   []string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "ai_retail_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./output/catalog.sqlite"),

		ImportCSVPath:   getEnv("IMPORT_CSV_PATH", ""),
		RawSnapshotPath: getEnv("RAW_SNAPSHOT_PATH", "./output/raw_products.csv"),

		CatalogURL:   getEnv("CATALOG_URL", ""),
		CatalogPages: getEnvInt("CATALOG_PAGES", 1),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		ReportPath:   getEnv("REPORT_PATH", ""),
		ReportBrands: getEnvList("REPORT_BRANDS"),
		CompareIDs:   getEnvList("COMPARE_IDS"),
	}
}

// DSN returns the connection string for the configured store driver.
func (c *Config) DSN() string {
	if c.StoreDriver == DriverSQLite {
		return c.SQLitePath
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
