package config

import (
	"reflect"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MAX_CONCURRENCY", "")
	t.Setenv("REPORT_BRANDS", "")

	cfg := FromEnv()
	if cfg.StoreDriver != DriverPostgres {
		t.Errorf("StoreDriver = %q; want postgres", cfg.StoreDriver)
	}
	if cfg.MaxConcurrency != 3 {
		t.Errorf("MaxConcurrency = %d; want 3", cfg.MaxConcurrency)
	}
	if cfg.ReportBrands != nil {
		t.Errorf("ReportBrands = %v; want nil", cfg.ReportBrands)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/c.sqlite")
	t.Setenv("MAX_CONCURRENCY", "not-a-number")
	t.Setenv("REPORT_BRANDS", " HAHA, ,Boxly ")

	cfg := FromEnv()
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("StoreDriver = %q; want sqlite", cfg.StoreDriver)
	}
	if cfg.DSN() != "/tmp/c.sqlite" {
		t.Errorf("DSN = %q; want sqlite path", cfg.DSN())
	}
	if cfg.MaxConcurrency != 3 {
		t.Errorf("invalid int should fall back, got %d", cfg.MaxConcurrency)
	}
	if want := []string{"HAHA", "Boxly"}; !reflect.DeepEqual(cfg.ReportBrands, want) {
		t.Errorf("ReportBrands = %v; want %v", cfg.ReportBrands, want)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		StoreDriver: DriverPostgres, PostgresHost: "db", PostgresPort: "5432",
		PostgresUser: "u", PostgresPassword: "p", PostgresDB: "retail", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=retail sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q; want %q", got, want)
	}
}
