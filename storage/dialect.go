package storage

import (
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"vending-insights/config"
)

// dialect captures what differs between the SQL backends.
type dialect struct {
	driver      string
	placeholder func(n int) string
	schema      string
}

var postgresDialect = dialect{
	driver:      "postgres",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	schema: `
		CREATE TABLE IF NOT EXISTS products (
			id          VARCHAR(50)   PRIMARY KEY,
			name        VARCHAR(100)  NOT NULL,
			brand       VARCHAR(50)   NOT NULL,
			price       DOUBLE PRECISION NOT NULL DEFAULT 0,
			color       VARCHAR(20)   NOT NULL DEFAULT '#666666',
			specs       JSONB         NOT NULL DEFAULT '{}',
			performance JSONB         NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);
		CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);
	`,
}

var sqliteDialect = dialect{
	driver:      "sqlite",
	placeholder: func(int) string { return "?" },
	schema: `
		CREATE TABLE IF NOT EXISTS products (
			id          TEXT     PRIMARY KEY,
			name        TEXT     NOT NULL,
			brand       TEXT     NOT NULL,
			price       REAL     NOT NULL DEFAULT 0,
			color       TEXT     NOT NULL DEFAULT '#666666',
			specs       TEXT     NOT NULL DEFAULT '{}',
			performance TEXT     NOT NULL DEFAULT '{}',
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);
		CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);
	`,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgresDialect, nil
	case config.DriverSQLite:
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}
