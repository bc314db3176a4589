// Package pgtest starts a migrated PostgreSQL container for integration tests.
package pgtest

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
)

// Tables lists every table created by the migrations, for TRUNCATE between tests.
const Tables = "orders, order_items, payment_transactions, delivery_assignments, driver_profiles"

// Database is a running container together with a migrated connection.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine, applies the embedded migrations and opens a GORM
// connection with error translation enabled, as the service does in production.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	if err = postgres_adapter.Migrate(dsn); err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties all tables and resets their sequences.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + Tables + " RESTART IDENTITY CASCADE").Error
}

// Terminate closes the connection pool and stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}
