package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// FOOD LOG
	// -------------------------------
	foodLogSQL := `
		CREATE TABLE IF NOT EXISTS food_log (
			id UUID PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			logged_at TIMESTAMPTZ NOT NULL,
			description TEXT NOT NULL,
			items JSONB NOT NULL,
			calories DOUBLE PRECISION NOT NULL,
			protein_g DOUBLE PRECISION NOT NULL,
			carbs_g DOUBLE PRECISION NOT NULL,
			fat_g DOUBLE PRECISION NOT NULL,
			meal_type VARCHAR(20) NOT NULL,
			source VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, foodLogSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_food_log_user_day
		ON food_log (user_id, logged_at)
	`
	if _, err := db.Exec(ctx, indexSQL); err != nil {
		return err
	}

	// -------------------------------
	// OMI SYNC STATE
	// -------------------------------
	omiSyncedSQL := `
		CREATE TABLE IF NOT EXISTS omi_synced (
			memory_id VARCHAR(255) PRIMARY KEY,
			synced_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, omiSyncedSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
