package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Vibraneum/VedStack/internal/config"
	"github.com/Vibraneum/VedStack/internal/db"
	"github.com/Vibraneum/VedStack/internal/detect"
	"github.com/Vibraneum/VedStack/internal/extract"
	"github.com/Vibraneum/VedStack/internal/notify"
	"github.com/Vibraneum/VedStack/internal/nutrition"
	"github.com/Vibraneum/VedStack/internal/omi"
	"github.com/Vibraneum/VedStack/internal/session"
	"github.com/Vibraneum/VedStack/internal/tracker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🔄 Omi sync worker starting...")

	for _, k := range []string{"DATABASE_URL", "OMI_API_KEY"} {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	cfg := config.Load()

	// Database connection
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// Nutrition table + pipeline
	table, err := nutrition.LoadTable(cfg.NutritionTablePath)
	if err != nil {
		log.Fatal("❌ Nutrition table load failed:", err)
	}

	keywords := append(detect.DefaultKeywords(), cfg.ExtraKeywords...)

	service := tracker.NewService(
		detect.NewDetector(keywords, table),
		extract.NewKeywordExtractor(table, cfg.EstimateProfile),
		table,
		session.NewDeduplicator(cfg.DedupWindow, cfg.SessionTTL),
		tracker.NewPostgresRepository(pgDB),
		notify.NopNotifier{},
		tracker.MealHours{
			BreakfastStart: cfg.BreakfastStart,
			LunchStart:     cfg.LunchStart,
			SnackStart:     cfg.SnackStart,
			DinnerStart:    cfg.DinnerStart,
		},
		tracker.Targets{
			Calories: cfg.DailyCalorieTarget,
			Protein:  cfg.DailyProteinTarget,
		},
	)

	syncer := omi.NewSyncer(
		omi.NewClient(),
		omi.NewStateStore(pgDB),
		service,
		cfg.SyncUserID,
	)

	log.Printf("✅ Sync worker initialized, polling every %v. Press Ctrl+C to stop.", cfg.SyncInterval)

	// Process memories indefinitely
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := syncer.SyncOnce(context.Background()); err != nil {
			log.Printf("⚠️  Sync error: %v", err)
		}
	}
}
