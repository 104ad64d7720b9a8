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
	"github.com/Vibraneum/VedStack/internal/llm"
	"github.com/Vibraneum/VedStack/internal/notify"
	"github.com/Vibraneum/VedStack/internal/nutrition"
	"github.com/Vibraneum/VedStack/internal/router"
	"github.com/Vibraneum/VedStack/internal/session"
	"github.com/Vibraneum/VedStack/internal/storage"
	"github.com/Vibraneum/VedStack/internal/tracker"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	cfg := config.Load()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── NUTRITION TABLE ─────────────────────────
	table, err := nutrition.LoadTable(cfg.NutritionTablePath)
	if err != nil {
		log.Fatal("❌ Nutrition table load failed:", err)
	}

	// ───────────────────────── PIPELINE ─────────────────────────
	keywords := append(detect.DefaultKeywords(), cfg.ExtraKeywords...)
	detector := detect.NewDetector(keywords, table)

	keywordExtractor := extract.NewKeywordExtractor(table, cfg.EstimateProfile)

	var extractor extract.Extractor = keywordExtractor
	var photoExtractor extract.Extractor

	if cfg.ExtractorStrategy == "llm" || os.Getenv("GEMINI_API_KEY") != "" {
		delegated := extract.NewDelegatedExtractor(llm.NewGeminiClient(), cfg.LLMTimeout, cfg.EstimateProfile)
		photoExtractor = delegated
		if cfg.ExtractorStrategy == "llm" {
			extractor = delegated
		}
	}

	dedup := session.NewDeduplicator(cfg.DedupWindow, cfg.SessionTTL)

	// Evict stale session records in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if dropped := dedup.Sweep(time.Now()); dropped > 0 {
				log.Printf("Evicted %d stale sessions", dropped)
			}
		}
	}()

	// ───────────────────────── NOTIFICATIONS ─────────────────────────
	var notifier notify.Notifier = notify.NopNotifier{}
	switch {
	case cfg.SNSTopicARN != "":
		snsNotifier, err := notify.NewSNSNotifier(context.Background(), cfg.SNSTopicARN)
		if err != nil {
			log.Fatal("❌ SNS init failed:", err)
		}
		notifier = snsNotifier
		log.Println("✅ Notifications via SNS")
	case cfg.PokeAPIKey != "":
		notifier = notify.NewPokeClient(cfg.PokeAPIKey, cfg.PokeEndpoint)
		log.Println("✅ Notifications via Poke")
	default:
		log.Println("Note: notifications disabled")
	}

	// ───────────────────────── PHOTO STORAGE ─────────────────────────
	var photos *storage.R2Client
	if storage.Configured() {
		photos, err = storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		log.Println("✅ Photo storage enabled")
	}

	// ───────────────────────── SERVICE + ROUTES ─────────────────────────
	repo := tracker.NewPostgresRepository(pgDB)

	service := tracker.NewService(
		detector,
		extractor,
		table,
		dedup,
		repo,
		notifier,
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
	if photoExtractor != nil {
		service.WithPhotoExtractor(photoExtractor)
	}

	handler := tracker.NewHandler(service, photos)
	r := router.NewRouter(handler)

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 Food tracker API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
