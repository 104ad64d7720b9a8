package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Vibraneum/VedStack/internal/nutrition"
)

// Config is the env-driven surface of the tracker. Everything has a
// working default except DATABASE_URL, which the binaries check
// themselves.
type Config struct {
	Port        string
	DatabaseURL string

	DailyCalorieTarget float64
	DailyProteinTarget float64

	DedupWindow time.Duration
	SessionTTL  time.Duration

	// "keyword" (default) or "llm"
	ExtractorStrategy string
	LLMTimeout        time.Duration

	NutritionTablePath string
	ExtraKeywords      []string
	EstimateProfile    nutrition.Entry

	BreakfastStart int
	LunchStart     int
	SnackStart     int
	DinnerStart    int

	PokeAPIKey   string
	PokeEndpoint string
	SNSTopicARN  string

	SyncInterval time.Duration
	SyncUserID   string
}

func Load() *Config {
	return &Config{
		Port:        envStr("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		DailyCalorieTarget: envFloat("DAILY_CALORIE_TARGET", 3000),
		DailyProteinTarget: envFloat("DAILY_PROTEIN_TARGET", 120),

		DedupWindow: envDuration("DEDUP_WINDOW", 60*time.Second),
		SessionTTL:  envDuration("SESSION_TTL", 24*time.Hour),

		ExtractorStrategy: envStr("EXTRACTOR_STRATEGY", "keyword"),
		LLMTimeout:        envDuration("LLM_TIMEOUT", 30*time.Second),

		NutritionTablePath: os.Getenv("NUTRITION_TABLE_PATH"),
		ExtraKeywords:      envList("FOOD_KEYWORDS_EXTRA"),
		EstimateProfile: nutrition.Entry{
			Calories: envFloat("ESTIMATE_CALORIES", 400),
			Protein:  envFloat("ESTIMATE_PROTEIN", 20),
			Carbs:    envFloat("ESTIMATE_CARBS", 40),
			Fat:      envFloat("ESTIMATE_FAT", 15),
		},

		BreakfastStart: envInt("BREAKFAST_START_HOUR", 6),
		LunchStart:     envInt("LUNCH_START_HOUR", 11),
		SnackStart:     envInt("SNACK_START_HOUR", 16),
		DinnerStart:    envInt("DINNER_START_HOUR", 19),

		PokeAPIKey:   os.Getenv("POKE_API_KEY"),
		PokeEndpoint: os.Getenv("POKE_ENDPOINT"),
		SNSTopicARN:  os.Getenv("SNS_TOPIC_ARN"),

		SyncInterval: envDuration("SYNC_INTERVAL", 5*time.Minute),
		SyncUserID:   envStr("SYNC_USER_ID", "default_user"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
