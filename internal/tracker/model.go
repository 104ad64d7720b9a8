package tracker

import (
	"time"

	"github.com/Vibraneum/VedStack/internal/nutrition"
)

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealSnack     MealType = "Snack"
	MealDinner    MealType = "Dinner"
)

// MealHours are the hour-of-day boundaries for classifying a meal.
// Each range is half-open: 11:00:00 exactly is Lunch, not Breakfast.
type MealHours struct {
	BreakfastStart int // default 6
	LunchStart     int // default 11
	SnackStart     int // default 16
	DinnerStart    int // default 19
}

func DefaultMealHours() MealHours {
	return MealHours{BreakfastStart: 6, LunchStart: 11, SnackStart: 16, DinnerStart: 19}
}

// MealTypeAt classifies a timestamp into a meal slot.
func MealTypeAt(now time.Time, h MealHours) MealType {
	hour := now.Hour()
	switch {
	case hour >= h.BreakfastStart && hour < h.LunchStart:
		return MealBreakfast
	case hour >= h.LunchStart && hour < h.SnackStart:
		return MealLunch
	case hour >= h.SnackStart && hour < h.DinnerStart:
		return MealSnack
	default:
		return MealDinner
	}
}

// LogEntry is one accepted meal log, immutable once persisted.
type LogEntry struct {
	ID       string               `json:"id"`
	UserID   string               `json:"user_id"`
	LoggedAt time.Time            `json:"logged_at"`
	RawText  string               `json:"raw_text"`
	Items    []nutrition.FoodItem `json:"items"`
	Totals   nutrition.Totals     `json:"totals"`
	MealType MealType             `json:"meal_type"`
	Source   string               `json:"source"`
}

// Result statuses
const (
	StatusLogged    = "logged"
	StatusDuplicate = "duplicate"
	StatusIgnored   = "ignored"
)

// Ignore reasons
const (
	ReasonNoContent   = "no content"
	ReasonNotFood     = "not food related"
	ReasonNoFoodItems = "no food items detected"
)

// LogResult is the single outcome type handed back to the ingress layer.
type LogResult struct {
	Status        string    `json:"status"`
	Reason        string    `json:"reason,omitempty"`
	PreviousLogID string    `json:"previous_log_id,omitempty"`
	Entry         *LogEntry `json:"entry,omitempty"`
	Message       string    `json:"message,omitempty"`
	DailyTotal    float64   `json:"daily_total,omitempty"`
	Remaining     float64   `json:"remaining,omitempty"`
}

func ignored(reason string) *LogResult {
	return &LogResult{Status: StatusIgnored, Reason: reason}
}

// DailySummary aggregates one user's day for the summary endpoint.
type DailySummary struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Meals    int     `json:"meals"`
}
