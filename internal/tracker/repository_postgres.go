package tracker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Persist one accepted meal log
// --------------------------------------------------
func (r *PostgresRepository) Persist(ctx context.Context, entry *LogEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	items, err := json.Marshal(entry.Items)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO food_log (
			id,
			user_id,
			logged_at,
			description,
			items,
			calories,
			protein_g,
			carbs_g,
			fat_g,
			meal_type,
			source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.LoggedAt,
		entry.RawText,
		items,
		entry.Totals.Calories,
		entry.Totals.Protein,
		entry.Totals.Carbs,
		entry.Totals.Fat,
		string(entry.MealType),
		entry.Source,
	)
	if err != nil {
		return "", err
	}

	return entry.ID, nil
}

// --------------------------------------------------
// Today's calorie total for one user
// --------------------------------------------------
func (r *PostgresRepository) TodayTotal(ctx context.Context, userID string, day time.Time) (float64, error) {
	start, end := dayBounds(day)

	query := `
		SELECT COALESCE(SUM(calories), 0)
		FROM food_log
		WHERE user_id = $1
		  AND logged_at >= $2
		  AND logged_at < $3
	`

	var total float64
	err := r.db.QueryRow(ctx, query, userID, start, end).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --------------------------------------------------
// Full macro summary for one user's day
// --------------------------------------------------
func (r *PostgresRepository) DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error) {
	start, end := dayBounds(day)

	query := `
		SELECT
			COALESCE(SUM(calories), 0),
			COALESCE(SUM(protein_g), 0),
			COALESCE(SUM(carbs_g), 0),
			COALESCE(SUM(fat_g), 0),
			COUNT(*)
		FROM food_log
		WHERE user_id = $1
		  AND logged_at >= $2
		  AND logged_at < $3
	`

	summary := &DailySummary{}
	err := r.db.QueryRow(ctx, query, userID, start, end).Scan(
		&summary.Calories,
		&summary.Protein,
		&summary.Carbs,
		&summary.Fat,
		&summary.Meals,
	)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}
