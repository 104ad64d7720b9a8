package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vibraneum/VedStack/internal/detect"
	"github.com/Vibraneum/VedStack/internal/extract"
	"github.com/Vibraneum/VedStack/internal/notify"
	"github.com/Vibraneum/VedStack/internal/nutrition"
	"github.com/Vibraneum/VedStack/internal/session"
)

var noon = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	table := nutrition.NewTable(nutrition.DefaultEntries())
	detector := detect.NewDetector(detect.DefaultKeywords(), table)
	extractor := extract.NewKeywordExtractor(table, extract.DefaultEstimateProfile())
	dedup := session.NewDeduplicator(session.DefaultWindow, session.DefaultTTL)

	return NewService(
		detector,
		extractor,
		table,
		dedup,
		repo,
		notify.NopNotifier{},
		DefaultMealHours(),
		DefaultTargets(),
	)
}

func TestHandleUtteranceLogsMeal(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo)

	result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "I'm eating 2 eggs and dal", noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusLogged {
		t.Fatalf("expected logged, got %s (%s)", result.Status, result.Reason)
	}

	totals := result.Entry.Totals
	if totals.Calories != 370 {
		t.Errorf("expected 370 calories, got %v", totals.Calories)
	}
	if totals.Protein != 30 {
		t.Errorf("expected 30g protein, got %v", totals.Protein)
	}
	if totals.Carbs != 41.2 {
		t.Errorf("expected 41.2g carbs, got %v", totals.Carbs)
	}
	if totals.Fat != 10.8 {
		t.Errorf("expected 10.8g fat, got %v", totals.Fat)
	}

	if result.Entry.MealType != MealLunch {
		t.Errorf("expected Lunch at noon, got %s", result.Entry.MealType)
	}
	if len(repo.Entries()) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(repo.Entries()))
	}
}

func TestHandleUtteranceIgnoresNonFood(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo)

	result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "just finished my workout", noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusIgnored || result.Reason != ReasonNotFood {
		t.Fatalf("expected ignored/not food related, got %s/%s", result.Status, result.Reason)
	}
	if s.ActiveSessions() != 0 {
		t.Error("ignored utterance must leave dedup state untouched")
	}
	if len(repo.Entries()) != 0 {
		t.Error("ignored utterance must not be persisted")
	}
}

func TestHandleUtteranceIgnoresEmptyText(t *testing.T) {
	s := newTestService(NewInMemoryRepository())

	result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "   ", noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusIgnored || result.Reason != ReasonNoContent {
		t.Fatalf("expected ignored/no content, got %s/%s", result.Status, result.Reason)
	}
}

func TestHandleUtteranceDuplicateWithinWindow(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo)

	first, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 3 rotis", noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != StatusLogged {
		t.Fatalf("expected first call logged, got %s", first.Status)
	}

	second, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ATE 3 ROTIS", noon.Add(30*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Status != StatusDuplicate {
		t.Fatalf("expected duplicate, got %s", second.Status)
	}
	if second.PreviousLogID != first.Entry.ID {
		t.Errorf("expected previous log id %s, got %s", first.Entry.ID, second.PreviousLogID)
	}
	if len(repo.Entries()) != 1 {
		t.Fatalf("duplicate must not be persisted, have %d entries", len(repo.Entries()))
	}
}

func TestHandleUtteranceWindowReset(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo)

	for _, offset := range []time.Duration{0, 60 * time.Second} {
		result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 3 rotis", noon.Add(offset))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != StatusLogged {
			t.Fatalf("expected logged at offset %v, got %s", offset, result.Status)
		}
	}

	// Window now measures from the second call
	result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 3 rotis", noon.Add(90*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusDuplicate {
		t.Fatalf("expected duplicate inside reset window, got %s", result.Status)
	}
}

func TestHandleUtteranceDailyTotalAccumulates(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo)

	first, _ := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate dal", noon)
	if first.DailyTotal != 230 {
		t.Fatalf("expected daily total 230, got %v", first.DailyTotal)
	}

	second, _ := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 2 eggs", noon.Add(5*time.Minute))
	if second.DailyTotal != 370 {
		t.Fatalf("expected daily total 370, got %v", second.DailyTotal)
	}
	if second.Remaining != 3000-370 {
		t.Fatalf("expected remaining %v, got %v", 3000-370, second.Remaining)
	}
}

type failingRepository struct {
	*InMemoryRepository
	fail bool
}

func (r *failingRepository) Persist(ctx context.Context, entry *LogEntry) (string, error) {
	if r.fail {
		return "", errors.New("sheet write failed")
	}
	return r.InMemoryRepository.Persist(ctx, entry)
}

// A failed sink write must not advance the dedup window, so the same
// utterance can be retried.
func TestSinkFailureAllowsRetry(t *testing.T) {
	repo := &failingRepository{InMemoryRepository: NewInMemoryRepository(), fail: true}
	s := newTestService(repo)

	_, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 3 rotis", noon)
	if err == nil {
		t.Fatal("expected persist failure to propagate")
	}
	if s.ActiveSessions() != 0 {
		t.Fatal("dedup state advanced despite sink failure")
	}

	repo.fail = false
	result, err := s.HandleUtterance(context.Background(), "sess-1", "ved", "ate 3 rotis", noon.Add(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if result.Status != StatusLogged {
		t.Fatalf("retry must be accepted, got %s", result.Status)
	}
}

func TestMealTypeBoundaries(t *testing.T) {
	hours := DefaultMealHours()

	cases := []struct {
		hour, min int
		want      MealType
	}{
		{10, 59, MealBreakfast},
		{11, 0, MealLunch},
		{15, 59, MealLunch},
		{16, 0, MealSnack},
		{18, 59, MealSnack},
		{19, 0, MealDinner},
		{23, 30, MealDinner},
		{5, 0, MealDinner},
		{6, 0, MealBreakfast},
	}

	for _, c := range cases {
		at := time.Date(2025, 11, 10, c.hour, c.min, 0, 0, time.UTC)
		if got := MealTypeAt(at, hours); got != c.want {
			t.Errorf("MealTypeAt(%02d:%02d) = %s, want %s", c.hour, c.min, got, c.want)
		}
	}
}

func TestHandlePhotoRequiresExtractor(t *testing.T) {
	s := newTestService(NewInMemoryRepository())

	_, err := s.HandlePhoto(context.Background(), "ved", "lunch", "https://cdn.example/meal.jpg", noon)
	if err == nil {
		t.Fatal("expected error when photo extractor is not configured")
	}
}

type fixedExtractor struct {
	items []nutrition.FoodItem
}

func (f *fixedExtractor) Extract(ctx context.Context, text, imageURL string) []nutrition.FoodItem {
	return f.items
}

func TestHandlePhotoLogsMeal(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(repo).WithPhotoExtractor(&fixedExtractor{
		items: []nutrition.FoodItem{
			{Name: "thali", Quantity: 1, PerUnit: &nutrition.Entry{Calories: 800, Protein: 30, Carbs: 100, Fat: 25}},
		},
	})

	result, err := s.HandlePhoto(context.Background(), "ved", "", "https://cdn.example/meal.jpg", noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusLogged {
		t.Fatalf("expected logged, got %s", result.Status)
	}
	if result.Entry.Source != SourcePhoto {
		t.Errorf("expected photo source tag, got %s", result.Entry.Source)
	}
	if result.Entry.Totals.Calories != 800 {
		t.Errorf("expected 800 calories, got %v", result.Entry.Totals.Calories)
	}
}
