package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vibraneum/VedStack/internal/detect"
	"github.com/Vibraneum/VedStack/internal/extract"
	"github.com/Vibraneum/VedStack/internal/notify"
	"github.com/Vibraneum/VedStack/internal/nutrition"
	"github.com/Vibraneum/VedStack/internal/session"
)

const (
	SourceVoice = "Omi Voice (Real-time)"
	SourceSync  = "Omi Sync"
	SourcePhoto = "Photo Upload"
)

// Targets are the user's daily macro goals, used for the
// remaining-calories line in confirmations.
type Targets struct {
	Calories float64
	Protein  float64
}

func DefaultTargets() Targets {
	return Targets{Calories: 3000, Protein: 120}
}

// Service runs the full detect → extract → resolve → dedup → persist
// pipeline for one utterance.
type Service struct {
	detector       *detect.Detector
	extractor      extract.Extractor
	photoExtractor extract.Extractor
	table          *nutrition.Table
	dedup          *session.Deduplicator
	repo           Repository
	notifier       notify.Notifier
	hours          MealHours
	targets        Targets
}

func NewService(
	detector *detect.Detector,
	extractor extract.Extractor,
	table *nutrition.Table,
	dedup *session.Deduplicator,
	repo Repository,
	notifier notify.Notifier,
	hours MealHours,
	targets Targets,
) *Service {
	return &Service{
		detector:  detector,
		extractor: extractor,
		table:     table,
		dedup:     dedup,
		repo:      repo,
		notifier:  notifier,
		hours:     hours,
		targets:   targets,
	}
}

// WithPhotoExtractor enables photo meal logging; the extractor must be
// one that understands image references.
func (s *Service) WithPhotoExtractor(e extract.Extractor) *Service {
	s.photoExtractor = e
	return s
}

// HandleUtterance processes one spoken/typed utterance from the
// real-time webhook.
func (s *Service) HandleUtterance(ctx context.Context, sessionID, userID, text string, now time.Time) (*LogResult, error) {
	return s.HandleUtteranceFrom(ctx, sessionID, userID, text, SourceVoice, now)
}

// HandleUtteranceFrom is HandleUtterance with an explicit source tag,
// used by the sync worker.
func (s *Service) HandleUtteranceFrom(ctx context.Context, sessionID, userID, text, source string, now time.Time) (*LogResult, error) {
	if strings.TrimSpace(text) == "" {
		return ignored(ReasonNoContent), nil
	}

	if !s.detector.IsFoodMention(text) {
		return ignored(ReasonNotFood), nil
	}

	verdict := s.dedup.Check(sessionID, text, now)
	if !verdict.Accept {
		log.Printf("[%s] Duplicate detected, skipping", sessionID)
		return &LogResult{
			Status:        StatusDuplicate,
			Reason:        "already logged in last 60s",
			PreviousLogID: verdict.PreviousLogID,
		}, nil
	}

	items := s.extractor.Extract(ctx, text, "")
	if len(items) == 0 {
		// The keyword strategy cannot produce this after a positive
		// detection; delegated strategies still might.
		return ignored(ReasonNoFoodItems), nil
	}

	log.Printf("[%s] Extracted: %s", sessionID, describeItems(items))

	totals := s.table.Resolve(items)

	// Today's total before this meal; absence defaults to 0
	dailyBefore, err := s.repo.TodayTotal(ctx, userID, now)
	if err != nil {
		log.Printf("[%s] Failed to get daily total: %v", sessionID, err)
		dailyBefore = 0
	}

	entry := &LogEntry{
		UserID:   userID,
		LoggedAt: now,
		RawText:  text,
		Items:    items,
		Totals:   totals,
		MealType: MealTypeAt(now, s.hours),
		Source:   source,
	}

	logID, err := s.repo.Persist(ctx, entry)
	if err != nil {
		// Dedup state stays untouched so a retry of the same
		// utterance is not treated as a duplicate.
		return nil, fmt.Errorf("persist food log: %w", err)
	}

	s.dedup.Commit(sessionID, text, now, logID)

	dailyTotal := dailyBefore + totals.Calories
	remaining := s.targets.Calories - dailyTotal

	result := &LogResult{
		Status:     StatusLogged,
		Entry:      entry,
		Message:    spokenConfirmation(totals, dailyTotal, remaining),
		DailyTotal: dailyTotal,
		Remaining:  maxFloat(0, remaining),
	}

	s.sendNotification(ctx, entry, dailyTotal)

	log.Printf("[%s] Success: %s", sessionID, result.Message)
	return result, nil
}

// HandlePhoto logs a photographed meal. Photos skip the detector and
// the deduplicator: the upload itself is the signal that this is food,
// and each upload is a deliberate one-off action.
func (s *Service) HandlePhoto(ctx context.Context, userID, caption, imageURL string, now time.Time) (*LogResult, error) {
	if s.photoExtractor == nil {
		return nil, errors.New("photo logging is not configured")
	}

	items := s.photoExtractor.Extract(ctx, caption, imageURL)
	if len(items) == 0 {
		return ignored(ReasonNoFoodItems), nil
	}

	totals := s.table.Resolve(items)

	dailyBefore, err := s.repo.TodayTotal(ctx, userID, now)
	if err != nil {
		dailyBefore = 0
	}

	description := caption
	if description == "" {
		description = "Photo meal"
	}

	entry := &LogEntry{
		UserID:   userID,
		LoggedAt: now,
		RawText:  description,
		Items:    items,
		Totals:   totals,
		MealType: MealTypeAt(now, s.hours),
		Source:   SourcePhoto,
	}

	if _, err := s.repo.Persist(ctx, entry); err != nil {
		return nil, fmt.Errorf("persist food log: %w", err)
	}

	dailyTotal := dailyBefore + totals.Calories
	remaining := s.targets.Calories - dailyTotal

	result := &LogResult{
		Status:     StatusLogged,
		Entry:      entry,
		Message:    spokenConfirmation(totals, dailyTotal, remaining),
		DailyTotal: dailyTotal,
		Remaining:  maxFloat(0, remaining),
	}

	s.sendNotification(ctx, entry, dailyTotal)
	return result, nil
}

// DailySummary exposes the sink's per-day aggregate for the API.
func (s *Service) DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error) {
	return s.repo.DailySummary(ctx, userID, day)
}

// ActiveSessions reports how many sessions the deduplicator tracks.
func (s *Service) ActiveSessions() int {
	return s.dedup.Len()
}

// sendNotification is best-effort; failures are logged and swallowed.
func (s *Service) sendNotification(ctx context.Context, entry *LogEntry, dailyTotal float64) {
	remainingCal := s.targets.Calories - dailyTotal

	message := fmt.Sprintf(
		"🍽️ %s\n📊 %.0f cal | %.1fg protein\n\nToday's Progress:\n🎯 %.0f cal remaining\n💪 target %.0fg protein",
		describeItems(entry.Items),
		entry.Totals.Calories,
		entry.Totals.Protein,
		maxFloat(0, remainingCal),
		s.targets.Protein,
	)

	if err := s.notifier.Notify(ctx, "Food Logged!", message); err != nil {
		log.Printf("⚠️  Notification failed: %v", err)
	}
}

// spokenConfirmation is the short reply the wearable can read back.
func spokenConfirmation(totals nutrition.Totals, dailyTotal, remaining float64) string {
	msg := fmt.Sprintf(
		"Logged: %.0f cal, %.1fg protein. You're at %.0f cal today",
		totals.Calories, totals.Protein, dailyTotal,
	)
	if remaining > 0 {
		msg += fmt.Sprintf(", %.0f remaining.", remaining)
	} else {
		msg += ". Target hit!"
	}
	return msg
}

func describeItems(items []nutrition.FoodItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
