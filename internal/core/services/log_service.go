package services

import (
	"context"
	"time"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/workers"
)

// SummaryCache caches computed day summaries. A (nil, nil) Get result
// means a cache miss.
type SummaryCache interface {
	GetDaySummary(ctx context.Context, userID string, day time.Time) (*domain.DaySummary, error)
	SetDaySummary(ctx context.Context, userID string, day time.Time, summary *domain.DaySummary) error
	InvalidateDay(ctx context.Context, userID string, day time.Time) error
}

type LogService struct {
	repo   domain.LogRepository
	cache  SummaryCache
	worker *workers.SummaryWorker
}

func NewLogService(repo domain.LogRepository, cache SummaryCache, worker *workers.SummaryWorker) *LogService {
	return &LogService{
		repo:   repo,
		cache:  cache,
		worker: worker,
	}
}

type CreateItemInput struct {
	UserID    string
	Name      string
	Quantity  float64
	Unit      string
	MealSlot  domain.MealSlot
	LogDate   time.Time
	Nutrients nutrition.Profile
}

type UpdateItemInput struct {
	ID       string
	UserID   string
	Name     string
	MealSlot domain.MealSlot
	Version  int
}

type RescaleItemInput struct {
	ID          string
	UserID      string
	NewQuantity float64
	Version     int
}

type MultiplyItemInput struct {
	ID         string
	UserID     string
	Multiplier float64
	Version    int
}

func (s *LogService) Create(ctx context.Context, input CreateItemInput) (*domain.LoggedItem, error) {
	item, err := domain.NewLoggedItem(
		input.UserID, input.Name, input.Unit,
		input.Quantity, input.MealSlot, input.LogDate, input.Nutrients,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.refreshSummary(ctx, item.UserID, item.LogDate)

	return item, nil
}

func (s *LogService) GetByID(ctx context.Context, id string, userID string) (*domain.LoggedItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return item, nil
}

func (s *LogService) ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error) {
	return s.repo.ListByDay(ctx, userID, day)
}

// Update renames an item or moves it to another meal slot. Quantity and
// nutrients are deliberately untouchable here; they only change together
// via UpdateQuantity or ApplyMultiplier.
func (s *LogService) Update(ctx context.Context, input UpdateItemInput) (*domain.LoggedItem, error) {
	item, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && item.Version != input.Version {
		return nil, domain.ErrItemConflict
	}

	if err := item.Rename(input.Name, input.MealSlot); err != nil {
		return nil, err
	}

	item.Version++

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.refreshSummary(ctx, item.UserID, item.LogDate)

	return item, nil
}

// UpdateQuantity rescales an item's nutrient profile to a new quantity.
// An invalid quantity fails before anything is written, so the stored
// item keeps its prior state.
func (s *LogService) UpdateQuantity(ctx context.Context, input RescaleItemInput) (*domain.LoggedItem, error) {
	item, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && item.Version != input.Version {
		return nil, domain.ErrItemConflict
	}

	if err := item.Rescale(input.NewQuantity); err != nil {
		return nil, err
	}

	item.Version++

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.refreshSummary(ctx, item.UserID, item.LogDate)

	return item, nil
}

// ApplyMultiplier rescales an item by a direct ratio (quick portions).
func (s *LogService) ApplyMultiplier(ctx context.Context, input MultiplyItemInput) (*domain.LoggedItem, error) {
	item, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && item.Version != input.Version {
		return nil, domain.ErrItemConflict
	}

	if err := item.ApplyMultiplier(input.Multiplier); err != nil {
		return nil, err
	}

	item.Version++

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.refreshSummary(ctx, item.UserID, item.LogDate)

	return item, nil
}

func (s *LogService) Delete(ctx context.Context, id string, userID string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.UserID != userID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.refreshSummary(ctx, userID, item.LogDate)

	return nil
}

// DaySummary returns the aggregated totals and per-nutrient statuses for
// one calendar day, serving from the cache when it is warm.
func (s *LogService) DaySummary(ctx context.Context, userID string, day time.Time) (*domain.DaySummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDaySummary(ctx, userID, day); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := domain.BuildDaySummary(day, items)

	if s.cache != nil {
		_ = s.cache.SetDaySummary(ctx, userID, day, summary)
	}

	return summary, nil
}

// RangeSummaries computes one summary per day over [from, to], for weekly
// views. Days without items still produce a complete zero summary.
func (s *LogService) RangeSummaries(ctx context.Context, userID string, from, to time.Time) ([]*domain.DaySummary, error) {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)

	items, err := s.repo.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*domain.LoggedItem)
	for _, item := range items {
		key := item.LogDate.Format("2006-01-02")
		byDay[key] = append(byDay[key], item)
	}

	var summaries []*domain.DaySummary
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		summaries = append(summaries, domain.BuildDaySummary(day, byDay[day.Format("2006-01-02")]))
	}

	return summaries, nil
}

func (s *LogService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.LoggedItem, error) {
	return s.repo.GetChanges(ctx, userID, since)
}

func (s *LogService) refreshSummary(ctx context.Context, userID string, day time.Time) {
	if s.cache != nil {
		_ = s.cache.InvalidateDay(ctx, userID, day)
	}
	if s.worker != nil {
		s.worker.Enqueue(userID, day)
	}
}
