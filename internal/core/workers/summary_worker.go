package workers

import (
	"context"
	"log"
	"time"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
)

type LogRepository interface {
	ListByDay(ctx context.Context, userID string, day time.Time) ([]*domain.LoggedItem, error)
}

type SummaryCache interface {
	SetDaySummary(ctx context.Context, userID string, day time.Time, summary *domain.DaySummary) error
}

type SummaryJob struct {
	UserID string
	Day    time.Time
}

// SummaryWorker recomputes a user's day summary in the background after a
// log mutation and warms the summary cache, so the next display refresh
// reads a precomputed aggregate.
type SummaryWorker struct {
	logRepo LogRepository
	cache   SummaryCache
	jobs    chan SummaryJob
}

func NewSummaryWorker(logRepo LogRepository, cache SummaryCache) *SummaryWorker {
	return &SummaryWorker{
		logRepo: logRepo,
		cache:   cache,
		jobs:    make(chan SummaryJob, 100),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Summary Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Summary Worker shutting down...")
				return
			}
		}
	}()
}

func (w *SummaryWorker) Enqueue(userID string, day time.Time) {
	select {
	case w.jobs <- SummaryJob{UserID: userID, Day: day}:
	default:
		log.Printf("Summary Worker queue full! Dropping job for user %s", userID)
	}
}

func (w *SummaryWorker) processJob(ctx context.Context, job SummaryJob) {
	if w.cache == nil {
		return
	}

	items, err := w.logRepo.ListByDay(ctx, job.UserID, job.Day)
	if err != nil {
		log.Printf("Worker Error fetching log for user %s: %v", job.UserID, err)
		return
	}

	summary := domain.BuildDaySummary(job.Day, items)

	if err := w.cache.SetDaySummary(ctx, job.UserID, job.Day, summary); err != nil {
		log.Printf("Worker Failed to cache summary for user %s: %v", job.UserID, err)
		return
	}

	log.Printf("Day summary refreshed for user %s on %s (%d items)",
		job.UserID, summary.Date, summary.ItemCount)
}
