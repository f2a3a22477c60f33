package admin

import (
	"context"
	"sync"

	"loyalty-sync/core/reconcile"
	"loyalty-sync/feature/turnovers"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// FailedQueue reads and drains the failed-turnover queue.
type FailedQueue interface {
	ReadFailed(ctx context.Context) ([]turnovers.Turnover, error)
	DrainFailed(ctx context.Context) ([]turnovers.Turnover, error)
}

// Retrier runs the failed-turnover retry flow.
type Retrier interface {
	RetryFailed(ctx context.Context) (*reconcile.Summary, error)
}

// Check tests one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// Health is the result of all checks.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Service backs the admin endpoints.
type Service struct {
	queue   FailedQueue
	retrier Retrier
	checks  map[string]Check
	logger  *zap.Logger
	retries singleflight.Group
}

// NewService creates the admin service.
func NewService(queue FailedQueue, retrier Retrier, checks map[string]Check, logger *zap.Logger) *Service {
	return &Service{queue: queue, retrier: retrier, checks: checks, logger: logger}
}

// Health runs every check concurrently.
func (s *Service) Health(ctx context.Context) Health {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	h := Health{Status: "ok", Checks: make(map[string]string, len(s.checks))}

	for name, check := range s.checks {
		g.Go(func() error {
			result := "ok"
			if err := check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			h.Checks[name] = result
			if result != "ok" {
				h.Status = "degraded"
			}
			return nil
		})
	}
	_ = g.Wait()

	return h
}

// ListFailed returns the queued turnovers.
func (s *Service) ListFailed(ctx context.Context) ([]turnovers.Turnover, error) {
	return s.queue.ReadFailed(ctx)
}

// ClearFailed empties the queue and returns how many entries were dropped.
// The count is exact: entries appended concurrently are either counted or kept.
func (s *Service) ClearFailed(ctx context.Context) (int, error) {
	items, err := s.queue.DrainFailed(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("Failed-turnover queue cleared by operator", zap.Int("dropped", len(items)))
	return len(items), nil
}

// Retry runs the retry flow. Concurrent calls share one run, so the queue is never drained twice.
func (s *Service) Retry(ctx context.Context) (*reconcile.Summary, error) {
	v, err, shared := s.retries.Do("retry", func() (any, error) {
		return s.retrier.RetryFailed(context.WithoutCancel(ctx))
	})
	if shared {
		s.logger.Info("Retry request joined a running retry")
	}
	summary, _ := v.(*reconcile.Summary)
	return summary, err
}
