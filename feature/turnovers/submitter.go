package turnovers

import (
	"context"
	"fmt"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/queue"
	"loyalty-sync/core/utils"

	"go.uber.org/zap"
)

// BookPath is the partner endpoint booking turnovers (and thereby points).
const BookPath = "/turnovers/book"

// Poster is the part of the partner client the submitter needs.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// bookRequest is the body of one booking batch.
type bookRequest struct {
	Country   string     `json:"country"`
	TestMode  bool       `json:"testMode"`
	Turnovers []Turnover `json:"turnovers"`
}

// Report summarises one submission.
type Report struct {
	// Total is the number of turnovers handed to Submit.
	Total int `json:"total"`
	// Batches is the number of batches formed.
	Batches int `json:"batches"`
	// SucceededBatches is the number of batches the partner accepted.
	SucceededBatches int `json:"succeededBatches"`
	// FailedBatches is the number of batches moved to the failed queue.
	FailedBatches int `json:"failedBatches"`
	// Submitted is the number of turnovers booked.
	Submitted int `json:"submitted"`
	// Failed is the number of turnovers moved to the failed queue.
	Failed int `json:"failed"`
	// Errors holds one message per failed batch.
	Errors []string `json:"errors,omitempty"`
}

// NothingSucceeded reports whether there was work and none of it was booked.
func (r *Report) NothingSucceeded() bool {
	return r.Batches > 0 && r.SucceededBatches == 0
}

// Options configures a Submitter.
type Options struct {
	Country   string
	TestMode  bool
	BatchSize int
}

// Submitter books turnovers in bounded batches and parks rejected batches in a durable queue.
type Submitter struct {
	api    Poster
	failed queue.Queue[Turnover]
	opts   Options
	logger *zap.Logger
}

// NewSubmitter creates a submitter. A non-positive batch size books everything at once.
func NewSubmitter(api Poster, failed queue.Queue[Turnover], opts Options, logger *zap.Logger) *Submitter {
	return &Submitter{api: api, failed: failed, opts: opts, logger: logger}
}

// Submit books turnovers batch by batch, sequentially.
//
// A batch the partner rejects (network failure or non-2xx) is appended to the failed queue and
// the next batch is attempted; one bad batch never affects its siblings. When ctx ends, the
// batches not yet attempted are queued as well. The only error returned is a queue write
// failure (apperr.ErrQueue), because then rejected turnovers would be lost.
func (s *Submitter) Submit(ctx context.Context, items []Turnover) (*Report, error) {
	batches := utils.Chunk(items, s.opts.BatchSize)
	report := &Report{Total: len(items), Batches: len(batches)}

	for i, batch := range batches {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err := s.park(ctx, report, i, batch, ctxErr); err != nil {
				return report, err
			}
			continue
		}

		body := bookRequest{Country: s.opts.Country, TestMode: s.opts.TestMode, Turnovers: batch}
		if err := s.api.Post(ctx, BookPath, body, nil); err != nil {
			if qErr := s.park(ctx, report, i, batch, err); qErr != nil {
				return report, qErr
			}
			continue
		}

		report.SucceededBatches++
		report.Submitted += len(batch)
		s.logger.Debug("Turnover batch booked", zap.Int("batch", i+1), zap.Int("turnovers", len(batch)))
	}

	return report, nil
}

// park moves a rejected batch into the failed queue and records it in the report.
func (s *Submitter) park(ctx context.Context, report *Report, index int, batch []Turnover, cause error) error {
	s.logger.Warn("Turnover batch rejected, queued for retry",
		zap.Int("batch", index+1),
		zap.Int("turnovers", len(batch)),
		zap.Int("status", apperr.StatusOf(cause)),
		zap.Error(cause),
	)

	// The queue write must not be skipped because the run context ended
	if err := s.failed.Append(context.WithoutCancel(ctx), batch); err != nil {
		return err
	}

	report.FailedBatches++
	report.Failed += len(batch)
	report.Errors = append(report.Errors, fmt.Sprintf("batch %d: %v", index+1, cause))
	return nil
}

// ReadFailed returns every queued turnover.
func (s *Submitter) ReadFailed(ctx context.Context) ([]Turnover, error) {
	return s.failed.ReadAll(ctx)
}

// ClearFailed empties the failed queue.
func (s *Submitter) ClearFailed(ctx context.Context) error {
	return s.failed.Clear(ctx)
}

// DrainFailed empties the failed queue and returns exactly the turnovers it removed.
func (s *Submitter) DrainFailed(ctx context.Context) ([]Turnover, error) {
	return s.failed.Drain(ctx)
}
