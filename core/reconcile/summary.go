package reconcile

import (
	"time"

	"loyalty-sync/feature/turnovers"

	"go.uber.org/zap"
)

// Summary counts what a run fetched, filtered and booked.
type Summary struct {
	RunID string `json:"runId"`
	Mode  string `json:"mode"`

	RemoteCustomers int `json:"remoteCustomers"`
	NewCustomers    int `json:"newCustomers"`

	Lines         int `json:"lines"`
	EnrolledLines int `json:"enrolledLines"`
	ProductCodes  int `json:"productCodes"`

	EligibleProducts     int `json:"eligibleProducts"`
	FailedProductBatches int `json:"failedProductBatches"`
	MatchedLines         int `json:"matchedLines"`

	// Queued and Duplicates are only set by the retry flow.
	Queued     int `json:"queued"`
	Duplicates int `json:"duplicates"`

	Turnovers  int               `json:"turnovers"`
	Submission *turnovers.Report `json:"submission,omitempty"`

	Duration time.Duration `json:"duration"`
}

// Fields renders the summary for structured logging.
func (s *Summary) Fields() []zap.Field {
	fields := []zap.Field{
		zap.String("mode", s.Mode),
		zap.Int("remote_customers", s.RemoteCustomers),
		zap.Int("new_customers", s.NewCustomers),
		zap.Int("lines", s.Lines),
		zap.Int("enrolled_lines", s.EnrolledLines),
		zap.Int("product_codes", s.ProductCodes),
		zap.Int("eligible_products", s.EligibleProducts),
		zap.Int("failed_product_batches", s.FailedProductBatches),
		zap.Int("matched_lines", s.MatchedLines),
		zap.Int("queued", s.Queued),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("turnovers", s.Turnovers),
		zap.Duration("duration", s.Duration),
	}
	if r := s.Submission; r != nil {
		fields = append(fields,
			zap.Int("batches", r.Batches),
			zap.Int("succeeded_batches", r.SucceededBatches),
			zap.Int("failed_batches", r.FailedBatches),
			zap.Int("submitted", r.Submitted),
			zap.Int("failed", r.Failed),
		)
	}
	return fields
}
