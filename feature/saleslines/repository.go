package saleslines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/database"

	"go.uber.org/zap"
)

// Repository reads sales lines from the sales database.
type Repository struct {
	connector     database.Connector
	view          string
	customerTable string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewRepository creates a repository over the view and customer table named in cfg.
func NewRepository(connector database.Connector, cfg database.Config, logger *zap.Logger) *Repository {
	return &Repository{
		connector:     connector,
		view:          cfg.SaleslineView,
		customerTable: cfg.CustomerTable,
		timeout:       cfg.Timeout(),
		logger:        logger,
	}
}

// FetchYesterday returns yesterday's sales lines of customers in the local loyalty roster.
// The connection is opened for this call only and released on every exit path.
func (r *Repository) FetchYesterday(ctx context.Context) (lines []SalesLine, err error) {
	db, err := r.connector.Open(ctx)
	if err != nil {
		if !errors.Is(err, apperr.ErrConnection) {
			err = apperr.Connection("open sales database", err)
		}
		return nil, err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			r.logger.Warn("Failed to close sales database connection", zap.Error(closeErr))
		}
	}()

	queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Inner join: lines of customers missing from the roster never come back
	query := fmt.Sprintf(
		"SELECT s.* FROM %s s JOIN %s c ON s.CUSTACCOUNT = c.customerId",
		db.Statement.Quote(r.view), db.Statement.Quote(r.customerTable),
	)

	var rows []salesRow
	if err := db.WithContext(queryCtx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, apperr.Query("fetch yesterday saleslines", err)
	}

	lines = make([]SalesLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toSalesLine())
	}

	r.logger.Debug("Fetched saleslines", zap.Int("count", len(lines)), zap.String("view", r.view))
	return lines, nil
}
