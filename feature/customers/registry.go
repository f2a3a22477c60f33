package customers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RosterPath is the partner endpoint listing participating customers.
const RosterPath = "/masterdata/participatingcustomers/get"

// insertBatchSize keeps one INSERT under SQL Server's 2100 parameter limit (4 columns each).
const insertBatchSize = 500

// Getter is the part of the partner client the registry needs.
type Getter interface {
	Get(ctx context.Context, path string, out any) error
}

// Registry fetches the enrolled roster from the partner and mirrors it into the local cache.
type Registry struct {
	api       Getter
	connector database.Connector
	table     string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRegistry creates a registry writing into the customer table named in cfg.
func NewRegistry(api Getter, connector database.Connector, cfg database.Config, logger *zap.Logger) *Registry {
	return &Registry{
		api:       api,
		connector: connector,
		table:     cfg.CustomerTable,
		timeout:   cfg.Timeout(),
		logger:    logger,
	}
}

// FetchEnrolled returns the partner's current roster. Entries without a customer id are dropped.
// There is no retry; failures are apperr.ErrUpstream.
func (r *Registry) FetchEnrolled(ctx context.Context) ([]Customer, error) {
	var body json.RawMessage
	if err := r.api.Get(ctx, RosterPath, &body); err != nil {
		return nil, err
	}

	remote, err := decodeRoster(body)
	if err != nil {
		return nil, apperr.Upstream("decode participating customers", 0, err)
	}

	customers := make([]Customer, 0, len(remote))
	skipped := 0
	for _, rc := range remote {
		c := rc.toCustomer()
		if c.CustomerID == "" {
			skipped++
			continue
		}
		customers = append(customers, c)
	}

	if skipped > 0 {
		r.logger.Warn("Skipped roster entries without customer id", zap.Int("count", skipped))
	}
	r.logger.Debug("Fetched enrolled customers", zap.Int("count", len(customers)))
	return customers, nil
}

// ReadCache returns every customer in the local cache.
func (r *Registry) ReadCache(ctx context.Context) ([]Customer, error) {
	var cached []Customer
	err := r.withDB(ctx, func(db *gorm.DB) error {
		if err := db.Table(r.table).Find(&cached).Error; err != nil {
			return apperr.Query("read customer cache", err)
		}
		return nil
	})
	return cached, err
}

// SyncNew inserts the remote customers missing from the local cache and returns how many were
// inserted. Existing rows are never updated or deleted. Calling it twice with the same roster
// inserts nothing the second time.
func (r *Registry) SyncNew(ctx context.Context, remote []Customer) (int, error) {
	inserted := 0
	err := r.withDB(ctx, func(db *gorm.DB) error {
		var cachedIDs []string
		if err := db.Table(r.table).Pluck("customerId", &cachedIDs).Error; err != nil {
			return apperr.Query("read customer cache", err)
		}

		missing := Difference(remote, cachedIDs)
		if len(missing) == 0 {
			return nil
		}

		// Multi-row INSERTs in one transaction, never row by row
		if err := db.Table(r.table).CreateInBatches(&missing, insertBatchSize).Error; err != nil {
			return apperr.Query("bulk insert customers", err)
		}

		inserted = len(missing)
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Customer cache synced", zap.Int("remote", len(remote)), zap.Int("inserted", inserted))
	return inserted, nil
}

// withDB opens a scoped connection, runs fn with the query timeout applied, and releases the
// connection on every exit path.
func (r *Registry) withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := r.connector.Open(ctx)
	if err != nil {
		if !errors.Is(err, apperr.ErrConnection) {
			err = apperr.Connection("open customer cache", err)
		}
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			r.logger.Warn("Failed to close customer cache connection", zap.Error(closeErr))
		}
	}()

	queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return fn(db.WithContext(queryCtx))
}

// Difference returns the customers of remote whose id is not in cachedIDs, without duplicates
// and in roster order.
func Difference(remote []Customer, cachedIDs []string) []Customer {
	seen := make(map[string]struct{}, len(cachedIDs)+len(remote))
	for _, id := range cachedIDs {
		seen[id] = struct{}{}
	}

	missing := make([]Customer, 0)
	for _, c := range remote {
		if c.CustomerID == "" {
			continue
		}
		if _, ok := seen[c.CustomerID]; ok {
			continue
		}
		seen[c.CustomerID] = struct{}{}
		missing = append(missing, c)
	}
	return missing
}

// IDSet indexes customers by id.
func IDSet(customers []Customer) map[string]struct{} {
	set := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		set[c.CustomerID] = struct{}{}
	}
	return set
}
