package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loyalty-sync/core/logger"
	"loyalty-sync/feature/customers"
	"loyalty-sync/feature/products"
	"loyalty-sync/feature/saleslines"
	"loyalty-sync/feature/turnovers"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNothingSubmitted is returned when a run had turnovers to book and every batch was rejected.
// The rejected turnovers are already in the failed queue.
var ErrNothingSubmitted = errors.New("no turnover batch was accepted")

// CustomerRegistry fetches the enrolled roster and converges the local cache.
type CustomerRegistry interface {
	FetchEnrolled(ctx context.Context) ([]customers.Customer, error)
	SyncNew(ctx context.Context, remote []customers.Customer) (int, error)
	ReadCache(ctx context.Context) ([]customers.Customer, error)
}

// SalesSource fetches yesterday's sales lines.
type SalesSource interface {
	FetchYesterday(ctx context.Context) ([]saleslines.SalesLine, error)
}

// ProductSource looks up eligible products.
type ProductSource interface {
	FetchEligible(ctx context.Context, codes []string, country string) (*products.Result, error)
}

// Booker submits turnovers and owns the failed queue.
type Booker interface {
	Submit(ctx context.Context, items []turnovers.Turnover) (*turnovers.Report, error)
	ReadFailed(ctx context.Context) ([]turnovers.Turnover, error)
	ClearFailed(ctx context.Context) error
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Customers CustomerRegistry
	Sales     SalesSource
	Products  ProductSource
	Booker    Booker
}

// Settings carry the partner context stamped on every turnover.
type Settings struct {
	Wholesaler string
	Country    string
}

// Orchestrator sequences the components into a run.
type Orchestrator struct {
	deps     Deps
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an orchestrator.
func New(deps Deps, settings Settings, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{deps: deps, settings: settings, logger: logger, now: time.Now}
}

// Run executes the flow selected by mode. Diagnostic runs use default options.
func (o *Orchestrator) Run(ctx context.Context, mode Mode) (*Summary, error) {
	switch mode {
	case ModeReconcile:
		return o.Reconcile(ctx)
	case ModeRetryFailed:
		return o.RetryFailed(ctx)
	case ModeDiagnostic:
		d, err := o.Diagnose(ctx, DiagnoseOptions{})
		if err != nil {
			return nil, err
		}
		return d.Summary, nil
	default:
		return nil, fmt.Errorf("unsupported mode %s", mode)
	}
}

func (o *Orchestrator) begin(mode Mode) (*Summary, *zap.Logger, time.Time) {
	runID := uuid.NewString()
	log := logger.WithRunID(o.logger, runID)
	log.Info("Run started", zap.String("mode", mode.String()))
	return &Summary{RunID: runID, Mode: mode.String()}, log, o.now()
}

func (o *Orchestrator) finish(log *zap.Logger, summary *Summary, started time.Time) {
	summary.Duration = o.now().Sub(started)
	log.Info("Run finished", summary.Fields()...)
}

// Reconcile syncs the customer cache, fetches yesterday's lines, keeps the ones with an
// enrolled customer and an eligible product, builds turnovers and books them.
//
// Errors from the roster, the database and the product lookup abort the run. Rejected booking
// batches are queued; the run fails only when nothing was accepted (ErrNothingSubmitted) or
// the queue could not be written.
func (o *Orchestrator) Reconcile(ctx context.Context) (*Summary, error) {
	summary, log, started := o.begin(ModeReconcile)
	defer o.finish(log, summary, started)

	built, err := o.prepare(ctx, log, summary, true, nil)
	if err != nil {
		return summary, err
	}
	return summary, o.submit(ctx, log, summary, built.Turnovers)
}

// RetryFailed drains the failed queue: read, dedupe, clear, resubmit.
// Clearing before resubmitting means new rejections land in an empty queue.
func (o *Orchestrator) RetryFailed(ctx context.Context) (*Summary, error) {
	summary, log, started := o.begin(ModeRetryFailed)
	defer o.finish(log, summary, started)

	queued, err := o.deps.Booker.ReadFailed(ctx)
	if err != nil {
		return summary, fmt.Errorf("read failed turnovers: %w", err)
	}
	summary.Queued = len(queued)

	unique := turnovers.Dedupe(queued)
	summary.Duplicates = len(queued) - len(unique)

	if len(queued) == 0 {
		log.Info("Failed-turnover queue is empty")
		return summary, nil
	}

	if err := o.deps.Booker.ClearFailed(ctx); err != nil {
		return summary, fmt.Errorf("clear failed turnovers: %w", err)
	}

	return summary, o.submit(ctx, log, summary, unique)
}

func (o *Orchestrator) submit(ctx context.Context, log *zap.Logger, summary *Summary, items []turnovers.Turnover) error {
	summary.Turnovers = len(items)
	if len(items) == 0 {
		log.Info("No turnovers to book")
		return nil
	}

	report, err := o.deps.Booker.Submit(ctx, items)
	summary.Submission = report
	if err != nil {
		return fmt.Errorf("submit turnovers: %w", err)
	}
	if report.NothingSucceeded() {
		return ErrNothingSubmitted
	}
	return nil
}

// DiagnoseOptions narrow a diagnostic run.
type DiagnoseOptions struct {
	// Customer traces lines whose customer account contains this value through every stage.
	Customer string
	// ProductCodes, when set, only queries eligibility for these codes and skips the database.
	ProductCodes []string
}

// Diagnosis is the output of a diagnostic run. Nothing is written or booked.
type Diagnosis struct {
	Summary *Summary
	// Cached holds the cache rows matching DiagnoseOptions.Customer.
	Cached    []customers.Customer
	Lines     []saleslines.SalesLine
	Products  []products.Product
	Matched   []turnovers.EnrichedLine
	Turnovers []turnovers.Turnover
}

// Diagnose runs the pipeline read-only. The customer cache is not synced and no turnover is
// submitted.
func (o *Orchestrator) Diagnose(ctx context.Context, opts DiagnoseOptions) (*Diagnosis, error) {
	summary, log, started := o.begin(ModeDiagnostic)
	defer o.finish(log, summary, started)

	if len(opts.ProductCodes) > 0 {
		result, err := o.deps.Products.FetchEligible(ctx, opts.ProductCodes, o.settings.Country)
		if err != nil {
			return &Diagnosis{Summary: summary}, err
		}
		summary.ProductCodes = len(opts.ProductCodes)
		summary.EligibleProducts = len(result.Products)
		summary.FailedProductBatches = result.FailedBatches
		for _, p := range result.Products {
			log.Info("Eligible product",
				zap.String("article_nr", p.ArticleNr),
				zap.String("product_group", p.ProductGroup),
				zap.String("multiplier", p.PointMultiplier.String()),
			)
		}
		return &Diagnosis{Summary: summary, Products: result.Products}, nil
	}

	var (
		trace  tracer
		cached []customers.Customer
	)
	if opts.Customer != "" {
		trace = func(stage, customer string, v any) {
			if strings.Contains(customer, opts.Customer) {
				log.Info("Trace", zap.String("stage", stage), zap.String("customer", customer), zap.Any("record", v))
			}
		}

		// A customer missing from the cache explains lines the sales query never returns
		rows, err := o.deps.Customers.ReadCache(ctx)
		if err != nil {
			log.Warn("Could not read customer cache", zap.Error(err))
		}
		for _, c := range rows {
			if strings.Contains(c.CustomerID, opts.Customer) {
				cached = append(cached, c)
				trace("cached customer", c.CustomerID, c)
			}
		}
		if err == nil && len(cached) == 0 {
			log.Warn("Traced customer is not in the customer cache", zap.String("customer", opts.Customer))
		}
	}

	built, err := o.prepare(ctx, log, summary, false, trace)
	if err != nil {
		return &Diagnosis{Summary: summary, Cached: cached}, err
	}
	summary.Turnovers = len(built.Turnovers)
	built.Summary = summary
	built.Cached = cached
	return built, nil
}

type tracer func(stage, customer string, v any)

// prepare runs every stage up to and including turnover building.
func (o *Orchestrator) prepare(ctx context.Context, log *zap.Logger, summary *Summary, syncCache bool, trace tracer) (*Diagnosis, error) {
	if trace == nil {
		trace = func(string, string, any) {}
	}

	remote, err := o.deps.Customers.FetchEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch enrolled customers: %w", err)
	}
	summary.RemoteCustomers = len(remote)
	for _, c := range remote {
		trace("customer", c.CustomerID, c)
	}

	if syncCache {
		inserted, err := o.deps.Customers.SyncNew(ctx, remote)
		if err != nil {
			return nil, fmt.Errorf("sync customer cache: %w", err)
		}
		summary.NewCustomers = inserted
	}

	lines, err := o.deps.Sales.FetchYesterday(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sales lines: %w", err)
	}
	summary.Lines = len(lines)
	for _, l := range lines {
		trace("salesline", l.CustomerAccount, l)
	}

	// The query already joins the cache; filtering against the fresh roster drops lines of
	// customers who left the program since the cache was filled.
	enrolledSet := customers.IDSet(remote)
	enrolled := EnrolledOnly(lines, enrolledSet)
	summary.EnrolledLines = len(enrolled)

	codes := ProductCodes(enrolled)
	summary.ProductCodes = len(codes)

	result, err := o.deps.Products.FetchEligible(ctx, codes, o.settings.Country)
	if err != nil {
		return nil, fmt.Errorf("fetch eligible products: %w", err)
	}
	summary.EligibleProducts = len(result.Products)
	summary.FailedProductBatches = result.FailedBatches
	if result.FailedBatches > 0 {
		log.Warn("Some product batches failed, their lines are skipped this run",
			zap.Int("failed_batches", result.FailedBatches),
			zap.Int("failed_codes", len(result.FailedCodes)),
		)
	}

	matched := Match(enrolled, enrolledSet, products.Index(result.Products))
	summary.MatchedLines = len(matched)
	for _, m := range matched {
		trace("matched", m.CustomerAccount, m)
	}

	built := turnovers.Build(matched, o.settings.Wholesaler, o.settings.Country)
	for _, t := range built {
		trace("turnover", t.Customer, t)
	}

	log.Debug("Pipeline prepared",
		zap.Int("lines", len(lines)),
		zap.Int("matched", len(matched)),
		zap.Int("turnovers", len(built)),
	)

	return &Diagnosis{
		Lines:     enrolled,
		Products:  result.Products,
		Matched:   matched,
		Turnovers: built,
	}, nil
}
