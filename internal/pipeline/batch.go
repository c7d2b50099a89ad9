package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is used when no concurrency is configured.
const DefaultBatchConcurrency = 2

// Factory builds the pipeline for one account.
type Factory func(account model.Account) *Pipeline

// BatchProcessor logs several accounts in concurrently.
type BatchProcessor struct {
	factory     Factory
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency bounds how many logins run at once. Non-positive values
// are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a processor that builds each account's
// pipeline with factory.
func NewBatchProcessor(factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		factory:     factory,
		concurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch logs every account in and returns their reports in input
// order. A failed login does not stop the others; cancellation does, and
// accounts never started are reported as cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, accounts []model.Account) ([]*model.LoginReport, error) {
	results := make([]*model.LoginReport, len(accounts))
	err := bp.ProcessBatchWithCallback(ctx, accounts, func(report *model.LoginReport, index int) {
		results[index] = report
	})

	for i, r := range results {
		if r == nil {
			r = model.NewLoginReport(accounts[i])
			r.Outcome = model.OutcomeCancelled
			results[i] = r
		}
	}
	return results, err
}

// ProcessBatchWithCallback logs every account in and hands each report to
// callback as soon as its pipeline ends. callback is called from worker
// goroutines, each index at most once.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	accounts []model.Account,
	callback func(report *model.LoginReport, index int),
) error {
	bp.logger.Info("starting batch login",
		"total_accounts", len(accounts),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, account := range accounts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report := model.NewLoginReport(account)
			err := bp.factory(account).Execute(ctx, report)
			callback(report, i)

			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				bp.logger.Warn("pipeline failed", "index", i+1, "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch login complete",
		"total_accounts", len(accounts),
		"elapsed", time.Since(start),
	)
	return err
}
