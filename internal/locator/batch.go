package locator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkitagawa/pidate/internal/model"
	"github.com/mkitagawa/pidate/internal/pi"
	"golang.org/x/sync/errgroup"
)

// BatchSearcher runs many digit searches against a single shared expansion.
//
// Design decision: We compute pi once, sized to the largest budget in the
// batch, rather than once per request. The expansion is an immutable string,
// so concurrent searches need no synchronization; only result delivery is
// serialized. This is not digit caching across invocations - the expansion
// lives and dies with one batch call.
type BatchSearcher struct {
	// digits generates the shared pi expansion.
	digits DigitSource

	// concurrency is the maximum number of concurrent searches.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchSearcher.
type BatchOption func(*BatchSearcher)

// WithBatchConcurrency sets the maximum number of concurrent searches.
// Default is 4 if not specified.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchSearcher) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchSearcher) {
		b.logger = logger
	}
}

// WithBatchDigitSource replaces the pi digit generator. This exists for tests.
func WithBatchDigitSource(src DigitSource) BatchOption {
	return func(b *BatchSearcher) {
		b.digits = src
	}
}

// NewBatchSearcher creates a BatchSearcher.
func NewBatchSearcher(opts ...BatchOption) *BatchSearcher {
	b := &BatchSearcher{
		digits:      pi.FractionalDigits,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// ProcessWithCallback searches for every request's pattern, invoking the
// callback once per request with its index, result, and error. Callback
// invocations are serialized but may arrive out of request order.
//
// A request that fails validation gets a nil result and the validation
// error; it does not stop the batch. The returned error is non-nil only
// when the expansion could not be computed or the context was cancelled.
func (b *BatchSearcher) ProcessWithCallback(ctx context.Context, reqs []*model.SearchRequest, fn func(index int, result *model.MatchResult, err error)) error {
	if len(reqs) == 0 {
		return nil
	}

	maxBudget := 0
	for _, req := range reqs {
		if budget := req.Budget(); budget > maxBudget {
			maxBudget = budget
		}
	}

	b.logger.Info("computing shared pi expansion",
		"budget", maxBudget,
		"requests", len(reqs),
		"concurrency", b.concurrency,
	)

	digits, err := b.digits(ctx, maxBudget+searchGuardDigits)
	if err != nil {
		return fmt.Errorf("failed to compute pi digits: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	var mu sync.Mutex
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var result *model.MatchResult
			err := req.Validate()
			if err == nil {
				result = searchDigits(digits, req.Pattern(), req.Budget())
			}

			mu.Lock()
			fn(i, result, err)
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Process searches for every request's pattern and returns the results in
// request order. Requests that fail validation yield nil entries; inspect
// them with ProcessWithCallback when per-request errors matter.
func (b *BatchSearcher) Process(ctx context.Context, reqs []*model.SearchRequest) ([]*model.MatchResult, error) {
	results := make([]*model.MatchResult, len(reqs))
	err := b.ProcessWithCallback(ctx, reqs, func(index int, result *model.MatchResult, _ error) {
		results[index] = result
	})
	return results, err
}
