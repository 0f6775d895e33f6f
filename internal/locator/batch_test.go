package locator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mkitagawa/pidate/internal/model"
)

// TestBatchSearcherProcess tests concurrent batch searching against an
// injected shared expansion.
func TestBatchSearcherProcess(t *testing.T) {
	t.Parallel()

	t.Run("computes the expansion once for the whole batch", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		src := func(_ context.Context, _ int) (string, error) {
			calls.Add(1)
			return syntheticExpansion, nil
		}

		b := NewBatchSearcher(WithBatchDigitSource(src), WithBatchConcurrency(2))
		reqs := []*model.SearchRequest{
			{Date: "15.03.1990", PrecisionBudget: 60},
			{Date: "15.03.1990", PrecisionBudget: 30},
			{Date: "01.01.2000", PrecisionBudget: 60},
		}

		results, err := b.Process(context.Background(), reqs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := calls.Load(); got != 1 {
			t.Errorf("digit source ran %d times, expected 1", got)
		}
		if len(results) != 3 {
			t.Fatalf("got %d results, expected 3", len(results))
		}
		if !results[0].Found || results[0].Offset != 20 {
			t.Errorf("first request: got found=%v offset=%d, expected match at 20",
				results[0].Found, results[0].Offset)
		}
		if !results[1].Found {
			t.Error("second request: expected a match within budget 30 + guard")
		}
		if results[2].Found {
			t.Error("third request: expected no match for 01012000")
		}
	})

	t.Run("invalid requests surface through the callback", func(t *testing.T) {
		t.Parallel()

		b := NewBatchSearcher(WithBatchDigitSource(fixedDigits(syntheticExpansion)))
		reqs := []*model.SearchRequest{
			{Date: "15.03.1990", PrecisionBudget: 60},
			{Date: "99.99.9999", PrecisionBudget: 60},
		}

		errs := make([]error, len(reqs))
		err := b.ProcessWithCallback(context.Background(), reqs, func(index int, _ *model.MatchResult, err error) {
			errs[index] = err
		})
		if err != nil {
			t.Fatalf("unexpected batch error: %v", err)
		}

		if errs[0] != nil {
			t.Errorf("valid request reported error: %v", errs[0])
		}
		if !errors.Is(errs[1], model.ErrInvalidDateFormat) {
			t.Errorf("got %v, expected ErrInvalidDateFormat", errs[1])
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		src := func(_ context.Context, _ int) (string, error) {
			calls.Add(1)
			return "", nil
		}

		b := NewBatchSearcher(WithBatchDigitSource(src))
		if err := b.ProcessWithCallback(context.Background(), nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls.Load() != 0 {
			t.Error("digit source must not run for an empty batch")
		}
	})

	t.Run("expansion failure aborts the batch", func(t *testing.T) {
		t.Parallel()

		src := func(_ context.Context, _ int) (string, error) {
			return "", context.Canceled
		}

		b := NewBatchSearcher(WithBatchDigitSource(src))
		err := b.ProcessWithCallback(context.Background(),
			[]*model.SearchRequest{{Date: "15.03.1990"}},
			func(int, *model.MatchResult, error) {
				t.Error("callback must not run when the expansion fails")
			})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, expected context.Canceled", err)
		}
	})
}
