package locator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkitagawa/pidate/internal/model"
)

// fixedDigits returns a DigitSource that always yields the given string,
// regardless of the requested length.
func fixedDigits(digits string) DigitSource {
	return func(_ context.Context, _ int) (string, error) {
		return digits, nil
	}
}

// syntheticExpansion places the pattern "15031990" at offset 20 inside a
// run of filler digits. The filler avoids the digits 1, 5, 9 so the
// pattern cannot occur accidentally.
const syntheticExpansion = "02468024680246802468" + "15031990" + "0246802468024680246802468024680246802468"

// TestLocatorLocate tests the locate operation end to end with an injected
// digit source.
func TestLocatorLocate(t *testing.T) {
	t.Parallel()

	t.Run("finds the pattern and derives analogies", func(t *testing.T) {
		t.Parallel()

		l := New(WithDigitSource(fixedDigits(syntheticExpansion)))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 60,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.Found {
			t.Fatal("expected the pattern to be found")
		}
		if result.Offset != 20 {
			t.Errorf("got offset %d, expected 20", result.Offset)
		}
		if result.Pattern != "15031990" {
			t.Errorf("got pattern %q, expected '15031990'", result.Pattern)
		}
		if result.DigitsSearched != 60 {
			t.Errorf("got digits searched %d, expected 60", result.DigitsSearched)
		}
		if result.WritingDuration == nil || result.BookPosition == nil || result.WalkingAnalogy == nil {
			t.Error("expected all analogies to be derived for a match")
		}
	})

	t.Run("context window brackets the match", func(t *testing.T) {
		t.Parallel()

		l := New(WithDigitSource(fixedDigits(syntheticExpansion)))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 60,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := "...0246802468[15031990]0246802468..."
		if result.Context != expected {
			t.Errorf("got context %q, expected %q", result.Context, expected)
		}
	})

	t.Run("full position trace carries every digit before the match", func(t *testing.T) {
		t.Parallel()

		l := New(WithDigitSource(fixedDigits(syntheticExpansion)))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 60,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := "3,02468024680246802468[15031990]..."
		if result.FullPositionTrace != expected {
			t.Errorf("got trace %q, expected %q", result.FullPositionTrace, expected)
		}
	})

	t.Run("match at offset zero clamps the window start", func(t *testing.T) {
		t.Parallel()

		l := New(WithDigitSource(fixedDigits("15031990" + strings.Repeat("02468", 10))))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 40,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Offset != 0 {
			t.Fatalf("got offset %d, expected 0", result.Offset)
		}
		if result.Context != "...[15031990]0246802468..." {
			t.Errorf("got context %q", result.Context)
		}
		if result.FullPositionTrace != "3,[15031990]..." {
			t.Errorf("got trace %q", result.FullPositionTrace)
		}
	})

	t.Run("match near the end clamps the window end", func(t *testing.T) {
		t.Parallel()

		digits := strings.Repeat("0246802468", 2) + "15031990" + "02"
		l := New(WithDigitSource(fixedDigits(digits)))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 30,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Context != "...0246802468[15031990]02..." {
			t.Errorf("got context %q", result.Context)
		}
	})

	t.Run("absent pattern is a normal result", func(t *testing.T) {
		t.Parallel()

		l := New(WithDigitSource(fixedDigits(strings.Repeat("02468", 20))))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 100,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Found {
			t.Fatal("expected the pattern to be absent")
		}
		if !strings.Contains(result.Message, "15031990") {
			t.Errorf("expected message to name the pattern, got %q", result.Message)
		}
		if !strings.Contains(result.Message, "100") {
			t.Errorf("expected message to name the budget, got %q", result.Message)
		}
		if result.WritingDuration != nil || result.Context != "" || result.FullPositionTrace != "" {
			t.Error("expected no derived fields for a miss")
		}
	})

	t.Run("search region is bounded by budget plus guard", func(t *testing.T) {
		t.Parallel()

		// Pattern sits at offset 150, beyond budget 40 + guard 100.
		digits := strings.Repeat("0246802468", 15) + "15031990"
		l := New(WithDigitSource(fixedDigits(digits)))
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 40,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Found {
			t.Error("expected no match outside the budgeted region")
		}
	})

	t.Run("validation failure happens before digit generation", func(t *testing.T) {
		t.Parallel()

		called := false
		l := New(WithDigitSource(func(_ context.Context, _ int) (string, error) {
			called = true
			return "", nil
		}))

		_, err := l.Locate(context.Background(), &model.SearchRequest{Date: "not a date"})
		if !errors.Is(err, model.ErrInvalidDateFormat) {
			t.Fatalf("got %v, expected ErrInvalidDateFormat", err)
		}
		if called {
			t.Error("digit source must not run for invalid requests")
		}
	})

	t.Run("small budget against the real expansion misses", func(t *testing.T) {
		t.Parallel()

		// Eight specific digits in a 200-digit window occur with
		// probability ~2e-6; this pattern is known absent there.
		l := New()
		result, err := l.Locate(context.Background(), &model.SearchRequest{
			Date:            "15.03.1990",
			PrecisionBudget: 100,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Found {
			t.Errorf("unexpected match at offset %d", result.Offset)
		}
	})

	t.Run("determinism against the real expansion", func(t *testing.T) {
		t.Parallel()

		l := New()
		req := &model.SearchRequest{Date: "26.05.3589", PrecisionBudget: 2000}

		first, err := l.Locate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := l.Locate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first.Found != second.Found || first.Offset != second.Offset || first.Context != second.Context {
			t.Error("expected identical results for identical requests")
		}
	})
}
