package model

import (
	"math"
	"testing"
)

// TestNewWritingDuration tests the writing-duration arithmetic.
func TestNewWritingDuration(t *testing.T) {
	t.Parallel()

	t.Run("offset zero takes no time", func(t *testing.T) {
		t.Parallel()

		d := NewWritingDuration(0)
		if d.Hours != 0 || d.Minutes != 0 {
			t.Errorf("got %dh %dm, expected 0h 0m", d.Hours, d.Minutes)
		}
	})

	t.Run("uses integer floor division", func(t *testing.T) {
		t.Parallel()

		// 2733 digits * 2 s = 5466 s = 1 h 31 m (with 6 s dropped).
		d := NewWritingDuration(2733)
		if d.Hours != 1 {
			t.Errorf("got %d hours, expected 1", d.Hours)
		}
		if d.Minutes != 31 {
			t.Errorf("got %d minutes, expected 31", d.Minutes)
		}
	})

	t.Run("exact hour boundary", func(t *testing.T) {
		t.Parallel()

		// 1800 digits * 2 s = 3600 s = exactly 1 h.
		d := NewWritingDuration(1800)
		if d.Hours != 1 || d.Minutes != 0 {
			t.Errorf("got %dh %dm, expected 1h 0m", d.Hours, d.Minutes)
		}
	})
}

// TestNewBookPosition tests the page/line arithmetic.
func TestNewBookPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offset int
		page   int
		line   int
	}{
		{name: "first digit", offset: 0, page: 1, line: 1},
		{name: "last digit of first line", offset: 79, page: 1, line: 1},
		{name: "first digit of second line", offset: 80, page: 1, line: 2},
		{name: "first digit of second page", offset: 4000, page: 2, line: 1},
		{name: "last digit of first page", offset: 3999, page: 1, line: 50},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pos := NewBookPosition(tt.offset)
			if pos.Page != tt.page {
				t.Errorf("page: got %d, expected %d", pos.Page, tt.page)
			}
			if pos.Line != tt.line {
				t.Errorf("line: got %d, expected %d", pos.Line, tt.line)
			}
		})
	}
}

// TestNewWalkingAnalogy tests the distance arithmetic and unit switch.
func TestNewWalkingAnalogy(t *testing.T) {
	t.Parallel()

	t.Run("short distances use meters and steps", func(t *testing.T) {
		t.Parallel()

		w := NewWalkingAnalogy(1000) // 3 meters
		if w.UseKilometers {
			t.Error("expected meters below the kilometer threshold")
		}
		if math.Abs(w.Meters-3.0) > 1e-9 {
			t.Errorf("got %f meters, expected 3.0", w.Meters)
		}
		if w.Steps != 2 {
			t.Errorf("got %d steps, expected 2", w.Steps)
		}
	})

	t.Run("long distances use kilometers and hours", func(t *testing.T) {
		t.Parallel()

		w := NewWalkingAnalogy(500000) // 1500 meters
		if !w.UseKilometers {
			t.Error("expected kilometers at 1500 meters")
		}
		if math.Abs(w.Kilometers-1.5) > 1e-9 {
			t.Errorf("got %f km, expected 1.5", w.Kilometers)
		}
		if math.Abs(w.WalkingHours-0.3) > 1e-9 {
			t.Errorf("got %f hours, expected 0.3", w.WalkingHours)
		}
	})

	t.Run("threshold is exactly one kilometer", func(t *testing.T) {
		t.Parallel()

		// 333334 digits * 3 mm = 1000.002 m, just across the line.
		if w := NewWalkingAnalogy(333334); !w.UseKilometers {
			t.Error("expected kilometers at 1000.002 meters")
		}
		// 333333 digits * 3 mm = 999.999 m, just under.
		if w := NewWalkingAnalogy(333333); w.UseKilometers {
			t.Error("expected meters at 999.999 meters")
		}
	})
}
