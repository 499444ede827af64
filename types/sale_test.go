package types

import (
	"testing"
	"time"
)

func TestComputeSalesStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := ComputeSalesStats(nil)
		if got != (SalesStats{}) {
			t.Fatalf("expected zero record for empty input, got %+v", got)
		}
	})

	t.Run("five prices", func(t *testing.T) {
		sales := []Sale{{Price: 40}, {Price: 10}, {Price: 50}, {Price: 30}, {Price: 20}}
		got := ComputeSalesStats(sales)
		want := SalesStats{Count: 5, P5: 10, P25: 20, P50: 30, Average: 30}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("single sale", func(t *testing.T) {
		got := ComputeSalesStats([]Sale{{Price: 12.5}})
		if got.Count != 1 || got.P5 != 12.5 || got.P25 != 12.5 || got.P50 != 12.5 || got.Average != 12.5 {
			t.Fatalf("unexpected stats for single sale: %+v", got)
		}
		if got.LifetimeDays != 0 {
			t.Fatalf("expected lifetime 0 for a single sale, got %d", got.LifetimeDays)
		}
	})

	t.Run("average keeps full precision", func(t *testing.T) {
		a, b, c := 10.0, 10.0, 10.01
		got := ComputeSalesStats([]Sale{{Price: a}, {Price: b}, {Price: c}})
		want := (a + b + c) / 3
		if got.Average != want {
			t.Fatalf("expected unrounded average %v, got %v", want, got.Average)
		}
	})
}

func TestComputeSalesStatsLifetime(t *testing.T) {
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "same date", dates: []time.Time{base, base}, want: 0},
		{name: "ten days", dates: []time.Time{base.AddDate(0, 0, 10), base}, want: 10},
		{name: "rounds half day up", dates: []time.Time{base, base.Add(36 * time.Hour)}, want: 2},
		{name: "rounds down below half", dates: []time.Time{base, base.Add(35 * time.Hour)}, want: 1},
		{name: "ignores zero dates", dates: []time.Time{{}, base, base.AddDate(0, 0, 3)}, want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sales := make([]Sale, len(tc.dates))
			for i, d := range tc.dates {
				sales[i] = Sale{Price: 1, Published: d}
			}
			if got := ComputeSalesStats(sales).LifetimeDays; got != tc.want {
				t.Fatalf("expected lifetime %d, got %d", tc.want, got)
			}
		})
	}
}

func TestPercentileAtOutOfRange(t *testing.T) {
	if got := PercentileAt(nil, 0.5); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %v", got)
	}
	if got := PercentileAt([]float64{1, 2}, 1); got != 0 {
		t.Fatalf("expected 0 when index lands past the end, got %v", got)
	}
	if got := PercentileAt([]float64{1, 2}, -0.5); got != 0 {
		t.Fatalf("expected 0 for negative index, got %v", got)
	}
}
