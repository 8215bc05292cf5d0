package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), "2026-10-15"},
		{"offset rolls back a day", time.Date(2026, 10, 15, 5, 0, 0, 0, loc), "2026-10-14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(tt.in); got != tt.want {
				t.Errorf("DateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWordIndexStablePerDay(t *testing.T) {
	key := []byte("salt")
	morning := time.Date(2026, 10, 15, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	if a, b := WordIndex(morning, key, 500), WordIndex(evening, key, 500); a != b {
		t.Errorf("same day gave %d and %d", a, b)
	}
	if got := WordIndex(morning, key, 0); got != 0 {
		t.Errorf("empty pool index = %d", got)
	}

	// Across a month of days the index must stay in range and not be constant.
	seen := map[int]bool{}
	for d := range 30 {
		i := WordIndex(morning.AddDate(0, 0, d), key, 500)
		if i < 0 || i >= 500 {
			t.Fatalf("index %d out of range", i)
		}
		seen[i] = true
	}
	if len(seen) < 2 {
		t.Error("index did not vary across days")
	}
}

func TestSource(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	src := Source{Key: []byte("k"), Now: func() time.Time { return day }}
	if got, want := src.Intn(42), WordIndex(day, []byte("k"), 42); got != want {
		t.Errorf("Intn = %d, want %d", got, want)
	}
}
