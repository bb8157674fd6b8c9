package quota

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)

	if got := DayKey(now, nil); got != "2026-03-31" {
		t.Errorf("expected 2026-03-31 in UTC, got %s", got)
	}
	if got := DayKey(now, tokyo); got != "2026-04-01" {
		t.Errorf("expected 2026-04-01 in JST, got %s", got)
	}
}

func TestTimeUntilNextDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{name: "evening", now: time.Date(2026, 1, 1, 18, 30, 0, 0, time.UTC), want: 5*time.Hour + 30*time.Minute},
		{name: "just after midnight", now: time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC), want: 24*time.Hour - time.Second},
		{name: "end of month", now: time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TimeUntilNextDay(tt.now, time.UTC); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
