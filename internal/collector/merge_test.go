package collector

import (
	"testing"
	"time"

	"SectorFlow/internal/model"
)

func d(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func bar(day int, close float64) model.OHLCV {
	return model.OHLCV{Date: d(day), Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 100}
}

func TestMergeBarsFreshWins(t *testing.T) {
	cached := []model.OHLCV{bar(4, 10), bar(5, 11), bar(6, 12)}
	fresh := []model.OHLCV{bar(7, 14), bar(6, 13), bar(8, 15)}

	got := MergeBars(cached, fresh)
	wantCloses := []float64{10, 11, 13, 14, 15}
	if len(got) != len(wantCloses) {
		t.Fatalf("got %d bars, want %d", len(got), len(wantCloses))
	}
	for i, w := range wantCloses {
		if got[i].Close != w {
			t.Errorf("bar %d close = %v, want %v", i, got[i].Close, w)
		}
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Date.Before(got[i].Date) {
			t.Errorf("not strictly ascending at %d: %v then %v", i, got[i-1].Date, got[i].Date)
		}
	}
}

func TestMergeBarsNormalizesTimeOfDay(t *testing.T) {
	cached := []model.OHLCV{{Date: d(4), Close: 1}}
	fresh := []model.OHLCV{{Date: d(4).Add(14*time.Hour + 30*time.Minute), Close: 2}}
	got := MergeBars(cached, fresh)
	if len(got) != 1 || got[0].Close != 2 || !got[0].Date.Equal(d(4)) {
		t.Errorf("MergeBars = %+v, want single fresh bar at midnight", got)
	}
}

func TestMergeBarsEmptyCache(t *testing.T) {
	got := MergeBars(nil, []model.OHLCV{bar(6, 2), bar(5, 1)})
	if len(got) != 2 || got[0].Close != 1 {
		t.Errorf("MergeBars = %+v", got)
	}
}

func TestDropPartial(t *testing.T) {
	bars := []model.OHLCV{bar(4, 1), bar(5, 2), bar(6, 3), bar(7, 4)}
	now := time.Date(2024, 3, 6, 15, 45, 0, 0, time.UTC)

	got := DropPartial(bars, now)
	if len(got) != 2 || got[len(got)-1].Close != 2 {
		t.Fatalf("DropPartial = %+v, want bars before 2024-03-06", got)
	}

	again := DropPartial(got, now)
	if len(again) != len(got) {
		t.Fatalf("DropPartial not idempotent: %d then %d", len(got), len(again))
	}
	for i := range got {
		if again[i] != got[i] {
			t.Errorf("bar %d changed on second pass", i)
		}
	}
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		rng  Range
		want time.Time
	}{
		{Range5d, now.AddDate(0, 0, -5)},
		{"2wk", now.AddDate(0, 0, -14)},
		{Range3mo, now.AddDate(0, -3, 0)},
		{Range1y, now.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		got, err := tt.rng.Start(now)
		if err != nil {
			t.Errorf("%s: %v", tt.rng, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.rng, got, tt.want)
		}
	}
	for _, bad := range []Range{"", "d", "0d", "5h", "1yr"} {
		if err := bad.Validate(); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
