package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SectorFlow/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSeries() model.PriceSeries {
	return model.PriceSeries{Symbol: "XLK", Bars: []model.OHLCV{
		{Date: day(2024, 1, 2), Open: 190.5, High: 192.25, Low: 189.75, Close: 191.1, Volume: 8123400},
		{Date: day(2024, 1, 3), Open: 191.1, High: 191.9, Low: 188.2, Close: 188.6, Volume: 9000000},
	}}
}

func assertSeriesEqual(t *testing.T, got, want model.PriceSeries) {
	t.Helper()
	if len(got.Bars) != len(want.Bars) {
		t.Fatalf("got %d bars, want %d", len(got.Bars), len(want.Bars))
	}
	for i := range want.Bars {
		g, w := got.Bars[i], want.Bars[i]
		if !g.Date.Equal(w.Date) || g.Open != w.Open || g.High != w.High ||
			g.Low != w.Low || g.Close != w.Close || g.Volume != w.Volume {
			t.Errorf("bar %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestCSVSeriesStoreRoundTrip(t *testing.T) {
	s := NewCSVSeriesStore(t.TempDir())

	if _, ok, err := s.Load("XLK"); err != nil || ok {
		t.Fatalf("Load on empty dir = ok %v, err %v; want absent", ok, err)
	}
	if err := s.Save("XLK", sampleSeries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := s.Load("XLK")
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	assertSeriesEqual(t, got, sampleSeries())
}

func TestCSVSeriesStoreFileIsHumanReadable(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVSeriesStore(dir)
	if err := s.Save("xlk", sampleSeries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "XLK.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "date,open,high,low,close,volume" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2024-01-02,190.5,192.25,189.75,191.1,8123400" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestCSVSeriesStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "XLK.csv")
	if err := os.WriteFile(path, []byte("date,open,high,low,close,volume\n2024-01-02,x,1,1,1,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewCSVSeriesStore(dir).Load("XLK"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParquetSeriesStoreRoundTrip(t *testing.T) {
	s := NewParquetSeriesStore(t.TempDir())
	if _, ok, err := s.Load("XLK"); err != nil || ok {
		t.Fatalf("Load on empty dir = ok %v, err %v; want absent", ok, err)
	}
	if err := s.Save("XLK", sampleSeries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := s.Load("XLK")
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	assertSeriesEqual(t, got, sampleSeries())
}

func TestNewSeriesStore(t *testing.T) {
	dir := t.TempDir()
	if s, err := NewSeriesStore(FormatCSV, dir); err != nil {
		t.Errorf("csv: %v", err)
	} else if _, ok := s.(*CSVSeriesStore); !ok {
		t.Errorf("csv: got %T", s)
	}
	if s, err := NewSeriesStore(FormatParquet, dir); err != nil {
		t.Errorf("parquet: %v", err)
	} else if _, ok := s.(*ParquetSeriesStore); !ok {
		t.Errorf("parquet: got %T", s)
	}
	if _, err := NewSeriesStore("sqlite", dir); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestMemorySeriesStoreCopies(t *testing.T) {
	m := NewMemorySeriesStore()
	src := sampleSeries()
	if err := m.Save("XLK", src); err != nil {
		t.Fatal(err)
	}
	src.Bars[0].Close = 1
	got, ok, _ := m.Load("xlk")
	if !ok {
		t.Fatal("expected series")
	}
	if got.Bars[0].Close != 191.1 {
		t.Errorf("stored series aliased caller slice: close = %v", got.Bars[0].Close)
	}
	if m.Saves != 1 {
		t.Errorf("Saves = %d, want 1", m.Saves)
	}
}

func TestMacroCacheOverwrites(t *testing.T) {
	c := NewMacroCache(t.TempDir())
	if _, ok, err := c.Load(); err != nil || ok {
		t.Fatalf("Load on empty dir = ok %v, err %v", ok, err)
	}

	first := []model.MacroObservation{
		{Indicator: "2Y Treasury Yield", Value: "4.21", Date: "2024-03-01", Series: "DGS2"},
		{Indicator: "10Y Treasury Yield", Value: "4.18", Date: "2024-03-01", Series: "DGS10"},
	}
	second := []model.MacroObservation{
		{Indicator: "High Yield Credit Spreads", Value: ".", Date: "2024-03-04", Series: "BAMLH0A0HYM2"},
	}
	if err := c.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(second); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Load()
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Errorf("Load = %+v, want %+v", got, second)
	}
}

func TestSnapshotFile(t *testing.T) {
	f := NewSnapshotFile(t.TempDir())
	if _, err := f.ReadRaw(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadRaw before write: err = %v, want ErrNotFound", err)
	}

	snap := &model.DashboardSnapshot{LastUpdated: "2024-03-01 18:00:00"}
	if err := f.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := f.ReadRaw()
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	if !strings.Contains(s, `"sectors": []`) || !strings.Contains(s, `"macro": []`) {
		t.Errorf("nil slices should encode as empty arrays:\n%s", s)
	}
	if !strings.Contains(s, "\n    \"last_updated\"") {
		t.Errorf("expected 4-space indentation:\n%s", s)
	}

	got, err := f.Read()
	if err != nil {
		t.Fatal(err)
	}
	if got.LastUpdated != snap.LastUpdated {
		t.Errorf("LastUpdated = %q, want %q", got.LastUpdated, snap.LastUpdated)
	}

	entries, _ := os.ReadDir(filepath.Dir(f.Path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}
