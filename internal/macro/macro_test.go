package macro

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"SectorFlow/internal/model"
	"SectorFlow/internal/store"
	"SectorFlow/internal/universe"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFREDLatest(t *testing.T) {
	var got url.Values
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, got = r.URL.Path, r.URL.Query()
		w.Write([]byte(`{"observations":[{"date":"2024-03-07","value":"4.52"}]}`))
	}))
	defer srv.Close()

	c := NewFREDClient(srv.URL, "secret", "", time.Second)
	obs, err := c.Latest(context.Background(), universe.MacroSeries{ID: "DGS2", Name: "2Y Treasury Yield"})
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if path != "/series/observations" {
		t.Errorf("path = %s", path)
	}
	for k, v := range map[string]string{
		"series_id": "DGS2", "api_key": "secret", "file_type": "json", "limit": "1", "sort_order": "desc",
	} {
		if got.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, got.Get(k), v)
		}
	}
	want := model.MacroObservation{Indicator: "2Y Treasury Yield", Value: "4.52", Date: "2024-03-07", Series: "DGS2"}
	if obs != want {
		t.Errorf("obs = %+v, want %+v", obs, want)
	}
}

func TestFREDLatestFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"bad request", http.StatusBadRequest, `{"error_message":"Bad Request"}`},
		{"empty observations", http.StatusOK, `{"observations":[]}`},
		{"malformed", http.StatusOK, `{"observations":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewFREDClient(srv.URL, "k", "", time.Second)
			if _, err := c.Latest(context.Background(), universe.MacroSeries{ID: "DGS10"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// fakeSource fails every series listed in fail.
type fakeSource struct {
	fail  map[string]bool
	calls atomic.Int32
}

func (f *fakeSource) Latest(_ context.Context, s universe.MacroSeries) (model.MacroObservation, error) {
	f.calls.Add(1)
	if f.fail == nil || f.fail[s.ID] {
		return model.MacroObservation{}, errors.New("unavailable")
	}
	return model.MacroObservation{Indicator: s.Name, Value: "1.00", Date: "2024-03-07", Series: s.ID}, nil
}

func failAll() map[string]bool { return nil }

func succeedAll() map[string]bool { return map[string]bool{} }

func TestRefreshPartialFailureOmitsSeries(t *testing.T) {
	cache := store.NewMacroCache(t.TempDir())
	src := &fakeSource{fail: map[string]bool{"DGS20": true, "T10YIE": true}}
	svc := NewService(src, cache, quietLogger())

	got := svc.Refresh(context.Background())
	if len(got) != 5 {
		t.Fatalf("got %d observations, want 5", len(got))
	}
	for _, o := range got {
		if o.Series == "DGS20" || o.Series == "T10YIE" {
			t.Errorf("failed series %s present", o.Series)
		}
	}
	if got[0].Series != "DGS2" {
		t.Errorf("order not preserved: first = %s", got[0].Series)
	}

	saved, ok, err := cache.Load()
	if err != nil || !ok || len(saved) != 5 {
		t.Errorf("cache = %d rows, ok=%v, err=%v", len(saved), ok, err)
	}
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	cache := store.NewMacroCache(t.TempDir())
	svc := NewService(&fakeSource{fail: succeedAll()}, cache, quietLogger())
	if got := svc.Refresh(context.Background()); len(got) != 7 {
		t.Fatalf("first refresh got %d, want 7", len(got))
	}

	only := map[string]bool{}
	for _, s := range universe.Macro()[1:] {
		only[s.ID] = true
	}
	svc.Source = &fakeSource{fail: only}
	if got := svc.Refresh(context.Background()); len(got) != 1 {
		t.Fatalf("second refresh got %d, want 1", len(got))
	}
	saved, _, _ := cache.Load()
	if len(saved) != 1 || saved[0].Series != "DGS2" {
		t.Errorf("cache not replaced: %+v", saved)
	}
}

func TestRefreshTotalFailureUsesCache(t *testing.T) {
	cache := store.NewMacroCache(t.TempDir())
	prior := []model.MacroObservation{
		{Indicator: "10Y Treasury Yield", Value: "4.10", Date: "2024-03-01", Series: "DGS10"},
	}
	if err := cache.Save(prior); err != nil {
		t.Fatal(err)
	}
	svc := NewService(&fakeSource{fail: failAll()}, cache, quietLogger())

	got := svc.Refresh(context.Background())
	if len(got) != 1 || got[0] != prior[0] {
		t.Errorf("got %+v, want cached %+v", got, prior)
	}
}

func TestRefreshTotalFailureNoCache(t *testing.T) {
	svc := NewService(&fakeSource{fail: failAll()}, store.NewMacroCache(t.TempDir()), quietLogger())
	got := svc.Refresh(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil", got)
	}
}

func TestRefreshWithoutSourceSkipsCache(t *testing.T) {
	cache := store.NewMacroCache(t.TempDir())
	if err := cache.Save([]model.MacroObservation{{Series: "DGS2"}}); err != nil {
		t.Fatal(err)
	}
	svc := NewService(nil, cache, quietLogger())
	got := svc.Refresh(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil", got)
	}
}

func TestRefreshStopsOnCancel(t *testing.T) {
	src := &fakeSource{fail: succeedAll()}
	svc := NewService(src, store.NewMacroCache(t.TempDir()), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Refresh(ctx)
	if n := src.calls.Load(); n != 0 {
		t.Errorf("source called %d times after cancel", n)
	}
}
