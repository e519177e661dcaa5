// Package server is the read-only HTTP shell over the published artifact.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"SectorFlow/internal/store"
)

// NotGeneratedMessage is returned while no run has published an artifact.
const NotGeneratedMessage = "Dashboard data not generated yet. Please run the update command"

// ArtifactReader returns the published artifact bytes, or store.ErrNotFound.
type ArtifactReader interface {
	ReadRaw() ([]byte, error)
}

// Handler serves the dashboard API and static page.
type Handler struct {
	Artifact  ArtifactReader
	StaticDir string
	Log       *slog.Logger
}

// NewHandler builds the route table.
func NewHandler(artifact ArtifactReader, staticDir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{Artifact: artifact, StaticDir: staticDir, Log: logger.With("component", "server")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/data", h.GetData)
	mux.HandleFunc("GET /{$}", h.Index)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return h.logRequests(mux)
}

// GetData returns the artifact verbatim, regardless of its age.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	data, err := h.Artifact.ReadRaw()
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, WrapError(err, NotGeneratedMessage, http.StatusServiceUnavailable))
		return
	}
	if err != nil {
		WriteError(w, WrapError(err, fmt.Sprintf("Error reading data: %v", err), http.StatusInternalServerError))
		return
	}
	if !json.Valid(data) {
		WriteError(w, WrapError(errors.New("invalid json"), "Error reading data: artifact is not valid JSON", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Index serves the dashboard page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.StaticDir, "index.html"))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.Log.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
