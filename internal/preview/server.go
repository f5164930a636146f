// Package preview serves generated documentation locally and regenerates it
// when watched source files change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/thedoc/internal/logfields"
	"git.home.luguber.info/inful/thedoc/internal/metrics"
)

// RebuildFunc regenerates the documentation output from current sources.
type RebuildFunc func(ctx context.Context) error

// Server watches source roots and serves the rendered output over HTTP.
type Server struct {
	outputDir string
	roots     []string
	rebuild   RebuildFunc
	registry  *prom.Registry

	status struct {
		mu        sync.RWMutex
		lastError error
	}
}

// NewServer creates a preview server. registry may be nil when metrics
// exposure is not wanted; /metrics then serves an empty registry.
func NewServer(outputDir string, roots []string, rebuild RebuildFunc, registry *prom.Registry) *Server {
	if registry == nil {
		registry = prom.NewRegistry()
	}
	return &Server{outputDir: outputDir, roots: roots, rebuild: rebuild, registry: registry}
}

func (s *Server) setError(err error) {
	s.status.mu.Lock()
	defer s.status.mu.Unlock()
	s.status.lastError = err
}

// LastError returns the most recent rebuild failure, or nil after a
// successful rebuild.
func (s *Server) LastError() error {
	s.status.mu.RLock()
	defer s.status.mu.RUnlock()
	return s.status.lastError
}

// Handler returns the HTTP routes served by the preview server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := s.LastError(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", &pageHandler{outputDir: s.outputDir})
	return mux
}

// Run performs an initial rebuild, then serves until ctx is cancelled,
// regenerating whenever a watched source file changes.
func (s *Server) Run(ctx context.Context, port int) error {
	if err := s.rebuild(ctx); err != nil {
		slog.Error("Initial generation failed", logfields.Error(err))
		s.setError(err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening", "port", port, "url", fmt.Sprintf("http://localhost:%d", port))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		_ = httpServer.Close()
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	for _, root := range s.roots {
		if err := addDirsRecursive(watcher, root); err != nil {
			_ = httpServer.Close()
			return err
		}
	}

	rebuildReq, trigger := debouncer(300 * time.Millisecond)
	go s.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case err := <-serveErr:
			return fmt.Errorf("http server: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
	trigger()
}

func (s *Server) rebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected, regenerating documentation")
			if err := s.rebuild(ctx); err != nil {
				slog.Warn("Regeneration failed", logfields.Error(err))
				s.setError(err)
			} else {
				s.setError(nil)
			}
		}
	}
}

// debouncer coalesces bursts of filesystem events into a single rebuild
// request after a quiet period.
func debouncer(quiet time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(addErr))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters editor temp files and hidden paths.
func shouldIgnoreEvent(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") {
		return true
	}
	return strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp")
}
