// Package engine drives the per-file extraction pass: it resolves the dialect
// for a file, runs its parser, and surfaces diagnostics and metrics. A single
// file pass is synchronous; Run fans passes out across files with a bounded
// worker group, which is safe because dialects and the engine keep no mutable
// state between files.
package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/thedoc/internal/dialect"
	"git.home.luguber.info/inful/thedoc/internal/dialect/kdoc"
	"git.home.luguber.info/inful/thedoc/internal/dialect/swiftdoc"
	"git.home.luguber.info/inful/thedoc/internal/dialect/xmldoc"
	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
	"git.home.luguber.info/inful/thedoc/internal/logfields"
	"git.home.luguber.info/inful/thedoc/internal/metrics"
	"git.home.luguber.info/inful/thedoc/internal/model"
)

// DefaultRegistry returns a registry with all built-in dialects.
func DefaultRegistry() *dialect.Registry {
	return dialect.NewRegistry(xmldoc.New(), kdoc.New(), swiftdoc.New())
}

// Engine coordinates extraction passes.
type Engine struct {
	registry *dialect.Registry
	recorder metrics.Recorder
}

// New creates an engine over the built-in dialects.
func New() *Engine {
	return &Engine{registry: DefaultRegistry(), recorder: metrics.NoopRecorder{}}
}

// WithRegistry replaces the dialect registry (fluent helper).
func (e *Engine) WithRegistry(r *dialect.Registry) *Engine { e.registry = r; return e }

// WithRecorder attaches a metrics recorder (fluent helper).
func (e *Engine) WithRecorder(r metrics.Recorder) *Engine { e.recorder = r; return e }

// Registry exposes the dialect registry for discovery and config validation.
func (e *Engine) Registry() *dialect.Registry { return e.registry }

// ParseContent runs one extraction pass over already-read content.
// Block-level problems land on the aggregate's Diagnostics, not the error.
func (e *Engine) ParseContent(d dialect.Dialect, path, content string) (*model.Documentation, error) {
	start := time.Now()
	doc, err := d.ParseFile(path, content)
	e.recorder.ObserveFileDuration(d.Name(), time.Since(start))
	e.recorder.IncFileResult(d.Name(), err == nil)
	if err != nil {
		return nil, err
	}

	for bucket, items := range doc.Buckets {
		e.recorder.AddItems(d.Name(), bucket, len(items))
	}
	e.recorder.AddDiagnostics(d.Name(), len(doc.Diagnostics))
	for _, diag := range doc.Diagnostics {
		slog.Warn("Skipped malformed documentation block",
			logfields.File(diag.File),
			logfields.Line(diag.Line),
			slog.String("detail", diag.Message))
	}
	return doc, nil
}

// ParseFile reads path and runs the extraction pass using the dialect mapped
// to its extension. Read or decode failures are fatal for this file only.
func (e *Engine) ParseFile(d dialect.Dialect, path string) (*model.Documentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.FileReadError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, apperrors.DecodeError(path)
	}
	return e.ParseContent(d, path, string(data))
}

// Result is the outcome of a multi-file run. Failed holds per-file fatal
// errors (read/decode failures); those files have no Docs entry.
type Result struct {
	Docs   map[string]*model.Documentation
	Failed map[string]error
}

// Items returns how many DocItems the run produced in total.
func (r *Result) Items() int {
	n := 0
	for _, doc := range r.Docs {
		n += doc.Len()
	}
	return n
}

// Diagnostics returns the total recoverable diagnostics across all files.
func (r *Result) Diagnostics() int {
	n := 0
	for _, doc := range r.Docs {
		n += len(doc.Diagnostics)
	}
	return n
}

// Run extracts documentation from the given files in parallel, at most
// workers files at a time. Zero workers means one per CPU. A failing file
// never aborts its siblings; only context cancellation stops the run early.
func (e *Engine) Run(ctx context.Context, paths []string, workers int) (*Result, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	result := &Result{
		Docs:   make(map[string]*model.Documentation, len(paths)),
		Failed: make(map[string]error),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			d, ok := e.registry.ByExtension(filepath.Ext(path))
			if !ok {
				slog.Debug("No dialect for file", logfields.Path(path))
				return nil
			}

			doc, err := e.ParseFile(d, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("File extraction failed", logfields.Path(path), logfields.Error(err))
				result.Failed[path] = err
				return nil
			}
			result.Docs[path] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
