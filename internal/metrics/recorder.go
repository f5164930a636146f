// Package metrics provides observability hooks for the extraction pipeline.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real implementation (the
// Prometheus recorder exposed by the preview server) is injected.
package metrics

import "time"

// Recorder defines observability hooks for extraction runs. Implementations
// must be safe for concurrent use; the engine calls them from parallel
// per-file workers.
type Recorder interface {
	ObserveFileDuration(dialect string, d time.Duration)
	IncFileResult(dialect string, success bool)
	AddItems(dialect, kind string, n int)
	AddDiagnostics(dialect string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFileDuration(string, time.Duration) {}
func (NoopRecorder) IncFileResult(string, bool)                {}
func (NoopRecorder) AddItems(string, string, int)              {}
func (NoopRecorder) AddDiagnostics(string, int)                {}
