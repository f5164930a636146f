package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath     = "path"
	KeyFile     = "file"
	KeyDialect  = "dialect"
	KeyKind     = "kind"
	KeyName     = "name"
	KeyCount    = "count"
	KeyLine     = "line"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Dialect(d string) slog.Attr       { return slog.String(KeyDialect, d) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Name(n string) slog.Attr          { return slog.String(KeyName, n) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Line(n int) slog.Attr             { return slog.Int(KeyLine, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
