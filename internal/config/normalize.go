package config

import "strings"

// LogLevel enumerates supported logging levels (mapped onto slog levels).
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logLevels = map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}

// NormalizeLogLevel maps a raw string onto a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	if lvl, ok := logLevels[normalize(raw)]; ok {
		return lvl
	}
	return LogLevelInfo
}

var logFormats = map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}

// NormalizeLogFormat maps a raw string onto a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	if f, ok := logFormats[normalize(raw)]; ok {
		return f
	}
	return LogFormatText
}

// dialectAliases maps accepted spellings onto canonical dialect names.
var dialectAliases = map[string]string{
	"xmldoc":   "xmldoc",
	"dotnet":   "xmldoc",
	"csharp":   "xmldoc",
	"kdoc":     "kdoc",
	"kotlin":   "kdoc",
	"swiftdoc": "swiftdoc",
	"swift":    "swiftdoc",
}

// NormalizeDialect maps a raw string onto a canonical dialect name, or ""
// when the name is unknown.
func NormalizeDialect(raw string) string {
	return dialectAliases[normalize(raw)]
}

// SupportedDialects lists the canonical dialect names in stable order.
func SupportedDialects() []string {
	return []string{"xmldoc", "kdoc", "swiftdoc"}
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
