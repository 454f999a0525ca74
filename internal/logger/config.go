package logger

import (
	"log/slog"
	"slices"
	"strings"
)

// Config describes the process-wide logger
type Config struct {
	Level       string // debug, info, warn or error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config. Source locations are attached in development
// environments only.
func NewConfig(level, format, serviceName, version, environment string) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   IsDevelopment(environment),
	}
}

// IsDevelopment reports whether env names a local development setup
func IsDevelopment(env string) bool {
	return slices.Contains(developmentEnvironments, strings.ToLower(env))
}

// LogLevel parses Level, accepting "warning" as an alias. Unknown values
// fall back to info.
func (c Config) LogLevel() slog.Level {
	name := strings.ToLower(c.Level)
	if name == LogLevelWarning {
		name = LogLevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON reports whether the JSON handler should be used
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
