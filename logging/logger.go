// Package logging carries the structured logging used across the game engine.
// Collaborators and turn logic depend on the minimal Logger interface, while
// the engine itself holds a GameLogger that stamps every record with the
// component, session and round it belongs to.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel configures the minimum severity a GameLogger emits. It is kept
// separate from slog.Level so callers never import slog just to set a level.
type LogLevel int

const (
	// LogLevelDebug emits everything, including per-call payload details.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the default operating level.
	LogLevelInfo
	// LogLevelWarn emits only degraded-path and error records.
	LogLevelWarn
	// LogLevelError emits error records only.
	LogLevelError
)

// String returns the conventional upper-case name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is the narrow interface collaborator adapters and turn logic log
// through. Both GameLogger and NoOpLogger satisfy it, as does any user
// supplied implementation.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoOpLogger discards everything. It is the default for components whose
// options carry a Logger the caller did not set.
type NoOpLogger struct{}

// Debug discards the record.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards the record.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards the record.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards the record.
func (NoOpLogger) Error(string, ...any) {}

// LoggerConfig controls how NewLogger builds its slog handler.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // "json" (default) or "text"
	Output    io.Writer
	AddSource bool
	Component string
	SessionID string
}

// DefaultLoggerConfig returns the JSON-to-stdout, info-level baseline.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: true}
}

// GameLogger layers game context over slog. The With* methods return shallow
// copies, so one base logger built at startup can fan out per component and
// per session without synchronization.
type GameLogger struct {
	base      *slog.Logger
	level     LogLevel
	component string
	sessionID string
	round     int
}

// NewLogger builds a GameLogger from cfg, falling back to
// DefaultLoggerConfig when cfg is nil.
func NewLogger(cfg *LoggerConfig) *GameLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel(), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &GameLogger{base: slog.New(handler), level: cfg.Level, component: cfg.Component, sessionID: cfg.SessionID}
}

// WithComponent returns a copy scoped to a logical component, typically
// "engine", "turn", "gamemaster" or "storage".
func (l *GameLogger) WithComponent(component string) *GameLogger {
	nl := *l
	nl.component = component
	return &nl
}

// WithSession returns a copy that stamps records with the session identifier
// and the round currently in play.
func (l *GameLogger) WithSession(sessionID string, round int) *GameLogger {
	nl := *l
	nl.sessionID = sessionID
	nl.round = round
	return &nl
}

func (l *GameLogger) stamp(extra ...slog.Attr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(extra)+3)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		attrs = append(attrs, slog.String("session_id", l.sessionID))
	}
	if l.round > 0 {
		attrs = append(attrs, slog.Int("round_number", l.round))
	}
	return append(attrs, extra...)
}

func (l *GameLogger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}
	kv := make([]any, 0, len(args)+6)
	if l.component != "" {
		kv = append(kv, "component", l.component)
	}
	if l.sessionID != "" {
		kv = append(kv, "session_id", l.sessionID)
	}
	if l.round > 0 {
		kv = append(kv, "round_number", l.round)
	}
	kv = append(kv, args...)
	l.base.Log(context.Background(), level.slogLevel(), msg, kv...)
}

// Debug logs at debug level. args are slog-style key-value pairs.
func (l *GameLogger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args...) }

// Info logs at info level.
func (l *GameLogger) Info(msg string, args ...any) { l.log(LogLevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *GameLogger) Warn(msg string, args ...any) { l.log(LogLevelWarn, msg, args...) }

// Error logs at error level.
func (l *GameLogger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args...) }

// LogTurn records the outcome of one executed turn: which actor moved, the
// platform the action landed on, and how long execution took.
func (l *GameLogger) LogTurn(actor, platform string, dur time.Duration, success bool, err error) {
	attrs := []slog.Attr{
		slog.String("actor", actor),
		slog.String("platform", platform),
		slog.Duration("duration", dur),
		slog.Bool("success", success),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	level, msg := slog.LevelInfo, "Turn completed"
	if !success {
		level, msg = slog.LevelError, "Turn failed"
	}
	l.base.LogAttrs(context.Background(), level, msg, l.stamp(attrs...)...)
}

// StartTimer returns a closure that logs the elapsed duration of op when
// invoked, intended for defer at the top of an operation.
func (l *GameLogger) StartTimer(op string) func() {
	start := time.Now()
	return func() { l.Info("Operation completed", "operation", op, "duration", time.Since(start)) }
}
