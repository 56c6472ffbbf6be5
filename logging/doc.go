// Package logging provides a minimal logging interface and a structured
// implementation for the Sustainet game engine.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the engine, turn logic and collaborator adapters use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - GameLogger over slog with component/session/round context and turn
//     outcome helpers
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "text", Output: os.Stdout})
//	eng, err := engine.New(store, executor, gm, catalog, engine.WithLogger(logger))
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
