// Package storage defines the persistence gateway of the game engine: the
// record shapes and store interfaces the engine writes through when a turn's
// computation is complete, keyed by (session_id[, round_number[,
// platform_name]]).
//
// Two implementations ship with the module: storage/sqlite, a durable
// SQLite-backed store with embedded migrations, and storage/memory, a
// process-local store for tests and demos. Missing records surface as
// not-found taxonomy errors so callers can distinguish a missing setup from
// missing per-round state rows.
package storage
