// Package engine sequences the game lifecycle: initialization, turn
// execution, game master evaluation, tool effect application, persistence and
// end-of-game detection.
//
// The Engine is the unit of work. Every operation reconstitutes the aggregate
// from persisted state, runs the domain logic in memory and writes the
// outcome back through the storage gateway with idempotent upserts, so a
// retried call converges instead of corrupting state. The AI always acts
// first in a round; submitting the player's turn both completes the current
// round and, when the game continues, runs the next AI turn in the same call.
package engine
