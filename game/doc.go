// Package game defines the aggregate and value objects for a misinformation
// simulation session: the Game aggregate with its per-platform trust and
// spread metrics, articles published by the two actors, and the randomized
// initialization that pairs platforms with audiences.
//
// Trust and spread values are bounded integers in [0,100]; every mutation
// goes through Score.Apply which clamps, so the invariant holds at all times.
package game
