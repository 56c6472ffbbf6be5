// Package turn executes single turns for both actors and orchestrates the
// game master evaluation.
//
// The Executor runs one actor's turn: for the AI it assembles the generation
// variables (reference news, roster, history, unlocked tools) and lets the
// content generator pick the target platform; for the player it publishes the
// caller-supplied article. Unknown or empty platform names fall back to the
// first configured platform with a logged warning. Crowd comment simulation
// degrades to an empty list and never aborts a turn.
//
// The GameMaster wraps the evaluation collaborator and validates its output
// shape: exactly one status entry per known platform with pre-clamp values in
// [0,100]. A validation failure or collaborator error yields a conservative
// zero-delta evaluation instead of an error.
package turn
