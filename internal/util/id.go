package util

import (
	"fmt"

	"github.com/google/uuid"
)

// NewSessionID returns a fresh opaque game session identifier of the form
// "game_<32 hex chars>".
func NewSessionID() string {
	return fmt.Sprintf("game_%x", [16]byte(uuid.New()))
}

// NewID returns a plain UUID string for record identifiers.
func NewID() string {
	return uuid.New().String()
}
