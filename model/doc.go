// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with language models inside Sustainet.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Single-shot generation: the game's collaborators issue one blocking
//     structured call per turn step, no streaming and no fan-out
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so higher layers (agents, engine) remain decoupled from vendor SDKs.
package model
