// Package agent defines the external collaborator boundary of the game
// engine: content generation, game-master evaluation, crowd-comment
// simulation and article polishing are all performed by opaque LLM-backed
// services behind small synchronous interfaces.
//
// Collaborator output is parsed permissively: each boundary accepts a tagged
// union of structured JSON, a bare list, or freeform text, normalized to one
// canonical result. Callers never branch on the runtime shape.
//
// Agent definitions (provider, model name, instruction, temperature) are
// looked up by name through a DefinitionSource and resolved to model backends
// by the Registry; a missing definition for a required collaborator is a
// configuration error, fatal and not retried.
package agent
