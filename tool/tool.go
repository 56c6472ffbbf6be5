// Package tool implements the catalog of actor-usable modifiers and the
// idempotent application of their multiplicative effects to evaluated trust
// and spread deltas.
package tool

import (
	"context"
	"sort"

	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
)

// Role restricts which actor may use a tool.
type Role string

const (
	// RoleAI marks tools usable only by the AI.
	RoleAI Role = "ai"
	// RolePlayer marks tools usable only by the player.
	RolePlayer Role = "player"
	// RoleBoth marks tools usable by either actor.
	RoleBoth Role = "both"
)

// Tool describes one modifier in the catalog.
//
// TrustEffect and SpreadEffect are multiplicative factors applied to the
// evaluated trust_change and spread_change. A factor of 1.0 is a no-op.
type Tool struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	ApplicableTo       Role    `json:"applicable_to"`
	TrustEffect        float64 `json:"trust_effect"`
	SpreadEffect       float64 `json:"spread_effect"`
	AvailableFromRound int     `json:"available_from_round"`
}

// ApplicableToActor reports whether the acting role may use this tool.
func (t Tool) ApplicableToActor(actor game.Actor) bool {
	return t.ApplicableTo == RoleBoth || string(t.ApplicableTo) == string(actor)
}

// UnlockedInRound reports whether the tool is available at the given round.
func (t Tool) UnlockedInRound(round int) bool {
	from := t.AvailableFromRound
	if from < 1 {
		from = 1
	}
	return round >= from
}

// Catalog exposes the tool set. It is explicitly constructed and injected by
// reference, scoped to process lifetime; there is no global registry.
type Catalog interface {
	// Get looks up a tool by name.
	Get(name string) (Tool, bool)
	// ForActor lists the tools the actor may use, in stable name order.
	ForActor(actor game.Actor) []Tool
}

// StaticCatalog is an in-memory Catalog.
type StaticCatalog struct {
	tools map[string]Tool
}

// NewStaticCatalog builds a catalog from the given tools. Later duplicates
// override earlier ones by name.
func NewStaticCatalog(tools ...Tool) *StaticCatalog {
	c := &StaticCatalog{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		c.tools[t.Name] = t
	}
	return c
}

// Get implements Catalog.
func (c *StaticCatalog) Get(name string) (Tool, bool) {
	t, ok := c.tools[name]
	return t, ok
}

// All lists every tool in the catalog in stable name order.
func (c *StaticCatalog) All() []Tool {
	res := make([]Tool, 0, len(c.tools))
	for _, t := range c.tools {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// ForActor implements Catalog.
func (c *StaticCatalog) ForActor(actor game.Actor) []Tool {
	res := make([]Tool, 0, len(c.tools))
	for _, t := range c.tools {
		if t.ApplicableToActor(actor) {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// DefinitionSource supplies persisted tool definitions.
type DefinitionSource interface {
	ToolDefinitions(ctx context.Context) ([]Tool, error)
}

// LoadCatalog builds a catalog from persisted definitions, so the tool set
// can be tuned without redeploying. An empty source is a configuration error.
func LoadCatalog(ctx context.Context, source DefinitionSource) (*StaticCatalog, error) {
	tools, err := source.ToolDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	if len(tools) == 0 {
		return nil, apperrors.New(apperrors.CodeToolNotFound, "no tool definitions stored")
	}
	return NewStaticCatalog(tools...), nil
}

// UnlockedForActor lists the actor's tools whose AvailableFromRound has been
// reached by the given round.
func UnlockedForActor(c Catalog, actor game.Actor, round int) []Tool {
	var res []Tool
	for _, t := range c.ForActor(actor) {
		if t.UnlockedInRound(round) {
			res = append(res, t)
		}
	}
	return res
}
