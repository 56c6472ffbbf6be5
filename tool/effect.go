package tool

import (
	"math"

	"github.com/hina-lin/sustainet-inc/game"
)

// UsageKey identifies one (tool, user) pair within a game.
type UsageKey struct {
	Tool string
	User game.Actor
}

// Application records one requested tool during effect application. Only
// effective applications are persisted as usage history.
type Application struct {
	Tool         string     `json:"tool"`
	User         game.Actor `json:"user"`
	Effective    bool       `json:"effective"`
	TrustEffect  float64    `json:"trust_effect"`
	SpreadEffect float64    `json:"spread_effect"`
}

// Adjustment is the outcome of applying tool effects to evaluated deltas.
type Adjustment struct {
	TrustChange  int           `json:"trust_change"`
	SpreadChange int           `json:"spread_change"`
	Applications []Application `json:"applications"`
}

// Applicator applies multiplicative tool bonuses to evaluated deltas,
// idempotently per (tool, user) pair for the lifetime of a game.
type Applicator struct {
	catalog Catalog
}

// NewApplicator constructs an Applicator over the given catalog.
func NewApplicator(catalog Catalog) *Applicator {
	return &Applicator{catalog: catalog}
}

// Apply composes the effective tools' factors onto trustChange and
// spreadChange. A requested tool is applicable only if it exists in the
// catalog and its role matches the actor or "both". A (tool, user) pair
// already present in used, or repeated within one request, yields an
// accepted but non-effective application for the later occurrences
// (anti-grinding); it is never an error. Effective factors compose
// multiplicatively and commute, so request order does not matter.
//
// The caller re-clamps resulting platform values after composition.
func (a *Applicator) Apply(trustChange, spreadChange int, actor game.Actor, requested []string, used map[UsageKey]bool) Adjustment {
	adj := Adjustment{TrustChange: trustChange, SpreadChange: spreadChange}
	trustFactor := 1.0
	spreadFactor := 1.0
	seen := make(map[UsageKey]bool, len(requested))

	for _, name := range requested {
		app := Application{Tool: name, User: actor, TrustEffect: 1.0, SpreadEffect: 1.0}

		key := UsageKey{Tool: name, User: actor}
		t, ok := a.catalog.Get(name)
		if ok && t.ApplicableToActor(actor) && !used[key] && !seen[key] {
			seen[key] = true
			app.Effective = true
			app.TrustEffect = t.TrustEffect
			app.SpreadEffect = t.SpreadEffect
			trustFactor *= t.TrustEffect
			spreadFactor *= t.SpreadEffect
		}

		adj.Applications = append(adj.Applications, app)
	}

	adj.TrustChange = scale(trustChange, trustFactor)
	adj.SpreadChange = scale(spreadChange, spreadFactor)
	return adj
}

// Effective returns only the effective applications.
func (adj Adjustment) Effective() []Application {
	var res []Application
	for _, app := range adj.Applications {
		if app.Effective {
			res = append(res, app)
		}
	}
	return res
}

// scale multiplies a delta by the composed factor, rounding half away from
// zero so symmetric positive and negative deltas behave alike.
func scale(delta int, factor float64) int {
	return int(math.Round(float64(delta) * factor))
}
