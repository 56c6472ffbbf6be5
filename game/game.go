package game

// Actor identifies the entity taking a turn.
type Actor string

const (
	// ActorAI is the misinformation-spreading AI opponent.
	ActorAI Actor = "ai"
	// ActorPlayer is the human player countering it.
	ActorPlayer Actor = "player"
)

// Valid reports whether the actor is one of the two known actors.
func (a Actor) Valid() bool {
	return a == ActorAI || a == ActorPlayer
}

// Winner is the outcome of an ended game.
type Winner string

const (
	// WinnerAI marks an AI victory.
	WinnerAI Winner = "ai"
	// WinnerPlayer marks a player victory.
	WinnerPlayer Winner = "player"
	// WinnerDraw marks an exact trust tie.
	WinnerDraw Winner = "draw"
)

// Score is a bounded trust or spread value.
//
// Contract: a Score is always in [0,100]. Construct via NewScore and mutate
// via Apply; both clamp.
type Score int

const (
	// ScoreMin is the lower bound for trust and spread values.
	ScoreMin Score = 0
	// ScoreMax is the upper bound for trust and spread values.
	ScoreMax Score = 100
)

// NewScore clamps v into the valid range.
func NewScore(v int) Score {
	return Score(v).clamp()
}

// Apply adds delta and clamps the result. Out-of-range computed values are
// clamped, not rejected.
func (s Score) Apply(delta int) Score {
	return (s + Score(delta)).clamp()
}

// Int returns the score as a plain int.
func (s Score) Int() int { return int(s) }

func (s Score) clamp() Score {
	if s < ScoreMin {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}

// Platform is one simulated channel with its own trust and spread metrics.
type Platform struct {
	Name        string `json:"name"`
	Audience    string `json:"audience"`
	PlayerTrust Score  `json:"player_trust"`
	AITrust     Score  `json:"ai_trust"`
	SpreadRate  Score  `json:"spread_rate"`
}

// TrustFor returns the trust score of the given actor on this platform.
func (p Platform) TrustFor(actor Actor) Score {
	if actor == ActorAI {
		return p.AITrust
	}
	return p.PlayerTrust
}

// Game is the aggregate root for one session.
//
// Contract:
//   - CurrentRound starts at 1 and only increases by 1
//   - Platforms hold the latest evaluated state; values stay in [0,100]
type Game struct {
	SessionID    string     `json:"session_id"`
	CurrentRound int        `json:"current_round"`
	Platforms    []Platform `json:"platforms"`
}

// PlatformByName finds a platform by name.
func (g *Game) PlatformByName(name string) (*Platform, bool) {
	for i := range g.Platforms {
		if g.Platforms[i].Name == name {
			return &g.Platforms[i], true
		}
	}
	return nil, false
}

// FirstPlatform returns the first configured platform, the fallback target
// when an article names no platform or an unknown one.
func (g *Game) FirstPlatform() *Platform {
	if len(g.Platforms) == 0 {
		return nil
	}
	return &g.Platforms[0]
}

// ResolvePlatform returns the platform matching name, or the first configured
// platform together with false when the name is empty or unknown.
func (g *Game) ResolvePlatform(name string) (*Platform, bool) {
	if p, ok := g.PlatformByName(name); ok {
		return p, true
	}
	return g.FirstPlatform(), false
}

// SummedTrust returns the actor's trust summed across all platforms.
func (g *Game) SummedTrust(actor Actor) int {
	total := 0
	for _, p := range g.Platforms {
		total += p.TrustFor(actor).Int()
	}
	return total
}

// AdvanceRound moves the aggregate to the next round.
func (g *Game) AdvanceRound() {
	g.CurrentRound++
}
