package engine

import (
	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/turn"
)

// PlatformStatus is the outward per-platform view.
type PlatformStatus struct {
	Name        string `json:"name"`
	Audience    string `json:"audience"`
	PlayerTrust int    `json:"player_trust"`
	AITrust     int    `json:"ai_trust"`
	SpreadRate  int    `json:"spread_rate"`
}

// ActionSummary is the outward view of one evaluated turn. Articles are
// sanitized: the AI's veracity never leaves the engine.
type ActionSummary struct {
	Actor             game.Actor   `json:"actor"`
	Article           game.Article `json:"article"`
	Platform          string       `json:"platform"`
	TrustChange       int          `json:"trust_change"`
	SpreadChange      int          `json:"spread_change"`
	ReachCount        int          `json:"reach_count"`
	Effectiveness     string       `json:"effectiveness"`
	CrowdReaction     string       `json:"crowd_reaction,omitempty"`
	SimulatedComments []string     `json:"simulated_comments"`
}

// StartGameResponse is returned by Engine.StartGame.
type StartGameResponse struct {
	SessionID    string           `json:"session_id"`
	CurrentRound int              `json:"current_round"`
	Platforms    []PlatformStatus `json:"platforms"`
	AITurn       *ActionSummary   `json:"ai_turn,omitempty"`
	End          EndOutcome       `json:"end"`
}

// TurnResponse is returned by Engine.SubmitPlayerTurn.
type TurnResponse struct {
	SessionID    string           `json:"session_id"`
	RoundNumber  int              `json:"round_number"`
	CurrentRound int              `json:"current_round"`
	Platforms    []PlatformStatus `json:"platforms"`
	PlayerTurn   *ActionSummary   `json:"player_turn,omitempty"`
	NextAITurn   *ActionSummary   `json:"next_ai_turn,omitempty"`
	End          EndOutcome       `json:"end"`
}

// ResponseConverter maps domain state onto the outward DTOs.
type ResponseConverter struct{}

// PlatformList converts the aggregate's platforms.
func (ResponseConverter) PlatformList(g *game.Game) []PlatformStatus {
	res := make([]PlatformStatus, len(g.Platforms))
	for i, p := range g.Platforms {
		res[i] = PlatformStatus{
			Name:        p.Name,
			Audience:    p.Audience,
			PlayerTrust: p.PlayerTrust.Int(),
			AITrust:     p.AITrust.Int(),
			SpreadRate:  p.SpreadRate.Int(),
		}
	}
	return res
}

// Action converts one executed and evaluated turn.
func (ResponseConverter) Action(res *turn.Result, eval *agent.Evaluation, trustChange, spreadChange int) *ActionSummary {
	comments := res.Comments
	if len(comments) == 0 {
		comments = eval.SimulatedComments
	}
	if comments == nil {
		comments = []string{}
	}
	return &ActionSummary{
		Actor:             res.Actor,
		Article:           res.Article.Sanitized(),
		Platform:          res.PlatformName,
		TrustChange:       trustChange,
		SpreadChange:      spreadChange,
		ReachCount:        eval.ReachCount,
		Effectiveness:     string(eval.Effectiveness),
		CrowdReaction:     eval.CrowdReaction,
		SimulatedComments: comments,
	}
}
