package agent

import (
	"context"
	"strings"

	"github.com/hina-lin/sustainet-inc/game"
)

// PlatformOption is the roster view handed to collaborators.
type PlatformOption struct {
	Name        string `json:"name"`
	Audience    string `json:"audience"`
	PlayerTrust int    `json:"player_trust"`
	AITrust     int    `json:"ai_trust"`
	SpreadRate  int    `json:"spread_rate"`
}

// PlatformOptions converts the aggregate's platforms to collaborator views.
func PlatformOptions(platforms []game.Platform) []PlatformOption {
	res := make([]PlatformOption, len(platforms))
	for i, p := range platforms {
		res[i] = PlatformOption{
			Name:        p.Name,
			Audience:    p.Audience,
			PlayerTrust: p.PlayerTrust.Int(),
			AITrust:     p.AITrust.Int(),
			SpreadRate:  p.SpreadRate.Int(),
		}
	}
	return res
}

// NewsItem is a reference news article supplied to the generator.
type NewsItem struct {
	Content  string `json:"content"`
	Veracity string `json:"veracity"`
	Source   string `json:"source"`
}

// ToolOption describes an unlocked tool offered to the generator.
type ToolOption struct {
	Name         string  `json:"tool_name"`
	Description  string  `json:"description"`
	TrustEffect  float64 `json:"trust_effect"`
	SpreadEffect float64 `json:"spread_effect"`
}

// PlayerResponse summarizes one prior player action for the generator.
type PlayerResponse struct {
	Round         int      `json:"round_number"`
	Platform      string   `json:"platform"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Effectiveness string   `json:"effectiveness"`
	TrustChange   int      `json:"trust_change"`
	SpreadChange  int      `json:"spread_change"`
	ReachCount    int      `json:"reach_count"`
	Comments      []string `json:"simulated_comments"`
}

// RoundFeedback summarizes the crowd reaction to the AI's previous turn.
type RoundFeedback struct {
	Round         int      `json:"previous_round"`
	Effectiveness string   `json:"previous_effectiveness"`
	TrustChange   int      `json:"previous_trust_change"`
	SpreadChange  int      `json:"previous_spread_change"`
	ReachCount    int      `json:"previous_reach_count"`
	Comments      []string `json:"crowd_reactions"`
}

// GenerationVariables is the bundle assembled for the content generator. The
// generator, not the orchestrator, chooses the target platform from it.
type GenerationVariables struct {
	News1           string           `json:"news_1"`
	News1Veracity   string           `json:"news_1_veracity"`
	News2           string           `json:"news_2"`
	News2Veracity   string           `json:"news_2_veracity"`
	AllPlatforms    []PlatformOption `json:"all_platforms"`
	CurrentRound    int              `json:"current_round"`
	PlayerResponses []PlayerResponse `json:"player_responses"`
	PrevFeedback    *RoundFeedback   `json:"ai_previous_feedback,omitempty"`
	AvailableTools  []ToolOption     `json:"available_tools"`
}

// Generation is the canonical structured output of the content generator.
type Generation struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	ImageURL       string   `json:"image_url"`
	Source         string   `json:"source"`
	Veracity       string   `json:"veracity"`
	TargetPlatform string   `json:"target_platform"`
	ToolsUsed      []string `json:"tool_used"`
}

// ContentGenerator produces the AI's article for a round.
type ContentGenerator interface {
	Generate(ctx context.Context, vars GenerationVariables) (*Generation, error)
}

// EvaluationInput carries one article plus the full roster to the evaluator.
// Round is passed through for audit only.
type EvaluationInput struct {
	Article        game.Article     `json:"article"`
	TargetPlatform string           `json:"target_platform"`
	Roster         []PlatformOption `json:"platform_roster"`
	Round          int              `json:"round_number"`
	Actor          game.Actor       `json:"actor"`
}

// Effectiveness is the ordinal rating of a turn.
type Effectiveness string

const (
	// EffectivenessLow rates a weak turn.
	EffectivenessLow Effectiveness = "low"
	// EffectivenessMedium rates an average turn.
	EffectivenessMedium Effectiveness = "medium"
	// EffectivenessHigh rates a strong turn.
	EffectivenessHigh Effectiveness = "high"
)

// NormalizeEffectiveness maps free-form ratings onto the ordinal scale,
// defaulting to medium.
func NormalizeEffectiveness(s string) Effectiveness {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return EffectivenessLow
	case "high":
		return EffectivenessHigh
	default:
		return EffectivenessMedium
	}
}

// PlatformSnapshot is one per-platform post-turn entry of the evaluation.
type PlatformSnapshot struct {
	PlatformName string `json:"platform_name"`
	PlayerTrust  int    `json:"player_trust"`
	AITrust      int    `json:"ai_trust"`
	Spread       int    `json:"spread"`
}

// Evaluation is the canonical structured output of the game master.
type Evaluation struct {
	TrustChange       int                `json:"trust_change"`
	SpreadChange      int                `json:"spread_change"`
	ReachCount        int                `json:"reach_count"`
	Effectiveness     Effectiveness      `json:"effectiveness"`
	CrowdReaction     string             `json:"crowd_reaction"`
	PlatformStatus    []PlatformSnapshot `json:"platform_status"`
	SimulatedComments []string           `json:"simulated_comments"`
}

// Evaluator scores one actor's article. Scoring policy lives entirely in the
// external collaborator; orchestration validates its shape.
type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluationInput) (*Evaluation, error)
}

// CommentInput carries the published article to the crowd simulation.
type CommentInput struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Platform string     `json:"platform"`
	Audience string     `json:"audience"`
	Actor    game.Actor `json:"actor"`
	Round    int        `json:"round_number"`
}

// CommentSimulator produces crowd comments for a published article.
// Failures degrade to an empty list and never abort a turn.
type CommentSimulator interface {
	Simulate(ctx context.Context, input CommentInput) ([]string, error)
}

// PolishInput carries a player's draft to the polish collaborator.
type PolishInput struct {
	Content      string `json:"content"`
	Requirements string `json:"requirements"`
	Platform     string `json:"platform,omitempty"`
	Audience     string `json:"audience,omitempty"`
}

// Polisher rewrites a player draft per the stated requirements.
type Polisher interface {
	Polish(ctx context.Context, input PolishInput) (string, error)
}
