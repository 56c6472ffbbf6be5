package engine

import (
	"fmt"

	"github.com/hina-lin/sustainet-inc/game"
)

// EndOutcome is the advisory verdict of an end-of-game check. It never blocks
// a caller; the engine consults it to decide whether another round starts.
type EndOutcome struct {
	Ended   bool        `json:"ended"`
	Reason  string      `json:"reason,omitempty"`
	Winner  game.Winner `json:"winner,omitempty"`
	Summary string      `json:"summary,omitempty"`
}

// GameEndLogic decides when a game is over: either the configured round limit
// has been played out, or any actor's trust on any platform crosses the win
// or loss threshold.
type GameEndLogic struct {
	maxRounds     int
	winThreshold  int
	lossThreshold int
}

// NewGameEndLogic constructs the end detector from configured limits.
func NewGameEndLogic(maxRounds, winThreshold, lossThreshold int) *GameEndLogic {
	return &GameEndLogic{maxRounds: maxRounds, winThreshold: winThreshold, lossThreshold: lossThreshold}
}

// Check inspects the aggregate after completedRounds finished rounds.
func (l *GameEndLogic) Check(g *game.Game, completedRounds int) EndOutcome {
	for _, p := range g.Platforms {
		for _, actor := range []game.Actor{game.ActorAI, game.ActorPlayer} {
			trust := p.TrustFor(actor).Int()
			if trust >= l.winThreshold {
				return l.decide(g, fmt.Sprintf("%s trust on %s reached %d", actor, p.Name, trust))
			}
			if trust <= l.lossThreshold {
				return l.decide(g, fmt.Sprintf("%s trust on %s dropped to %d", actor, p.Name, trust))
			}
		}
	}
	if completedRounds >= l.maxRounds {
		return l.decide(g, fmt.Sprintf("round limit of %d reached", l.maxRounds))
	}
	return EndOutcome{}
}

// decide resolves the winner by strictly higher summed trust, draw on a tie.
func (l *GameEndLogic) decide(g *game.Game, reason string) EndOutcome {
	aiTrust := g.SummedTrust(game.ActorAI)
	playerTrust := g.SummedTrust(game.ActorPlayer)

	winner := game.WinnerDraw
	switch {
	case aiTrust > playerTrust:
		winner = game.WinnerAI
	case playerTrust > aiTrust:
		winner = game.WinnerPlayer
	}

	summary := fmt.Sprintf("Game over: %s. Summed trust: AI %d, player %d.", reason, aiTrust, playerTrust)
	if winner == game.WinnerDraw {
		summary += " The game ends in a draw."
	} else {
		summary += fmt.Sprintf(" The %s wins.", winner)
	}

	return EndOutcome{Ended: true, Reason: reason, Winner: winner, Summary: summary}
}
