package engine

import (
	"context"
	"fmt"

	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/storage"
)

// LoadGame reconstitutes the aggregate purely from persisted state: the
// session setup fixes the platform order and audiences, the latest per-round
// state rows supply the metrics and the round record the current round. A
// missing setup and missing state rows surface as distinct not-found errors.
func (e *Engine) LoadGame(ctx context.Context, sessionID string) (*game.Game, error) {
	setup, err := e.store.GetSetup(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load game setup: %w", err)
	}

	states, err := e.store.LatestStates(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load game state: %w", err)
	}
	byPlatform := make(map[string]storage.PlatformState, len(states))
	for _, row := range states {
		byPlatform[row.PlatformName] = row
	}

	round, err := e.store.CurrentRound(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load game round: %w", err)
	}

	platforms := make([]game.Platform, 0, len(setup))
	for _, row := range setup {
		state, ok := byPlatform[row.Platform]
		if !ok {
			return nil, apperrors.New(apperrors.CodeRoundStateNotFound,
				fmt.Sprintf("no state rows for platform %s of session %s", row.Platform, sessionID))
		}
		platforms = append(platforms, game.Platform{
			Name:        row.Platform,
			Audience:    row.Audience,
			PlayerTrust: game.NewScore(state.PlayerTrust),
			AITrust:     game.NewScore(state.AITrust),
			SpreadRate:  game.NewScore(state.SpreadRate),
		})
	}

	return &game.Game{
		SessionID:    sessionID,
		CurrentRound: round.RoundNumber,
		Platforms:    platforms,
	}, nil
}
