package game

import (
	"math/rand"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/internal/util"
)

// DefaultPlatformNames is the fixed platform set of the simulation.
var DefaultPlatformNames = []string{"Facebook", "Instagram", "Thread"}

// DefaultAudiences are the audience labels paired with platforms at start.
var DefaultAudiences = []string{"young", "middle-aged", "elderly"}

// DefaultBaseline is the initial trust and spread value for every platform.
const DefaultBaseline = 50

// InitializerOptions configure game creation.
type InitializerOptions struct {
	// PlatformNames overrides the fixed platform set.
	PlatformNames []string
	// Audiences overrides the audience labels; must match PlatformNames in length.
	Audiences []string
	// Baseline is the initial trust/spread value, clamped to [0,100].
	Baseline int
	// Rand is the shuffle source. Initialization is deterministic given it.
	Rand *rand.Rand
	// NewSessionID overrides session id generation (tests).
	NewSessionID func() string
}

// Initializer builds fresh games with a randomized platform↔audience
// assignment. It has no side effects; persistence is the engine's concern.
type Initializer struct {
	platformNames []string
	audiences     []string
	baseline      Score
	rand          *rand.Rand
	newSessionID  func() string
}

// NewInitializer constructs an Initializer with optional overrides.
func NewInitializer(optFns ...func(o *InitializerOptions)) (*Initializer, error) {
	opts := InitializerOptions{
		PlatformNames: DefaultPlatformNames,
		Audiences:     DefaultAudiences,
		Baseline:      DefaultBaseline,
		NewSessionID:  util.NewSessionID,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.PlatformNames) == 0 || len(opts.PlatformNames) != len(opts.Audiences) {
		return nil, apperrors.New(apperrors.CodePlatformConfigInvalid, "platform and audience sets must be non-empty and equal in length")
	}

	return &Initializer{
		platformNames: opts.PlatformNames,
		audiences:     opts.Audiences,
		baseline:      NewScore(opts.Baseline),
		rand:          opts.Rand,
		newSessionID:  opts.NewSessionID,
	}, nil
}

// NewGame generates a session id and pairs the platform set with a uniformly
// shuffled copy of the audience set (bijective, no repeats). The round starts
// at 1 and all trust/spread values at the baseline.
func (i *Initializer) NewGame() *Game {
	audiences := make([]string, len(i.audiences))
	copy(audiences, i.audiences)
	i.shuffle(audiences)

	platforms := make([]Platform, len(i.platformNames))
	for idx, name := range i.platformNames {
		platforms[idx] = Platform{
			Name:        name,
			Audience:    audiences[idx],
			PlayerTrust: i.baseline,
			AITrust:     i.baseline,
			SpreadRate:  i.baseline,
		}
	}

	return &Game{
		SessionID:    i.newSessionID(),
		CurrentRound: 1,
		Platforms:    platforms,
	}
}

func (i *Initializer) shuffle(values []string) {
	swap := func(a, b int) { values[a], values[b] = values[b], values[a] }
	if i.rand != nil {
		i.rand.Shuffle(len(values), swap)
		return
	}
	rand.Shuffle(len(values), swap)
}
