package turn

import (
	"github.com/hina-lin/sustainet-inc/game"
)

// Result is the transient outcome of one executed turn. It carries no
// evaluation; the engine feeds it to the GameMaster and the tool applicator
// before anything is persisted.
type Result struct {
	Actor game.Actor `json:"actor"`
	// Article is the published content with the resolved target platform.
	Article game.Article `json:"article"`
	// PlatformName is the resolved target after fallback.
	PlatformName string `json:"platform_name"`
	// PlatformFallback reports that the named platform was empty or unknown
	// and the first configured platform was used instead.
	PlatformFallback bool `json:"platform_fallback"`
	// RequestedTools are the tool names claimed for this turn, unvalidated.
	RequestedTools []string `json:"requested_tools"`
	// NewsID is the primary reference news item of an AI turn, zero otherwise.
	NewsID int64 `json:"news_id,omitempty"`
	// Comments are the simulated crowd comments, empty when simulation failed.
	Comments []string `json:"comments"`
}
