// Package errors provides the structured error taxonomy shared by the game
// engine. Errors carry a machine-readable Code so callers can distinguish
// configuration problems, missing resources, business-rule violations and
// request validation failures without string matching.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors: fatal, never retried.
	CodeAgentNotConfigured    Code = "AGENT_NOT_CONFIGURED"
	CodeProviderNotSupported  Code = "PROVIDER_NOT_SUPPORTED"
	CodeStorageNotConfigured  Code = "STORAGE_NOT_CONFIGURED"
	CodePlatformConfigInvalid Code = "PLATFORM_CONFIG_INVALID"

	// Resource-not-found errors: surfaced, not retried.
	CodeGameSetupNotFound  Code = "GAME_SETUP_NOT_FOUND"
	CodeRoundStateNotFound Code = "ROUND_STATE_NOT_FOUND"
	CodeRoundNotFound      Code = "ROUND_NOT_FOUND"
	CodeAgentNotFound      Code = "AGENT_NOT_FOUND"
	CodeToolNotFound       Code = "TOOL_NOT_FOUND"
	CodeNewsNotFound       Code = "NEWS_NOT_FOUND"

	// Business-logic errors: surfaced with a description.
	CodeMalformedAgentOutput Code = "MALFORMED_AGENT_OUTPUT"
	CodeInvalidTurnOrder     Code = "INVALID_TURN_ORDER"
	CodeGameAlreadyEnded     Code = "GAME_ALREADY_ENDED"
	CodeArticleRequired      Code = "ARTICLE_REQUIRED"

	// Validation errors: rejected at the boundary.
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeInvalidActor   Code = "INVALID_ACTOR"
)

// Kind groups codes into the four top-level failure families.
type Kind int

const (
	// KindUnknown covers errors outside the taxonomy.
	KindUnknown Kind = iota
	// KindConfiguration marks missing or unusable collaborator/storage configuration.
	KindConfiguration
	// KindNotFound marks missing persisted resources.
	KindNotFound
	// KindBusinessLogic marks violated game rules or malformed collaborator output.
	KindBusinessLogic
	// KindValidation marks malformed requests.
	KindValidation
)

// Kind maps a code to its failure family.
func (c Code) Kind() Kind {
	switch c {
	case CodeAgentNotConfigured,
		CodeProviderNotSupported,
		CodeStorageNotConfigured,
		CodePlatformConfigInvalid:
		return KindConfiguration
	case CodeGameSetupNotFound,
		CodeRoundStateNotFound,
		CodeRoundNotFound,
		CodeAgentNotFound,
		CodeToolNotFound,
		CodeNewsNotFound:
		return KindNotFound
	case CodeMalformedAgentOutput,
		CodeInvalidTurnOrder,
		CodeGameAlreadyEnded,
		CodeArticleRequired:
		return KindBusinessLogic
	case CodeInvalidRequest,
		CodeInvalidActor:
		return KindValidation
	default:
		return KindUnknown
	}
}
