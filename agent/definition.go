package agent

import (
	"context"
	"strings"
	"sync"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/model"
	anthropicmodel "github.com/hina-lin/sustainet-inc/model/anthropic"
	openaimodel "github.com/hina-lin/sustainet-inc/model/openai"
)

// Well-known collaborator agent names.
const (
	// GeneratorAgentName identifies the misinformation content generator.
	GeneratorAgentName = "fake_news_agent"
	// EvaluatorAgentName identifies the game master scoring agent.
	EvaluatorAgentName = "game_master_agent"
	// CommentAgentName identifies the crowd comment simulator.
	CommentAgentName = "simulate_comments_agent"
	// PolishAgentName identifies the article polish agent.
	PolishAgentName = "news_polish_agent"
)

// Definition configures one named collaborator agent.
type Definition struct {
	Name        string  `json:"agent_name"`
	Provider    string  `json:"provider"`
	ModelName   string  `json:"model_name"`
	Description string  `json:"description,omitempty"`
	Instruction string  `json:"instruction,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// DefinitionSource looks up agent definitions by name. Implementations must
// return a not-found taxonomy error for unknown names.
type DefinitionSource interface {
	AgentDefinition(ctx context.Context, name string) (Definition, error)
}

// ModelFactory turns a definition into a model backend.
type ModelFactory func(def Definition) (model.Model, error)

// DefaultModelFactory resolves the provider field to the bundled backends.
func DefaultModelFactory(def Definition) (model.Model, error) {
	switch strings.ToLower(def.Provider) {
	case "openai", "":
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			if def.ModelName != "" {
				o.Model = def.ModelName
			}
			if def.Temperature > 0 {
				o.Temperature = def.Temperature
			}
		}), nil
	case "anthropic":
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			if def.ModelName != "" {
				o.Model = anthropicsdk.Model(def.ModelName)
			}
			if def.Temperature > 0 {
				o.Temperature = def.Temperature
			}
		}), nil
	default:
		return nil, apperrors.New(apperrors.CodeProviderNotSupported, "unsupported model provider: "+def.Provider)
	}
}

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// Factory builds model backends from definitions.
	Factory ModelFactory
}

// Registry resolves named agent definitions to model backends, caching the
// constructed backend per agent name. Safe for concurrent use.
type Registry struct {
	source  DefinitionSource
	factory ModelFactory

	mu    sync.RWMutex
	cache map[string]model.Model
}

// NewRegistry constructs a Registry over the given definition source.
func NewRegistry(source DefinitionSource, optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Factory: DefaultModelFactory}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{source: source, factory: opts.Factory, cache: make(map[string]model.Model)}
}

// Resolve returns the model backend and definition for an agent name.
// A missing definition is a configuration error: fatal, not retried.
func (r *Registry) Resolve(ctx context.Context, name string) (model.Model, Definition, error) {
	def, err := r.source.AgentDefinition(ctx, name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, Definition{}, apperrors.Wrap(apperrors.CodeAgentNotConfigured, "agent "+name+" is not configured", err)
		}
		return nil, Definition{}, err
	}

	r.mu.RLock()
	m, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return m, def, nil
	}

	m, err = r.factory(def)
	if err != nil {
		return nil, Definition{}, err
	}

	r.mu.Lock()
	r.cache[name] = m
	r.mu.Unlock()
	return m, def, nil
}
