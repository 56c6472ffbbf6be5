package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hina-lin/sustainet-inc/internal/util"
	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/model"
)

// DefaultGeneratorInstruction is the template used when the agent definition
// carries no instruction. Actual prompt content is supplied at deploy time.
const DefaultGeneratorInstruction = `You are the misinformation content generator for round {{.current_round}}.
Study the platform roster, the reference news and the player's history in the
input, choose one target platform yourself, and respond with a single JSON
object: {"title", "content", "image_url", "source", "veracity",
"target_platform", "tool_used": []}.`

// ModelGeneratorOptions configure a ModelGenerator.
type ModelGeneratorOptions struct {
	Instruction string
	Temperature float64
	Logger      logging.Logger
}

// ModelGenerator is the model-backed ContentGenerator.
type ModelGenerator struct {
	model       model.Model
	instruction string
	temperature float64
	logger      logging.Logger
}

// NewModelGenerator constructs a generator over the given model backend.
func NewModelGenerator(m model.Model, optFns ...func(o *ModelGeneratorOptions)) *ModelGenerator {
	opts := ModelGeneratorOptions{
		Instruction: DefaultGeneratorInstruction,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Instruction == "" {
		opts.Instruction = DefaultGeneratorInstruction
	}
	return &ModelGenerator{model: m, instruction: opts.Instruction, temperature: opts.Temperature, logger: opts.Logger}
}

// Generate implements ContentGenerator.
func (g *ModelGenerator) Generate(ctx context.Context, vars GenerationVariables) (*Generation, error) {
	instruction, err := util.RenderTemplate(g.instruction, map[string]any{
		"current_round": vars.CurrentRound,
	})
	if err != nil {
		return nil, fmt.Errorf("render generator instruction: %w", err)
	}

	input, err := json.Marshal(vars)
	if err != nil {
		return nil, fmt.Errorf("marshal generation variables: %w", err)
	}

	start := time.Now()
	resp, err := g.model.Complete(ctx, model.Request{
		Instructions: instruction,
		Input:        string(input),
		Temperature:  g.temperature,
	})
	if err != nil {
		g.logger.Error("content generation failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("generate content: %w", err)
	}
	g.logger.Debug("content generation completed", "duration", time.Since(start))

	return ParseGeneration(resp.Text)
}
