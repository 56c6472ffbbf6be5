package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/model"
)

// DefaultPolishInstruction is used when the agent definition carries no
// instruction.
const DefaultPolishInstruction = `You polish a player's news draft per the stated requirements.
Respond with only the polished article text.`

// ModelPolisherOptions configure a ModelPolisher.
type ModelPolisherOptions struct {
	Instruction string
	Temperature float64
	Logger      logging.Logger
}

// ModelPolisher is the model-backed Polisher.
type ModelPolisher struct {
	model       model.Model
	instruction string
	temperature float64
	logger      logging.Logger
}

// NewModelPolisher constructs a polisher over the given model backend.
func NewModelPolisher(m model.Model, optFns ...func(o *ModelPolisherOptions)) *ModelPolisher {
	opts := ModelPolisherOptions{
		Instruction: DefaultPolishInstruction,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Instruction == "" {
		opts.Instruction = DefaultPolishInstruction
	}
	return &ModelPolisher{model: m, instruction: opts.Instruction, temperature: opts.Temperature, logger: opts.Logger}
}

// Polish implements Polisher.
func (p *ModelPolisher) Polish(ctx context.Context, input PolishInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal polish input: %w", err)
	}

	resp, err := p.model.Complete(ctx, model.Request{
		Instructions: p.instruction,
		Input:        string(payload),
		Temperature:  p.temperature,
	})
	if err != nil {
		p.logger.Error("polish failed", "error", err)
		return "", fmt.Errorf("polish article: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
