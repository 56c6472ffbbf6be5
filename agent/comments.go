package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/model"
)

// DefaultCommentInstruction is used when the agent definition carries no
// instruction.
const DefaultCommentInstruction = `You simulate crowd reactions on one social platform.
Given the article, platform and audience in the input, respond with a JSON
object {"comments": ["..."]} of short reactions in the audience's voice.`

// ModelCommentSimulatorOptions configure a ModelCommentSimulator.
type ModelCommentSimulatorOptions struct {
	Instruction string
	Temperature float64
	Logger      logging.Logger
}

// ModelCommentSimulator is the model-backed CommentSimulator.
type ModelCommentSimulator struct {
	model       model.Model
	instruction string
	temperature float64
	logger      logging.Logger
}

// NewModelCommentSimulator constructs a simulator over the given model backend.
func NewModelCommentSimulator(m model.Model, optFns ...func(o *ModelCommentSimulatorOptions)) *ModelCommentSimulator {
	opts := ModelCommentSimulatorOptions{
		Instruction: DefaultCommentInstruction,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Instruction == "" {
		opts.Instruction = DefaultCommentInstruction
	}
	return &ModelCommentSimulator{model: m, instruction: opts.Instruction, temperature: opts.Temperature, logger: opts.Logger}
}

// Simulate implements CommentSimulator. Errors propagate so callers can
// apply the degrade-to-empty policy in one place.
func (s *ModelCommentSimulator) Simulate(ctx context.Context, input CommentInput) ([]string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal comment input: %w", err)
	}

	start := time.Now()
	resp, err := s.model.Complete(ctx, model.Request{
		Instructions: s.instruction,
		Input:        string(payload),
		Temperature:  s.temperature,
	})
	if err != nil {
		s.logger.Warn("comment simulation failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("simulate comments: %w", err)
	}
	s.logger.Debug("comment simulation completed", "duration", time.Since(start))

	return ParseComments(resp.Text), nil
}
