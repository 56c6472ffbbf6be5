package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/model"
)

// DefaultEvaluatorInstruction is used when the agent definition carries no
// instruction.
const DefaultEvaluatorInstruction = `You are the game master scoring one published article.
Respond with a single JSON object: {"trust_change", "spread_change",
"reach_count", "effectiveness": "low"|"medium"|"high", "crowd_reaction",
"platform_status": [{"platform_name", "player_trust", "ai_trust", "spread"}],
"simulated_comments": []}. Include every platform of the roster exactly once
with values in [0,100].`

// ModelEvaluatorOptions configure a ModelEvaluator.
type ModelEvaluatorOptions struct {
	Instruction string
	Temperature float64
	Logger      logging.Logger
}

// ModelEvaluator is the model-backed Evaluator.
type ModelEvaluator struct {
	model       model.Model
	instruction string
	temperature float64
	logger      logging.Logger
}

// NewModelEvaluator constructs an evaluator over the given model backend.
func NewModelEvaluator(m model.Model, optFns ...func(o *ModelEvaluatorOptions)) *ModelEvaluator {
	opts := ModelEvaluatorOptions{
		Instruction: DefaultEvaluatorInstruction,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Instruction == "" {
		opts.Instruction = DefaultEvaluatorInstruction
	}
	return &ModelEvaluator{model: m, instruction: opts.Instruction, temperature: opts.Temperature, logger: opts.Logger}
}

// Evaluate implements Evaluator. The article's veracity is visible to the
// game master; it is the callers that sanitize before external exposure.
func (e *ModelEvaluator) Evaluate(ctx context.Context, input EvaluationInput) (*Evaluation, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation input: %w", err)
	}

	start := time.Now()
	resp, err := e.model.Complete(ctx, model.Request{
		Instructions: e.instruction,
		Input:        string(payload),
		Temperature:  e.temperature,
	})
	if err != nil {
		e.logger.Error("evaluation failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("evaluate article: %w", err)
	}
	e.logger.Debug("evaluation completed", "duration", time.Since(start))

	return ParseEvaluation(resp.Text)
}
