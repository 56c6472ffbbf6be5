package agent

import (
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
)

// The parsers below are the permissive boundary between collaborator output
// and the engine. Each accepts the tagged union the collaborators are known
// to emit (a structured JSON object, a bare JSON list, or freeform text) and
// normalizes it to one canonical result. Where degradation is tolerable
// (comments) total failure yields an empty result; where it is not
// (generation, evaluation) it yields a business-logic error.

// extractJSON returns the best JSON candidate inside text: the text itself,
// a fenced code block, or the widest brace/bracket-delimited substring.
func extractJSON(text string) (gjson.Result, bool) {
	candidates := []string{strings.TrimSpace(text)}

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			candidates = append(candidates, strings.TrimSpace(rest[:end]))
		}
	}

	for _, open := range []string{"{", "["} {
		close := "}"
		if open == "[" {
			close = "]"
		}
		start := strings.Index(text, open)
		end := strings.LastIndex(text, close)
		if start >= 0 && end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	for _, c := range candidates {
		if c != "" && gjson.Valid(c) {
			return gjson.Parse(c), true
		}
	}
	return gjson.Result{}, false
}

// ParseGeneration normalizes content-generator output. Title and content are
// required; everything else is optional. Malformed output surfaces as a
// business-logic error, not retried.
func ParseGeneration(text string) (*Generation, error) {
	doc, ok := extractJSON(text)
	if !ok || !doc.IsObject() {
		return nil, apperrors.New(apperrors.CodeMalformedAgentOutput, "generator output is not a JSON object")
	}

	gen := &Generation{
		Title:          doc.Get("title").String(),
		Content:        doc.Get("content").String(),
		ImageURL:       doc.Get("image_url").String(),
		Source:         doc.Get("source").String(),
		Veracity:       doc.Get("veracity").String(),
		TargetPlatform: doc.Get("target_platform").String(),
	}
	if gen.Title == "" || gen.Content == "" {
		return nil, apperrors.New(apperrors.CodeMalformedAgentOutput, "generator output missing title or content")
	}

	doc.Get("tool_used").ForEach(func(_, value gjson.Result) bool {
		name := value.String()
		if value.IsObject() {
			name = value.Get("tool_name").String()
		}
		if name != "" {
			gen.ToolsUsed = append(gen.ToolsUsed, name)
		}
		return true
	})

	return gen, nil
}

// ParseEvaluation normalizes game-master output. The numeric deltas and the
// per-platform status list are required; shape validation against the known
// roster happens in the turn package.
func ParseEvaluation(text string) (*Evaluation, error) {
	doc, ok := extractJSON(text)
	if !ok || !doc.IsObject() {
		return nil, apperrors.New(apperrors.CodeMalformedAgentOutput, "evaluation output is not a JSON object")
	}

	trust := doc.Get("trust_change")
	spread := doc.Get("spread_change")
	if !trust.Exists() || !spread.Exists() {
		return nil, apperrors.New(apperrors.CodeMalformedAgentOutput, "evaluation output missing trust_change or spread_change")
	}

	eval := &Evaluation{
		TrustChange:       int(trust.Int()),
		SpreadChange:      int(spread.Int()),
		ReachCount:        int(doc.Get("reach_count").Int()),
		Effectiveness:     NormalizeEffectiveness(doc.Get("effectiveness").String()),
		CrowdReaction:     doc.Get("crowd_reaction").String(),
		SimulatedComments: stringList(doc.Get("simulated_comments")),
	}

	doc.Get("platform_status").ForEach(func(_, value gjson.Result) bool {
		name := value.Get("platform_name").String()
		if name == "" {
			name = value.Get("platform").String()
		}
		spreadVal := value.Get("spread")
		if !spreadVal.Exists() {
			spreadVal = value.Get("spread_rate")
		}
		eval.PlatformStatus = append(eval.PlatformStatus, PlatformSnapshot{
			PlatformName: name,
			PlayerTrust:  int(value.Get("player_trust").Int()),
			AITrust:      int(value.Get("ai_trust").Int()),
			Spread:       int(spreadVal.Int()),
		})
		return true
	})

	return eval, nil
}

// ParseComments normalizes crowd-simulation output: an object with a comments
// field (list or single string), a bare list, or freeform text split into
// lines. Total failure defaults to empty; it never errors.
func ParseComments(text string) []string {
	if doc, ok := extractJSON(text); ok {
		switch {
		case doc.IsObject():
			comments := doc.Get("comments")
			if comments.IsArray() {
				return stringList(comments)
			}
			if s := comments.String(); s != "" {
				return []string{s}
			}
		case doc.IsArray():
			return stringList(doc)
		}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func stringList(value gjson.Result) []string {
	var res []string
	value.ForEach(func(_, item gjson.Result) bool {
		if s := item.String(); s != "" {
			res = append(res, s)
		}
		return true
	})
	return res
}
