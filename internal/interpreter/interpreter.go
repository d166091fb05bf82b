package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claude/replan/internal/models"
)

// LanguageModel is the external language-understanding port. Implementations
// return the model's raw text output; the interpreter owns all parsing and
// recovery.
type LanguageModel interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Interpreter converts free-text feedback into ParsedFeedback. It never
// fails outward: model errors and unusable output route to the deterministic
// fallback parser.
type Interpreter struct {
	llm LanguageModel
	log *slog.Logger
}

// New creates an interpreter. A nil model means fallback-only operation.
func New(llm LanguageModel, log *slog.Logger) *Interpreter {
	return &Interpreter{llm: llm, log: log}
}

// Parse interprets feedback text. All eight directive categories are present
// (possibly empty) in the result.
func (i *Interpreter) Parse(ctx context.Context, text string) models.ParsedFeedback {
	if i.llm != nil {
		raw, err := i.llm.Complete(ctx, systemPrompt, text)
		if err != nil {
			i.log.Warn("language model call failed, using fallback parser", "error", err)
		} else {
			fb, err := decodeFeedback(raw)
			if err != nil {
				i.log.Warn("unusable language model output, using fallback parser", "error", err)
			} else {
				fb.Normalize()
				return *fb
			}
		}
	}

	fb := FallbackParse(text)
	fb.Normalize()
	return fb
}

// decodeFeedback parses the model's raw output into ParsedFeedback. Markdown
// code fences are tolerated; anything that isn't a JSON object is rejected.
func decodeFeedback(raw string) (*models.ParsedFeedback, error) {
	raw = stripFences(raw)
	if !strings.HasPrefix(raw, "{") {
		return nil, fmt.Errorf("model output is not a JSON object")
	}

	var fb models.ParsedFeedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}
	return &fb, nil
}

// stripFences removes a wrapping markdown code fence (``` or ```json).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
