// Package validator scores adjustment directives on three independent
// dimensions (feasibility, safety, goal coherence) and validates a
// fully-adjusted plan. None of its operations mutate the plan.
package validator

import (
	"log/slog"

	"github.com/claude/replan/internal/knowledge"
)

// Validator holds the knowledge service used for contraindication lookups
// and exercise classification.
type Validator struct {
	knowledge *knowledge.Service
	log       *slog.Logger
}

// New creates a validator.
func New(ks *knowledge.Service, log *slog.Logger) *Validator {
	return &Validator{knowledge: ks, log: log}
}
