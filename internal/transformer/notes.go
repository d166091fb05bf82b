package transformer

import (
	"strings"

	"github.com/claude/replan/internal/models"
)

var advancedTechniqueSignals = []string{
	"drop set", "dropset", "superset", "super set", "amrap", "tempo",
	"pause rep", "rest-pause", "cluster set", "pyramid",
}

var timeConstraintSignals = []string{
	"only have", "minutes per", "shorter workout", "less time",
	"time for", "quick workout", "not enough time",
}

// applyFreeTextRequests handles the feedback that has no mechanical
// application: advanced technique requests, time constraints, and other
// free-text asks. Each appends a de-duplicated plan-level note and is
// logged as applied rather than silently dropped. Technique and time
// signals are noted even when the feedback also carried directives; only
// unsignaled general text is folded into the directives it restates.
func (t *Transformer) applyFreeTextRequests(plan *models.Plan, fb models.ParsedFeedback, a *application) {
	text := strings.TrimSpace(fb.GeneralFeedback)
	if text == "" {
		return
	}

	lower := strings.ToLower(text)
	typ := models.DirectiveOther
	note := "User request: " + text
	switch {
	case containsAnySignal(lower, advancedTechniqueSignals):
		typ = models.DirectiveAdvancedTechnique
		note = "Advanced technique request: " + text
	case containsAnySignal(lower, timeConstraintSignals):
		typ = models.DirectiveTimeConstraint
		note = "Time constraint: " + text
	default:
		if !fb.Empty() {
			// Unsignaled general text restates directives already handled
			// above; noting it again would duplicate the audit trail.
			return
		}
	}

	plan.AppendPlanNote(note)
	a.applied = append(a.applied, models.AppliedChange{
		Type:    typ,
		Details: text,
		Outcome: "Recorded as a plan note for the next programming review.",
	})
}

func containsAnySignal(s string, signals []string) bool {
	for _, sig := range signals {
		if strings.Contains(s, sig) {
			return true
		}
	}
	return false
}
