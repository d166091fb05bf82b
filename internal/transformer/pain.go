package transformer

import (
	"fmt"
	"strings"

	"github.com/claude/replan/internal/models"
)

// applyPainConcern annotates every occurrence of the named exercise with a
// caution note. A "general" concern produces no exercise-level note but is
// still acknowledged in the audit trail.
func (t *Transformer) applyPainConcern(plan *models.Plan, pc models.PainConcern) (outcome, error) {
	if strings.EqualFold(pc.Exercise, "general") || pc.Exercise == "" {
		return outcome{
			Text: fmt.Sprintf("General %s pain noted; no single exercise was flagged.", pc.Area),
		}, nil
	}

	note := fmt.Sprintf("Caution: %s pain reported", pc.Area)
	if pc.Severity != "" {
		note += fmt.Sprintf(" (%s)", pc.Severity)
	}
	note += "; reduce load or range as needed"

	touched := 0
	var lastDay string
	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			if !strings.EqualFold(ex.Name, pc.Exercise) {
				continue
			}
			ex.AppendNote(note)
			touched++
			lastDay = day
		}
	}

	if touched == 0 {
		return outcome{
			Text: fmt.Sprintf("%s pain noted, but %q does not appear in the plan.", pc.Area, pc.Exercise),
		}, nil
	}
	return outcome{
		Changed:  true,
		Text:     fmt.Sprintf("Added a caution note to %d occurrence(s) of %q.", touched, pc.Exercise),
		Day:      lastDay,
		Exercise: pc.Exercise,
	}, nil
}
