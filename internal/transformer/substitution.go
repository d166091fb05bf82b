package transformer

import (
	"fmt"
	"strings"

	"github.com/claude/replan/internal/models"
)

// applySubstitution renames every case-insensitive occurrence of the source
// exercise, recording the source (and reason, when given) in an audit note.
// Reports the location of the last modification made.
func (t *Transformer) applySubstitution(plan *models.Plan, sub models.Substitution) (outcome, error) {
	if strings.TrimSpace(sub.From) == "" || strings.TrimSpace(sub.To) == "" {
		return outcome{}, fmt.Errorf("substitution needs both a source and a destination exercise")
	}

	note := "Substituted for " + sub.From
	if sub.Reason != "" {
		note += fmt.Sprintf(" (%s)", sub.Reason)
	}

	renamed := 0
	var lastDay string
	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			if !strings.EqualFold(ex.Name, sub.From) {
				continue
			}
			ex.Name = sub.To
			ex.AppendNote(note)
			renamed++
			lastDay = day
		}
	}

	if renamed == 0 {
		return outcome{}, fmt.Errorf("exercise %q not found in the plan", sub.From)
	}
	return outcome{
		Changed:  true,
		Text:     fmt.Sprintf("Replaced %d occurrence(s) of %q with %q.", renamed, sub.From, sub.To),
		Day:      lastDay,
		Exercise: sub.To,
	}, nil
}
