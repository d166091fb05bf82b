package transformer

import (
	"fmt"
	"strings"

	"github.com/claude/replan/internal/models"
)

// applyIntensity records an intensity change as a descriptive note on the
// targeted exercises. Intensity is never a numeric field mutation: the
// note carries the instruction.
func (t *Transformer) applyIntensity(plan *models.Plan, ia models.IntensityAdjustment) (outcome, error) {
	if strings.TrimSpace(ia.Parameter) == "" {
		return outcome{}, fmt.Errorf("intensity adjustment has no parameter")
	}

	note := capitalize(ia.Change) + " " + ia.Parameter
	if v := ia.Value.String(); v != "" {
		note += " to " + v
	}
	if ia.Reason != "" {
		note += fmt.Sprintf(" (%s)", ia.Reason)
	}

	all := strings.EqualFold(ia.Exercise, models.TargetAll)
	annotated := 0
	var lastDay string

	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			if !all && !strings.EqualFold(ex.Name, ia.Exercise) {
				continue
			}
			ex.AppendNote(note)
			annotated++
			lastDay = day
		}
	}

	if annotated == 0 {
		return outcome{
			Text: fmt.Sprintf("No exercise matched %q for the intensity adjustment.", ia.Exercise),
		}, nil
	}
	return outcome{
		Changed:  true,
		Text:     fmt.Sprintf("Noted %q on %d exercise(s).", note, annotated),
		Day:      lastDay,
		Exercise: ia.Exercise,
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
