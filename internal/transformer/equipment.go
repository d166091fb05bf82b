package transformer

import (
	"context"
	"fmt"

	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
)

// applyEquipmentLimitation scans the whole plan for exercises needing the
// unavailable equipment and substitutes each one when a replacement can be
// found. Exercises with no viable replacement keep their slot and gain a
// warning note.
func (t *Transformer) applyEquipmentLimitation(ctx context.Context, plan *models.Plan, eq models.EquipmentLimitation) (outcome, error) {
	unavailable := knowledge.NormalizeEquipment(eq.Equipment)
	if unavailable == "" {
		return outcome{}, fmt.Errorf("equipment limitation has no equipment name")
	}

	substituted := 0
	warned := 0
	var lastDay, lastExercise string

	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			if !t.knowledge.RequiresEquipment(ctx, ex.Name, unavailable) {
				continue
			}

			replacement, found := t.knowledge.FindSubstitute(ctx, ex.Name, unavailable, eq.Alternative)
			if found {
				original := ex.Name
				ex.Name = replacement
				ex.AppendNote(fmt.Sprintf("Substituted for %s (%s unavailable)", original, unavailable))
				substituted++
				lastDay = day
				lastExercise = replacement
				continue
			}

			ex.AppendNote("Warning: Requires " + unavailable)
			warned++
			lastDay = day
			lastExercise = ex.Name
		}
	}

	switch {
	case substituted == 0 && warned == 0:
		return outcome{
			Text: fmt.Sprintf("No exercise in the plan requires %s.", unavailable),
		}, nil
	case substituted > 0 && warned > 0:
		return outcome{
			Changed:  true,
			Text:     fmt.Sprintf("Substituted %d exercise(s); %d exercise(s) kept with an equipment warning.", substituted, warned),
			Day:      lastDay,
			Exercise: lastExercise,
		}, nil
	case substituted > 0:
		return outcome{
			Changed:  true,
			Text:     fmt.Sprintf("Substituted %d exercise(s) that required %s.", substituted, unavailable),
			Day:      lastDay,
			Exercise: lastExercise,
		}, nil
	default:
		return outcome{
			Changed:  true,
			Text:     fmt.Sprintf("No substitute found; added an equipment warning to %d exercise(s).", warned),
			Day:      lastDay,
			Exercise: lastExercise,
		}, nil
	}
}
