package validator

import (
	"fmt"
	"strings"

	"github.com/claude/replan/internal/models"
)

// AnalyzeFeasibility checks that every substitution, volume, and intensity
// directive targets an exercise that actually exists in the plan.
// Directives targeting "all" are always feasible.
func (v *Validator) AnalyzeFeasibility(plan *models.Plan, fb models.ParsedFeedback) models.Feasibility {
	var result models.Feasibility

	record := func(t models.DirectiveType, item any, target string) {
		if strings.EqualFold(target, models.TargetAll) || plan.FindExercise(target) {
			result.Feasible = append(result.Feasible, models.DirectiveItem{Type: t, Item: item})
			return
		}
		result.Infeasible = append(result.Infeasible, models.BlockedDirective{
			Type:   t,
			Item:   item,
			Reason: fmt.Sprintf("exercise %q not found in the plan", target),
		})
	}

	for _, sub := range fb.Substitutions {
		record(models.DirectiveSubstitution, sub, sub.From)
	}
	for _, va := range fb.VolumeAdjustments {
		record(models.DirectiveVolume, va, va.Exercise)
	}
	for _, ia := range fb.IntensityAdjustments {
		record(models.DirectiveIntensity, ia, ia.Exercise)
	}

	return result
}
