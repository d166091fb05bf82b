package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
)

// CheckSafety judges directives against the user's medical conditions.
// A substitution is unsafe iff its destination exercise appears on a
// contraindication block-list. Volume and intensity increases are safe but
// produce a cautionary warning. Pain concerns always produce a review
// warning and never block processing on their own.
func (v *Validator) CheckSafety(ctx context.Context, fb models.ParsedFeedback, profile models.UserProfile) models.Safety {
	var result models.Safety

	rules := v.knowledge.ContraindicationsFor(ctx, profile.MedicalConditions)

	for _, sub := range fb.Substitutions {
		if cond, blocked := blockedBy(rules, sub.To); blocked {
			result.Unsafe = append(result.Unsafe, models.BlockedDirective{
				Type:   models.DirectiveSubstitution,
				Item:   sub,
				Reason: fmt.Sprintf("%q is contraindicated for condition %q", sub.To, cond),
			})
			continue
		}
		result.Safe = append(result.Safe, models.DirectiveItem{Type: models.DirectiveSubstitution, Item: sub})
		if warning := movementWarning(sub.To, profile.MedicalConditions); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	for _, va := range fb.VolumeAdjustments {
		result.Safe = append(result.Safe, models.DirectiveItem{Type: models.DirectiveVolume, Item: va})
		if va.Change == models.ChangeIncrease {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Increasing %s for %q: progress gradually to avoid overuse injury.", va.Property, va.Exercise))
		}
	}

	for _, ia := range fb.IntensityAdjustments {
		result.Safe = append(result.Safe, models.DirectiveItem{Type: models.DirectiveIntensity, Item: ia})
		if ia.Change == models.ChangeIncrease {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Increasing %s for %q: progress gradually to avoid overuse injury.", ia.Parameter, ia.Exercise))
		}
	}

	for _, pc := range fb.PainConcerns {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Pain reported in the %s: review exercises stressing that area before continuing.", pc.Area))
	}

	return result
}

// blockedBy reports whether an exercise appears on any contraindication
// block-list, returning the matching condition.
func blockedBy(rules []knowledge.Contraindication, exercise string) (string, bool) {
	for _, rule := range rules {
		for _, avoid := range rule.ExercisesToAvoid {
			if strings.EqualFold(avoid, exercise) {
				return rule.Condition, true
			}
		}
	}
	return "", false
}

// movementWarning flags heuristic movement/condition combinations that are
// legal but deserve attention, e.g. jumping with a knee condition.
func movementWarning(exercise string, conditions []string) string {
	name := strings.ToLower(exercise)
	if !strings.Contains(name, "jump") {
		return ""
	}
	for _, cond := range conditions {
		if strings.Contains(strings.ToLower(cond), "knee") {
			return fmt.Sprintf("%q involves jumping, which may aggravate a knee condition.", exercise)
		}
	}
	return ""
}
