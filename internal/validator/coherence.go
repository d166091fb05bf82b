package validator

import (
	"fmt"

	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
)

// VerifyCoherence checks directives against the user's stated goals.
// Incoherent directives are reported but never block application.
func (v *Validator) VerifyCoherence(plan *models.Plan, fb models.ParsedFeedback, profile models.UserProfile) models.Coherence {
	var result models.Coherence

	wantsStrength := profile.HasGoal("strength")
	wantsMuscle := profile.HasGoal("muscle")

	for _, sub := range fb.Substitutions {
		fromClass := knowledge.Classify(sub.From)
		toClass := knowledge.Classify(sub.To)
		if wantsStrength && fromClass == knowledge.ClassCompound && toClass == knowledge.ClassIsolation {
			result.Incoherent = append(result.Incoherent, models.BlockedDirective{
				Type:   models.DirectiveSubstitution,
				Item:   sub,
				Reason: fmt.Sprintf("replacing compound %q with isolation %q works against a strength goal", sub.From, sub.To),
			})
			continue
		}
		result.Coherent = append(result.Coherent, models.DirectiveItem{Type: models.DirectiveSubstitution, Item: sub})
	}

	for _, va := range fb.VolumeAdjustments {
		if wantsMuscle && va.Change == models.ChangeDecrease {
			result.Incoherent = append(result.Incoherent, models.BlockedDirective{
				Type:   models.DirectiveVolume,
				Item:   va,
				Reason: fmt.Sprintf("decreasing %s works against a muscle-gain goal", va.Property),
			})
			continue
		}
		result.Coherent = append(result.Coherent, models.DirectiveItem{Type: models.DirectiveVolume, Item: va})
	}

	return result
}
