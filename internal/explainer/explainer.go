// Package explainer turns the transformer's audit trail into
// human-readable explanations and computes plan-to-plan structural diffs.
package explainer

import (
	"fmt"

	"github.com/claude/replan/internal/models"
)

// Explanation is the per-change narrative for one adjustment pass.
type Explanation struct {
	Summary string   `json:"summary"`
	Details []string `json:"details"`
}

// NoChangesSummary is returned when the applied-change list is empty.
const NoChangesSummary = "No changes were applied to the plan."

// Generate maps each applied change to a sentence via its type's template.
func Generate(modified, original *models.Plan, fb models.ParsedFeedback, applied []models.AppliedChange) Explanation {
	if len(applied) == 0 {
		return Explanation{Summary: NoChangesSummary}
	}

	details := make([]string, 0, len(applied))
	for _, change := range applied {
		details = append(details, describeChange(change))
	}

	return Explanation{
		Summary: fmt.Sprintf("Applied %d change(s) to %q based on your feedback.", len(applied), original.Name),
		Details: details,
	}
}

func describeChange(c models.AppliedChange) string {
	at := ""
	if c.Day != "" {
		at = fmt.Sprintf(" (%s)", c.Day)
	}

	switch c.Type {
	case models.DirectiveSubstitution:
		return fmt.Sprintf("Swapped exercises%s: %s", at, c.Outcome)
	case models.DirectiveVolume:
		return fmt.Sprintf("Changed training volume%s: %s", at, c.Outcome)
	case models.DirectiveIntensity:
		return fmt.Sprintf("Adjusted intensity%s: %s", at, c.Outcome)
	case models.DirectiveSchedule:
		return fmt.Sprintf("Rearranged the weekly schedule: %s", c.Outcome)
	case models.DirectiveRestPeriod:
		return fmt.Sprintf("Updated rest periods: %s", c.Outcome)
	case models.DirectiveEquipment:
		return fmt.Sprintf("Worked around missing equipment%s: %s", at, c.Outcome)
	case models.DirectivePainConcern:
		return fmt.Sprintf("Addressed a pain concern%s: %s", at, c.Outcome)
	default:
		return fmt.Sprintf("Noted your request (%s): %s", c.Details, c.Outcome)
	}
}

// Comparison is the structural diff between two plans.
type Comparison struct {
	Summary      string   `json:"summary"`
	MajorChanges []string `json:"majorChanges"`
}

// Compare diffs the modified plan against the original: plan-name change,
// workout/rest transitions per day, exercise-count deltas within days that
// stayed workouts, and the net workout-day-count delta.
func Compare(modified, original *models.Plan) Comparison {
	if modified == nil || original == nil {
		return Comparison{Summary: "Cannot compare: one of the plans is missing."}
	}

	var changes []string

	if modified.Name != original.Name {
		changes = append(changes, fmt.Sprintf("Plan renamed from %q to %q.", original.Name, modified.Name))
	}

	for _, day := range models.DayNames {
		origSched, origOK := original.Week[day]
		modSched, modOK := modified.Week[day]
		if !origOK && !modOK {
			continue
		}

		origRest := !origOK || origSched.IsRest()
		modRest := !modOK || modSched.IsRest()

		switch {
		case !origRest && modRest:
			changes = append(changes, fmt.Sprintf("%s changed from a workout to a rest day.", day))
		case origRest && !modRest:
			changes = append(changes, fmt.Sprintf("%s changed from a rest day to %q.", day, modSched.Session.Name))
		case !origRest && !modRest:
			before := len(origSched.Session.Exercises)
			after := len(modSched.Session.Exercises)
			if before != after {
				changes = append(changes, fmt.Sprintf("%s went from %d to %d exercises.", day, before, after))
			}
		}
	}

	delta := len(modified.WorkoutDays()) - len(original.WorkoutDays())
	if delta != 0 {
		changes = append(changes, fmt.Sprintf("Net workout-day change: %+d per week.", delta))
	}

	summary := "No structural changes between the plans."
	if len(changes) > 0 {
		summary = fmt.Sprintf("%d structural change(s) between the plans.", len(changes))
	}
	return Comparison{Summary: summary, MajorChanges: changes}
}
