package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/replan/internal/models"
)

// Validation issue types.
const (
	IssuePlan        = "plan"
	IssueSchedule    = "schedule"
	IssueSession     = "session"
	IssueExercise    = "exercise"
	IssueSafety      = "safety"
	IssueConcurrency = "concurrency"
)

// ValidatePlan checks a fully-adjusted plan: structural correctness first,
// then whole-plan safety and coherence. Issues accumulate rather than
// short-circuiting; the only hard stop is a missing weekly schedule.
// priorUpdatedAt, when non-nil, is the timestamp the caller retrieved the
// plan at: a plan updated before that point signals a concurrent writer.
// The concurrency issue is recorded without failing validation.
func (v *Validator) ValidatePlan(ctx context.Context, plan *models.Plan, profile models.UserProfile, priorUpdatedAt *time.Time) models.ValidationResult {
	result := models.ValidationResult{Valid: true}

	if plan == nil {
		result.AddIssue(IssuePlan, "Plan is missing.", "")
		return result
	}
	if strings.TrimSpace(plan.Name) == "" {
		result.AddIssue(IssuePlan, "Plan name must be a non-empty string.", "")
	}
	if len(plan.Week) == 0 {
		result.AddIssue(IssueSchedule, "Weekly schedule is missing.", "")
		return result
	}

	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok {
			result.AddIssue(IssueSchedule, fmt.Sprintf("No schedule entry for %s.", day), day)
			continue
		}
		if sched.IsRest() {
			continue
		}
		sess := sched.Session
		if strings.TrimSpace(sess.Name) == "" {
			result.AddIssue(IssueSession, "Workout session has no name.", day)
		}
		if len(sess.Exercises) == 0 {
			result.AddIssue(IssueSession, "Workout session has no exercises.", day)
		}
		for _, ex := range sess.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				result.AddIssue(IssueExercise, "Exercise has no name.", day)
			}
			if ex.Sets <= 0 {
				result.AddIssue(IssueExercise, fmt.Sprintf("Exercise %q must have a positive number of sets.", ex.Name), day)
			}
			if strings.TrimSpace(ex.Reps) == "" {
				result.AddIssue(IssueExercise, fmt.Sprintf("Exercise %q has no reps or duration.", ex.Name), day)
			}
		}
	}

	// Whole-plan checks run even when structural issues were found.
	workoutDays := len(plan.WorkoutDays())
	if workoutDays == 0 {
		result.AddIssue(IssueSchedule, "Plan has no workout days.", "")
	}
	if profile.DaysPerWeek > 0 && workoutDays != profile.DaysPerWeek {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Plan has %d workout days but the profile prefers %d per week.", workoutDays, profile.DaysPerWeek))
	}
	if workoutDays >= 6 && profile.FitnessLevel != models.LevelAdvanced {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d workout days carries overtraining risk at the %s level.", workoutDays, profile.FitnessLevel))
	}

	v.checkContraindications(ctx, plan, profile, &result)

	if priorUpdatedAt != nil && plan.UpdatedAt.Before(*priorUpdatedAt) {
		// Recorded but not fatal: staleness is a signal, not a lock.
		result.Issues = append(result.Issues, models.ValidationIssue{
			Type:    IssueConcurrency,
			Message: "Plan was modified by another writer since it was retrieved; changes may conflict.",
		})
	}

	return result
}

func (v *Validator) checkContraindications(ctx context.Context, plan *models.Plan, profile models.UserProfile, result *models.ValidationResult) {
	rules := v.knowledge.ContraindicationsFor(ctx, profile.MedicalConditions)
	if len(rules) == 0 {
		return
	}

	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for _, ex := range sched.Session.Exercises {
			if cond, blocked := blockedBy(rules, ex.Name); blocked {
				result.AddIssue(IssueSafety,
					fmt.Sprintf("Exercise %q conflicts with condition %q.", ex.Name, cond), day)
			}
		}
	}
}
