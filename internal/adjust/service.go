// Package adjust orchestrates the feedback-to-plan pipeline: interpret the
// free-text feedback, gate it through feasibility and safety checks, apply
// the surviving directives, validate the resulting plan, and explain what
// changed. Each request works on its own deep copy of the plan; persistence
// uses a compare-and-swap on the stored updated_at.
package adjust

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claude/replan/internal/explainer"
	"github.com/claude/replan/internal/interpreter"
	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
	"github.com/claude/replan/internal/transformer"
	"github.com/claude/replan/internal/validator"
)

// Store is the persistence surface the service needs. *storage.DB
// satisfies it.
type Store interface {
	GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error)
	UpdatePlan(ctx context.Context, userID string, plan *models.Plan, expectedUpdatedAt time.Time) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	InsertAdjustment(ctx context.Context, userID string, row storage.AdjustmentRow) error
}

// Service runs plan adjustments end to end.
type Service struct {
	store       Store
	interpreter *interpreter.Interpreter
	validator   *validator.Validator
	transformer *transformer.Transformer
	log         *slog.Logger
}

// New creates an adjustment service.
func New(store Store, interp *interpreter.Interpreter, ks *knowledge.Service, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		interpreter: interp,
		validator:   validator.New(ks, log),
		transformer: transformer.New(ks, log),
		log:         log,
	}
}

// Result is the full outcome of one adjustment request.
type Result struct {
	Plan        *models.Plan            `json:"plan"`
	Feedback    models.ParsedFeedback   `json:"parsedFeedback"`
	Applied     []models.AppliedChange  `json:"appliedChanges"`
	Skipped     []models.SkippedChange  `json:"skippedChanges"`
	Warnings    []string                `json:"warnings,omitempty"`
	Explanation explainer.Explanation   `json:"explanation"`
	Comparison  explainer.Comparison    `json:"comparison"`
	Validation  models.ValidationResult `json:"validation"`
}

// Adjust loads the plan and profile, runs the pipeline, persists the
// modified plan, and records the run in the adjustment history.
func (s *Service) Adjust(ctx context.Context, planID uuid.UUID, userID, feedbackText string) (*Result, error) {
	original, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	profile := s.loadProfile(ctx, userID)

	result := s.run(ctx, original, profile, feedbackText)

	if err := s.store.UpdatePlan(ctx, userID, result.Plan, original.UpdatedAt); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}

	row := storage.AdjustmentRow{
		ID:       uuid.New(),
		PlanID:   planID,
		Feedback: feedbackText,
		Applied:  result.Applied,
		Skipped:  result.Skipped,
		Time:     result.Plan.UpdatedAt,
	}
	if err := s.store.InsertAdjustment(ctx, userID, row); err != nil {
		// The plan itself is saved; a missing history row is not fatal.
		s.log.Error("recording adjustment", "plan_id", planID, "error", err)
	}

	s.log.Info("plan adjusted",
		"plan_id", planID,
		"user_id", userID,
		"applied", len(result.Applied),
		"skipped", len(result.Skipped))
	return result, nil
}

// Preview runs the pipeline without persisting anything.
func (s *Service) Preview(ctx context.Context, planID uuid.UUID, userID, feedbackText string) (*Result, error) {
	original, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	profile := s.loadProfile(ctx, userID)
	return s.run(ctx, original, profile, feedbackText), nil
}

func (s *Service) run(ctx context.Context, original *models.Plan, profile models.UserProfile, feedbackText string) *Result {
	fb := s.interpreter.Parse(ctx, feedbackText)
	return Run(ctx, original, profile, fb, s.validator, s.transformer)
}

// Run executes the pipeline stages against an in-memory plan. It never
// fails: blocked directives surface as skip entries and structural problems
// surface in the validation result. Callers that only have feedback text
// should go through Service; Run exists for already-parsed feedback and
// database-free use.
func Run(ctx context.Context, original *models.Plan, profile models.UserProfile, fb models.ParsedFeedback, v *validator.Validator, t *transformer.Transformer) *Result {
	feas := v.AnalyzeFeasibility(original, fb)
	safety := v.CheckSafety(ctx, fb, profile)
	coherence := v.VerifyCoherence(original, fb, profile)

	tr := t.Apply(ctx, original, fb, feas, safety)

	validation := v.ValidatePlan(ctx, tr.Plan, profile, nil)

	var warnings []string
	warnings = append(warnings, safety.Warnings...)
	for _, inc := range coherence.Incoherent {
		warnings = append(warnings, inc.Reason)
	}
	warnings = append(warnings, validation.Warnings...)

	return &Result{
		Plan:        tr.Plan,
		Feedback:    fb,
		Applied:     tr.Applied,
		Skipped:     tr.Skipped,
		Warnings:    warnings,
		Explanation: explainer.Generate(tr.Plan, original, fb, tr.Applied),
		Comparison:  explainer.Compare(tr.Plan, original),
		Validation:  validation,
	}
}

// Interpret is the parse-only surface.
func (s *Service) Interpret(ctx context.Context, feedbackText string) models.ParsedFeedback {
	return s.interpreter.Parse(ctx, feedbackText)
}

// Validate runs final-plan validation on the stored plan.
func (s *Service) Validate(ctx context.Context, planID uuid.UUID, userID string) (models.ValidationResult, error) {
	plan, err := s.store.GetPlan(ctx, planID, userID)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("loading plan: %w", err)
	}
	profile := s.loadProfile(ctx, userID)
	return s.validator.ValidatePlan(ctx, plan, profile, nil), nil
}

// loadProfile falls back to a conservative default when the user has not
// stored one.
func (s *Service) loadProfile(ctx context.Context, userID string) models.UserProfile {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil || profile == nil {
		return models.UserProfile{
			UserID:       userID,
			FitnessLevel: models.LevelIntermediate,
			DaysPerWeek:  3,
		}
	}
	return *profile
}
