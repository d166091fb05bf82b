package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
)

// PlanSource abstracts the plan layer for MCP tools. LocalSource (in-process
// service) and HTTPClient (remote via REST API) both satisfy this interface.
type PlanSource interface {
	GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error)
	ListPlans(ctx context.Context, userID string) ([]storage.PlanSummary, error)
	AdjustPlan(ctx context.Context, planID uuid.UUID, userID, feedback string) (*adjust.Result, error)
	InterpretFeedback(ctx context.Context, feedback string) (models.ParsedFeedback, error)
	ValidatePlan(ctx context.Context, planID uuid.UUID, userID string) (models.ValidationResult, error)
}

// LocalSource satisfies PlanSource with the in-process service and database.
type LocalSource struct {
	DB      *storage.DB
	Service *adjust.Service
}

// Compile-time check: *LocalSource satisfies PlanSource.
var _ PlanSource = (*LocalSource)(nil)

func (l *LocalSource) GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error) {
	return l.DB.GetPlan(ctx, planID, userID)
}

func (l *LocalSource) ListPlans(ctx context.Context, userID string) ([]storage.PlanSummary, error) {
	return l.DB.ListPlans(ctx, userID)
}

func (l *LocalSource) AdjustPlan(ctx context.Context, planID uuid.UUID, userID, feedback string) (*adjust.Result, error) {
	return l.Service.Adjust(ctx, planID, userID, feedback)
}

func (l *LocalSource) InterpretFeedback(ctx context.Context, feedback string) (models.ParsedFeedback, error) {
	return l.Service.Interpret(ctx, feedback), nil
}

func (l *LocalSource) ValidatePlan(ctx context.Context, planID uuid.UUID, userID string) (models.ValidationResult, error) {
	return l.Service.Validate(ctx, planID, userID)
}
