package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Fetch a workout plan by ID. Returns the full weekly schedule with sessions, exercises, sets, reps, rest periods, and notes."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID")),
)

var toolAdjustPlan = mcp.NewTool("adjust_plan",
	mcp.WithDescription("Adjust a workout plan from free-text feedback. Interprets the feedback into directives, checks them for feasibility and safety, applies the safe ones, and returns the modified plan with applied/skipped change lists and an explanation."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID")),
	mcp.WithString("feedback", mcp.Required(), mcp.Description("Free-text training feedback (e.g. 'my knee hurts during squats', 'I don't have a barbell anymore')")),
)

var toolInterpretFeedback = mcp.NewTool("interpret_feedback",
	mcp.WithDescription("Parse free-text training feedback into structured directives without touching any plan. Useful for previewing what an adjustment would act on."),
	mcp.WithString("feedback", mcp.Required(), mcp.Description("Free-text training feedback")),
)

var toolValidatePlan = mcp.NewTool("validate_plan",
	mcp.WithDescription("Validate a workout plan's structure and safety against the user's profile. Returns issues (problems) and warnings (advisories)."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID")),
)

// --- Tool handlers ---

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, errResult := requirePlanID(req)
	if errResult != nil {
		return errResult, nil
	}

	plan, err := h.ps.GetPlan(ctx, planID, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) adjustPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, errResult := requirePlanID(req)
	if errResult != nil {
		return errResult, nil
	}
	feedback, err := req.RequireString("feedback")
	if err != nil {
		return mcp.NewToolResultError("feedback parameter is required"), nil
	}

	res, err := h.ps.AdjustPlan(ctx, planID, UserIDFromContext(ctx), feedback)
	if err != nil {
		h.log.Error("mcp adjust_plan", "error", err)
		return mcp.NewToolResultError("adjustment failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) interpretFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feedback, err := req.RequireString("feedback")
	if err != nil {
		return mcp.NewToolResultError("feedback parameter is required"), nil
	}

	fb, err := h.ps.InterpretFeedback(ctx, feedback)
	if err != nil {
		h.log.Error("mcp interpret_feedback", "error", err)
		return mcp.NewToolResultError("interpretation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(fb)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) validatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, errResult := requirePlanID(req)
	if errResult != nil {
		return errResult, nil
	}

	vr, err := h.ps.ValidatePlan(ctx, planID, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp validate_plan", "error", err)
		return mcp.NewToolResultError("validation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(vr)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func requirePlanID(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	idStr, err := req.RequireString("plan_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("plan_id parameter is required")
	}
	planID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("plan_id is not a valid UUID")
	}
	return planID, nil
}
