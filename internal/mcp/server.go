package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return "default"
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ps PlanSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Replan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Replan workout plan server. Fetch plans, interpret free-text training feedback into structured directives, adjust plans from feedback, and validate plan structure. All data is scoped to the authenticated user."),
	)

	h := &handlers{ps: ps, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolAdjustPlan, Handler: h.adjustPlan},
		server.ServerTool{Tool: toolInterpretFeedback, Handler: h.interpretFeedback},
		server.ServerTool{Tool: toolValidatePlan, Handler: h.validatePlan},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlanList, Handler: h.planList},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ps  PlanSource
	log *slog.Logger
}

// --- Resource definitions ---

var resPlanList = mcp.NewResource(
	"replan://plans",
	"Workout Plans",
	mcp.WithResourceDescription("All workout plans for the current user, most recently updated first"),
	mcp.WithMIMEType("application/json"),
)
