package models

import "reflect"

// DirectiveItem identifies one directive instance inside a consideration
// result. Item holds the directive value itself; directives are matched
// across result sets by (type, structural equality of item).
type DirectiveItem struct {
	Type DirectiveType `json:"type"`
	Item any           `json:"item"`
}

// BlockedDirective is a directive rejected by one consideration, with the
// reason it was rejected.
type BlockedDirective struct {
	Type   DirectiveType `json:"type"`
	Item   any           `json:"item"`
	Reason string        `json:"reason"`
}

func findBlocked(blocked []BlockedDirective, t DirectiveType, item any) (string, bool) {
	for _, b := range blocked {
		if b.Type == t && reflect.DeepEqual(b.Item, item) {
			return b.Reason, true
		}
	}
	return "", false
}

// Feasibility records which directives target something that actually
// exists in the plan.
type Feasibility struct {
	Feasible   []DirectiveItem    `json:"feasible"`
	Infeasible []BlockedDirective `json:"infeasible"`
}

// Blocked returns the infeasibility reason for a directive, if any.
func (f Feasibility) Blocked(t DirectiveType, item any) (string, bool) {
	return findBlocked(f.Infeasible, t, item)
}

// Safety records which directives are safe to apply given the user's
// medical profile, plus advisory warnings that never block processing.
type Safety struct {
	Safe     []DirectiveItem    `json:"safeRequests"`
	Unsafe   []BlockedDirective `json:"unsafeRequests"`
	Warnings []string           `json:"warnings"`
}

// Blocked returns the safety rejection reason for a directive, if any.
func (s Safety) Blocked(t DirectiveType, item any) (string, bool) {
	return findBlocked(s.Unsafe, t, item)
}

// Coherence records which directives align with the user's stated goals.
// Incoherent directives are reported, not blocked.
type Coherence struct {
	Coherent   []DirectiveItem    `json:"coherent"`
	Incoherent []BlockedDirective `json:"incoherent"`
}

// AppliedChange is one audit-trail entry for a directive that produced (or
// acknowledged) a change. One entry per directive instance, even when the
// directive touched many exercises.
type AppliedChange struct {
	Type     DirectiveType `json:"type"`
	Details  string        `json:"details"`
	Outcome  string        `json:"outcome"`
	Day      string        `json:"day,omitempty"`
	Exercise string        `json:"exercise,omitempty"`
}

// SkippedChange is one audit-trail entry for a directive that was not
// applied, with the gating or failure reason.
type SkippedChange struct {
	Type   DirectiveType `json:"type"`
	Data   any           `json:"data"`
	Reason string        `json:"reason"`
}

// ValidationIssue is one problem found while validating a fully-adjusted
// plan. Issues accumulate; validation never stops at the first problem
// except when the weekly schedule itself is missing.
type ValidationIssue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Day     string `json:"day,omitempty"`
}

// ValidationResult is the outcome of whole-plan validation.
type ValidationResult struct {
	Valid    bool              `json:"isValid"`
	Issues   []ValidationIssue `json:"issues"`
	Warnings []string          `json:"warnings"`
}

// AddIssue appends an issue and marks the result invalid.
func (r *ValidationResult) AddIssue(issueType, message, day string) {
	r.Issues = append(r.Issues, ValidationIssue{Type: issueType, Message: message, Day: day})
	r.Valid = false
}
