// Package transformer applies validated adjustment directives to a copy of
// a workout plan. Directives run in a fixed priority order; each is gated
// against the feasibility and safety results, and any failure inside a
// single directive is contained as a skip entry rather than aborting the
// pipeline.
package transformer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"

	"github.com/google/uuid"
)

// Transformer applies parsed feedback to plans.
type Transformer struct {
	knowledge *knowledge.Service
	log       *slog.Logger
	now       func() time.Time
}

// New creates a transformer.
func New(ks *knowledge.Service, log *slog.Logger) *Transformer {
	return &Transformer{knowledge: ks, log: log, now: time.Now}
}

// Result is the outcome of one transformation pass.
type Result struct {
	Plan    *models.Plan           `json:"plan"`
	Applied []models.AppliedChange `json:"appliedChanges"`
	Skipped []models.SkippedChange `json:"skippedChanges"`
}

// outcome describes how one directive played out. An unchanged directive is
// still acknowledged with an applied-change entry; Changed only shapes the
// wording, never drops the audit record.
type outcome struct {
	Changed  bool
	Text     string
	Day      string
	Exercise string
}

// Apply processes every directive in the feedback against a deep copy of
// the plan. The original is never mutated. Priority order, high to low:
// pain concerns, equipment limitations, substitutions, volume, intensity,
// schedule changes, rest periods, free-text requests. Within one category,
// directives run in arrival order.
func (t *Transformer) Apply(ctx context.Context, original *models.Plan, fb models.ParsedFeedback, feas models.Feasibility, safety models.Safety) *Result {
	plan := original.Clone()
	a := &application{plan: plan, feas: feas, safety: safety}

	for _, pc := range fb.PainConcerns {
		a.process(models.DirectivePainConcern, pc, describePainConcern(pc), func() (outcome, error) {
			return t.applyPainConcern(plan, pc)
		})
	}
	for _, eq := range fb.EquipmentLimitations {
		a.process(models.DirectiveEquipment, eq, describeEquipment(eq), func() (outcome, error) {
			return t.applyEquipmentLimitation(ctx, plan, eq)
		})
	}
	for _, sub := range fb.Substitutions {
		a.process(models.DirectiveSubstitution, sub, describeSubstitution(sub), func() (outcome, error) {
			return t.applySubstitution(plan, sub)
		})
	}
	for _, va := range fb.VolumeAdjustments {
		a.process(models.DirectiveVolume, va, describeVolume(va), func() (outcome, error) {
			return t.applyVolume(plan, va)
		})
	}
	for _, ia := range fb.IntensityAdjustments {
		a.process(models.DirectiveIntensity, ia, describeIntensity(ia), func() (outcome, error) {
			return t.applyIntensity(plan, ia)
		})
	}
	for _, sc := range fb.ScheduleChanges {
		a.process(models.DirectiveSchedule, sc, describeSchedule(sc), func() (outcome, error) {
			return t.applySchedule(plan, sc)
		})
	}
	for _, rc := range fb.RestPeriodChanges {
		a.process(models.DirectiveRestPeriod, rc, describeRestPeriod(rc), func() (outcome, error) {
			return t.applyRestPeriod(plan, rc)
		})
	}
	t.applyFreeTextRequests(plan, fb, a)

	t.finalize(plan, fb, a)

	return &Result{Plan: plan, Applied: a.applied, Skipped: a.skipped}
}

// application accumulates the audit trail for one Apply pass.
type application struct {
	plan    *models.Plan
	feas    models.Feasibility
	safety  models.Safety
	applied []models.AppliedChange
	skipped []models.SkippedChange
}

// process gates a directive and runs its operation with panic containment.
func (a *application) process(typ models.DirectiveType, item any, details string, op func() (outcome, error)) {
	if reason, blocked := a.feas.Blocked(typ, item); blocked {
		a.skip(typ, item, "Infeasible: "+reason)
		return
	}
	if reason, blocked := a.safety.Blocked(typ, item); blocked {
		a.skip(typ, item, "Unsafe: "+reason)
		return
	}

	out, err := runContained(op)
	if err != nil {
		a.skip(typ, item, "Application error: "+err.Error())
		return
	}

	a.applied = append(a.applied, models.AppliedChange{
		Type:     typ,
		Details:  details,
		Outcome:  out.Text,
		Day:      out.Day,
		Exercise: out.Exercise,
	})
}

func (a *application) skip(typ models.DirectiveType, item any, reason string) {
	a.skipped = append(a.skipped, models.SkippedChange{Type: typ, Data: item, Reason: reason})
}

// runContained converts a panic inside a directive operation into an error.
func runContained(op func() (outcome, error)) (out outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return op()
}

// finalize stamps the adjustment bookkeeping: lastAdjusted, one history
// entry, and the full applied/skipped lists for downstream audit.
func (t *Transformer) finalize(plan *models.Plan, fb models.ParsedFeedback, a *application) {
	now := t.now().UTC()
	plan.LastAdjusted = now
	plan.UpdatedAt = now
	plan.AppliedChanges = a.applied
	plan.SkippedChanges = a.skipped
	plan.AdjustmentHistory = append(plan.AdjustmentHistory, models.AdjustmentRecord{
		ID:             uuid.New(),
		Time:           now,
		Summary:        fmt.Sprintf("%d change(s) applied, %d skipped", len(a.applied), len(a.skipped)),
		DirectiveTypes: fb.DirectiveTypes(),
		Applied:        len(a.applied),
		Skipped:        len(a.skipped),
	})
}

func describePainConcern(pc models.PainConcern) string {
	return fmt.Sprintf("%s pain (%s)", pc.Area, pc.Exercise)
}

func describeEquipment(eq models.EquipmentLimitation) string {
	if eq.Alternative != "" {
		return fmt.Sprintf("%s unavailable, %s available", eq.Equipment, eq.Alternative)
	}
	return fmt.Sprintf("%s unavailable", eq.Equipment)
}

func describeSubstitution(sub models.Substitution) string {
	return fmt.Sprintf("%s replaced by %s", sub.From, sub.To)
}

func describeVolume(va models.VolumeAdjustment) string {
	return fmt.Sprintf("%s %s for %s", va.Change, va.Property, va.Exercise)
}

func describeIntensity(ia models.IntensityAdjustment) string {
	return fmt.Sprintf("%s %s for %s", ia.Change, ia.Parameter, ia.Exercise)
}

func describeSchedule(sc models.ScheduleChange) string {
	return fmt.Sprintf("%s: %s", sc.Type, sc.Details)
}

func describeRestPeriod(rc models.RestPeriodChange) string {
	return fmt.Sprintf("%s rest %s", rc.Change, rc.Type)
}
