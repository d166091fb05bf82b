package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/replan/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// PlanSummary is a plan row without the full document, for listings.
type PlanSummary struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertPlan stores a new plan document for a user.
func (db *DB) InsertPlan(ctx context.Context, userID string, plan *models.Plan) error {
	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plans (id, user_id, name, doc, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		plan.ID, userID, plan.Name, doc, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan document by ID, scoped to a user.
func (db *DB) GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT doc FROM plans WHERE id = $1 AND user_id = $2`,
		planID, userID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(doc, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &plan, nil
}

// UpdatePlan replaces a plan document. The stored updated_at must still match
// expectedUpdatedAt; a mismatch means another writer got there first and the
// update fails with ErrConflict.
func (db *DB) UpdatePlan(ctx context.Context, userID string, plan *models.Plan, expectedUpdatedAt time.Time) error {
	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE plans SET name = $3, doc = $4, updated_at = $5
		 WHERE id = $1 AND user_id = $2 AND updated_at = $6`,
		plan.ID, userID, plan.Name, doc, plan.UpdatedAt, expectedUpdatedAt)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// ErrConflict is returned when an update races another writer.
var ErrConflict = errors.New("plan was modified concurrently")

// ListPlans returns plan summaries for a user, most recently updated first.
func (db *DB) ListPlans(ctx context.Context, userID string) ([]PlanSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, updated_at
		 FROM plans
		 WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []PlanSummary
	for rows.Next() {
		var s PlanSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// DeletePlan removes a plan. Returns true if a row was deleted.
func (db *DB) DeletePlan(ctx context.Context, planID uuid.UUID, userID string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AdjustmentRow is one stored adjustment run, with the full change lists
// that the in-plan history only keeps counts of.
type AdjustmentRow struct {
	ID       uuid.UUID              `json:"id"`
	PlanID   uuid.UUID              `json:"planId"`
	Feedback string                 `json:"feedback"`
	Applied  []models.AppliedChange `json:"applied"`
	Skipped  []models.SkippedChange `json:"skipped"`
	Time     time.Time              `json:"time"`
}

// InsertAdjustment records one adjustment run against a plan for audit.
func (db *DB) InsertAdjustment(ctx context.Context, userID string, row AdjustmentRow) error {
	applied, err := json.Marshal(row.Applied)
	if err != nil {
		return fmt.Errorf("encoding applied changes: %w", err)
	}
	skipped, err := json.Marshal(row.Skipped)
	if err != nil {
		return fmt.Errorf("encoding skipped changes: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plan_adjustments (id, plan_id, user_id, feedback, applied, skipped, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.PlanID, userID, row.Feedback, applied, skipped, row.Time)
	if err != nil {
		return fmt.Errorf("inserting adjustment: %w", err)
	}
	return nil
}

// QueryAdjustments retrieves the adjustment history for a plan, newest first.
func (db *DB) QueryAdjustments(ctx context.Context, planID uuid.UUID, userID string, limit int) ([]AdjustmentRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_id, feedback, applied, skipped, created_at
		 FROM plan_adjustments
		 WHERE plan_id = $1 AND user_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		planID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying adjustments: %w", err)
	}
	defer rows.Close()

	var result []AdjustmentRow
	for rows.Next() {
		var (
			row              AdjustmentRow
			applied, skipped []byte
		)
		if err := rows.Scan(&row.ID, &row.PlanID, &row.Feedback, &applied, &skipped, &row.Time); err != nil {
			return nil, fmt.Errorf("scanning adjustment: %w", err)
		}
		if err := json.Unmarshal(applied, &row.Applied); err != nil {
			return nil, fmt.Errorf("decoding applied changes: %w", err)
		}
		if err := json.Unmarshal(skipped, &row.Skipped); err != nil {
			return nil, fmt.Errorf("decoding skipped changes: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
