package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/replan/internal/models"
)

// UpsertProfile stores or replaces a user's training profile.
func (db *DB) UpsertProfile(ctx context.Context, profile models.UserProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO profiles (user_id, doc)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
			SET doc = $2, updated_at = NOW()`,
		profile.UserID, doc)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a user's training profile.
func (db *DB) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT doc FROM profiles WHERE user_id = $1`, userID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}
