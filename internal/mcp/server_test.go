package mcp

import (
	"context"
	"testing"
)

// TestUserIDFromContextDefault verifies the default user when no value is
// set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != "default" {
		t.Errorf("UserIDFromContext(empty) = %q, want %q", id, "default")
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), "alice")
	if id := UserIDFromContext(ctx); id != "alice" {
		t.Errorf("UserIDFromContext = %q, want %q", id, "alice")
	}
}

// TestUserIDFromContextEmptyValue verifies an empty stored value falls back
// to the default user.
func TestUserIDFromContextEmptyValue(t *testing.T) {
	ctx := WithUserID(context.Background(), "")
	if id := UserIDFromContext(ctx); id != "default" {
		t.Errorf("UserIDFromContext = %q, want %q", id, "default")
	}
}
