package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and headers.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestGetPlan verifies the HTTP client sends the user header and parses the
// plan document.
func TestGetPlan(t *testing.T) {
	planID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/" + planID.String(): func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if got := r.Header.Get("X-User-ID"); got != "alice" {
				t.Errorf("X-User-ID = %q, want alice", got)
			}
			writeTestJSON(t, w, models.Plan{ID: planID, Name: "Push Pull Legs"})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	plan, err := client.GetPlan(context.Background(), planID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if plan.Name != "Push Pull Legs" {
		t.Errorf("name = %q, want %q", plan.Name, "Push Pull Legs")
	}
	if plan.ID != planID {
		t.Errorf("id = %s, want %s", plan.ID, planID)
	}
}

// TestListPlans verifies the client parses the plan summary array.
func TestListPlans(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []storage.PlanSummary{
				{ID: uuid.New(), Name: "Upper Lower"},
				{ID: uuid.New(), Name: "Full Body"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	summaries, err := client.ListPlans(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].Name != "Upper Lower" {
		t.Errorf("name = %q, want %q", summaries[0].Name, "Upper Lower")
	}
}

// TestAdjustPlan verifies the client posts the feedback body with the API key
// and parses the adjustment result.
func TestAdjustPlan(t *testing.T) {
	planID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/" + planID.String() + "/adjust": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q, want secret", got)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["feedback"] != "add a set to squats" {
				t.Errorf("feedback = %q, want %q", body["feedback"], "add a set to squats")
			}
			writeTestJSON(t, w, adjust.Result{
				Plan: &models.Plan{ID: planID, Name: "Push Pull Legs"},
				Applied: []models.AppliedChange{
					{Type: models.DirectiveVolume, Outcome: "Sets: 3 to 4"},
				},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	result, err := client.AdjustPlan(context.Background(), planID, "alice", "add a set to squats")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("got %d applied changes, want 1", len(result.Applied))
	}
	if result.Applied[0].Type != models.DirectiveVolume {
		t.Errorf("type = %q, want %q", result.Applied[0].Type, models.DirectiveVolume)
	}
}

// TestInterpretFeedback verifies the parse-only endpoint round trip.
func TestInterpretFeedback(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/feedback/interpret": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.ParsedFeedback{
				PainConcerns: []models.PainConcern{{Area: "knee", Severity: "general"}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	fb, err := client.InterpretFeedback(context.Background(), "my knee hurts")
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.PainConcerns) != 1 {
		t.Fatalf("got %d pain concerns, want 1", len(fb.PainConcerns))
	}
	if fb.PainConcerns[0].Area != "knee" {
		t.Errorf("area = %q, want knee", fb.PainConcerns[0].Area)
	}
}

// TestErrorStatus verifies non-2xx responses surface as errors with the body
// included.
func TestErrorStatus(t *testing.T) {
	planID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans/" + planID.String(): func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"plan not found"}`, http.StatusNotFound)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	if _, err := client.GetPlan(context.Background(), planID, "alice"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
