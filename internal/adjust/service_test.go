package adjust

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/replan/internal/interpreter"
	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
)

// fakeStore is an in-memory Store for exercising the service without a
// database.
type fakeStore struct {
	plans       map[uuid.UUID]*models.Plan
	profiles    map[string]*models.UserProfile
	adjustments []storage.AdjustmentRow
	updates     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:    make(map[uuid.UUID]*models.Plan),
		profiles: make(map[string]*models.UserProfile),
	}
}

func (f *fakeStore) GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error) {
	plan, ok := f.plans[planID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return plan.Clone(), nil
}

func (f *fakeStore) UpdatePlan(ctx context.Context, userID string, plan *models.Plan, expectedUpdatedAt time.Time) error {
	current, ok := f.plans[plan.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if !current.UpdatedAt.Equal(expectedUpdatedAt) {
		return storage.ErrConflict
	}
	f.plans[plan.ID] = plan.Clone()
	f.updates++
	return nil
}

func (f *fakeStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return profile, nil
}

func (f *fakeStore) InsertAdjustment(ctx context.Context, userID string, row storage.AdjustmentRow) error {
	f.adjustments = append(f.adjustments, row)
	return nil
}

func testService(store Store) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, interpreter.New(nil, log), knowledge.NewService(nil, nil, log), log)
}

func seedPlan(store *fakeStore) *models.Plan {
	plan := &models.Plan{
		ID:   uuid.New(),
		Name: "Strength Base",
		Week: map[string]models.DaySchedule{
			"Monday": models.WorkoutDay(models.Session{
				Name: "Upper",
				Exercises: []models.Exercise{
					{Name: "Bench Press", Sets: 3, Reps: "8-10", Rest: "90s"},
				},
			}),
			"Tuesday":   models.RestDay(),
			"Wednesday": models.RestDay(),
			"Thursday": models.WorkoutDay(models.Session{
				Name: "Lower",
				Exercises: []models.Exercise{
					{Name: "Squat", Sets: 3, Reps: "5", Rest: "2 min"},
				},
			}),
			"Friday":   models.RestDay(),
			"Saturday": models.RestDay(),
			"Sunday": models.WorkoutDay(models.Session{
				Name: "Full Body",
				Exercises: []models.Exercise{
					{Name: "Deadlift", Sets: 3, Reps: "5"},
				},
			}),
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	store.plans[plan.ID] = plan
	return plan
}

// TestAdjustEndToEnd runs the full pipeline through the fallback parser
// and verifies persistence plus the history row.
func TestAdjustEndToEnd(t *testing.T) {
	store := newFakeStore()
	plan := seedPlan(store)
	svc := testService(store)

	result, err := svc.Adjust(context.Background(), plan.ID, "default", "Please replace the squat with leg press.")
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}

	if got := result.Plan.Week["Thursday"].Session.Exercises[0].Name; got != "leg press" {
		t.Errorf("adjusted exercise = %q, want %q", got, "leg press")
	}
	if len(result.Applied) != 1 {
		t.Errorf("applied = %+v, want 1", result.Applied)
	}
	if result.Explanation.Summary == "" {
		t.Error("explanation summary is empty")
	}

	if store.updates != 1 {
		t.Errorf("plan updates = %d, want 1", store.updates)
	}
	saved := store.plans[plan.ID]
	if got := saved.Week["Thursday"].Session.Exercises[0].Name; got != "leg press" {
		t.Errorf("persisted exercise = %q, want %q", got, "leg press")
	}
	if len(store.adjustments) != 1 {
		t.Fatalf("adjustment rows = %d, want 1", len(store.adjustments))
	}
	row := store.adjustments[0]
	if row.PlanID != plan.ID || row.Feedback != "Please replace the squat with leg press." {
		t.Errorf("adjustment row = %+v, want plan and feedback recorded", row)
	}
}

// TestAdjustPlanNotFound verifies a missing plan surfaces the storage
// sentinel.
func TestAdjustPlanNotFound(t *testing.T) {
	svc := testService(newFakeStore())
	_, err := svc.Adjust(context.Background(), uuid.New(), "default", "more sets")
	if err == nil || !strings.Contains(err.Error(), storage.ErrNotFound.Error()) {
		t.Errorf("Adjust() error = %v, want wrapped not-found", err)
	}
}

// TestPreviewDoesNotPersist verifies preview leaves the store untouched.
func TestPreviewDoesNotPersist(t *testing.T) {
	store := newFakeStore()
	plan := seedPlan(store)
	svc := testService(store)

	result, err := svc.Preview(context.Background(), plan.ID, "default", "I'd like more sets.")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if got := result.Plan.Week["Monday"].Session.Exercises[0].Sets; got != 4 {
		t.Errorf("previewed sets = %d, want 4", got)
	}

	if store.updates != 0 || len(store.adjustments) != 0 {
		t.Errorf("store touched: updates = %d, adjustments = %d", store.updates, len(store.adjustments))
	}
	if got := store.plans[plan.ID].Week["Monday"].Session.Exercises[0].Sets; got != 3 {
		t.Errorf("stored sets = %d, want unchanged 3", got)
	}
}

// TestRunCollectsWarnings verifies safety and coherence findings surface
// as warnings on the result.
func TestRunCollectsWarnings(t *testing.T) {
	store := newFakeStore()
	plan := seedPlan(store)
	store.profiles["default"] = &models.UserProfile{
		UserID:       "default",
		FitnessLevel: models.LevelBeginner,
		Goals:        []string{"gain muscle"},
		DaysPerWeek:  3,
	}
	svc := testService(store)

	result, err := svc.Preview(context.Background(), plan.ID, "default", "fewer reps please")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "works against a muscle-gain goal") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want coherence warning", result.Warnings)
	}
}

// TestValidateStoredPlan verifies validation of a plan as persisted.
func TestValidateStoredPlan(t *testing.T) {
	store := newFakeStore()
	plan := seedPlan(store)
	plan.Week["Monday"].Session.Exercises = nil
	svc := testService(store)

	result, err := svc.Validate(context.Background(), plan.ID, "default")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Valid {
		t.Error("Valid = true for a session with no exercises")
	}
}

// TestLoadProfileDefault verifies a missing profile yields the
// conservative default rather than an error.
func TestLoadProfileDefault(t *testing.T) {
	svc := testService(newFakeStore())
	profile := svc.loadProfile(context.Background(), "nobody")

	if profile.UserID != "nobody" {
		t.Errorf("UserID = %q, want %q", profile.UserID, "nobody")
	}
	if profile.FitnessLevel != models.LevelIntermediate || profile.DaysPerWeek != 3 {
		t.Errorf("profile = %+v, want intermediate default with 3 days", profile)
	}
}
