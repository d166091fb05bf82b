package knowledge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func localService() *Service {
	return NewService(nil, nil, testLogger())
}

// TestNormalizeEquipment verifies plural and variant spellings map onto
// canonical terms.
func TestNormalizeEquipment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dumbbells", "dumbbell"},
		{"  barbell ", "barbell"},
		{"body weight", "bodyweight"},
		{"pullup bar", "pull-up bar"},
		{"resistance tubing", "resistance tubing"},
	}
	for _, tt := range tests {
		if got := NormalizeEquipment(tt.in); got != tt.want {
			t.Errorf("NormalizeEquipment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestSplitEquipmentList verifies "and"/comma lists split and normalize.
func TestSplitEquipmentList(t *testing.T) {
	got := SplitEquipmentList("Dumbbells and bands, bench")
	want := []string{"dumbbell", "band", "bench"}
	if len(got) != len(want) {
		t.Fatalf("SplitEquipmentList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitEquipmentList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if out := SplitEquipmentList("  "); out != nil {
		t.Errorf("SplitEquipmentList(blank) = %v, want nil", out)
	}
}

// TestRequiresEquipment verifies table lookups and the name-hint fallback
// for unknown exercises.
func TestRequiresEquipment(t *testing.T) {
	s := localService()
	ctx := context.Background()

	if !s.RequiresEquipment(ctx, "Squat", "barbells") {
		t.Error("RequiresEquipment(Squat, barbells) = false, want true")
	}
	if s.RequiresEquipment(ctx, "Push-Up", "barbell") {
		t.Error("RequiresEquipment(Push-Up, barbell) = true, want false")
	}
	// Not in the table: the "smith" fragment implies a machine.
	if !s.RequiresEquipment(ctx, "Smith Machine Press", "machine") {
		t.Error("RequiresEquipment(Smith Machine Press, machine) = false, want true")
	}
}

// TestFindSubstitute verifies muscle-overlap scoring picks equipment-
// compatible replacements.
func TestFindSubstitute(t *testing.T) {
	s := localService()
	ctx := context.Background()

	tests := []struct {
		exercise, unavailable, available string
		want                             string
	}{
		{"Squat", "barbell", "dumbbells", "Goblet Squat"},
		{"Squat", "barbell", "", "Bodyweight Squat"},
		{"Lat Pulldown", "machine", "bands", "Band Row"},
	}
	for _, tt := range tests {
		got, ok := s.FindSubstitute(ctx, tt.exercise, tt.unavailable, tt.available)
		if !ok {
			t.Errorf("FindSubstitute(%q, %q, %q) found no substitute", tt.exercise, tt.unavailable, tt.available)
			continue
		}
		if got != tt.want {
			t.Errorf("FindSubstitute(%q, %q, %q) = %q, want %q", tt.exercise, tt.unavailable, tt.available, got, tt.want)
		}
	}
}

// TestFindSubstituteTableFallback verifies the hand-coded pair table
// covers exercises the scoring pool can't serve.
func TestFindSubstituteTableFallback(t *testing.T) {
	s := localService()

	got, ok := s.FindSubstitute(context.Background(), "Barbell Hip Thrust", "barbell", "band")
	if !ok {
		t.Fatal("FindSubstitute(Barbell Hip Thrust) found no substitute")
	}
	if got != "Glute Bridge" {
		t.Errorf("FindSubstitute(Barbell Hip Thrust) = %q, want %q", got, "Glute Bridge")
	}
}

// TestFindSubstituteNone verifies an unmatchable exercise reports no
// substitute rather than guessing.
func TestFindSubstituteNone(t *testing.T) {
	s := localService()

	if got, ok := s.FindSubstitute(context.Background(), "Barbell Good Morning", "barbell", "band"); ok {
		t.Errorf("FindSubstitute(Barbell Good Morning) = %q, want none", got)
	}
}

// TestContraindicationsFor verifies substring condition matching against
// the local block-lists.
func TestContraindicationsFor(t *testing.T) {
	s := localService()

	rules := s.ContraindicationsFor(context.Background(), []string{"chronic knee pain"})
	if len(rules) != 1 {
		t.Fatalf("ContraindicationsFor() = %d rules, want 1", len(rules))
	}
	if rules[0].Condition != "chronic knee pain" {
		t.Errorf("condition = %q, want %q", rules[0].Condition, "chronic knee pain")
	}
	found := false
	for _, ex := range rules[0].ExercisesToAvoid {
		if ex == "Jump Squat" {
			found = true
		}
	}
	if !found {
		t.Errorf("block-list %v missing Jump Squat", rules[0].ExercisesToAvoid)
	}

	if rules := s.ContraindicationsFor(context.Background(), nil); rules != nil {
		t.Errorf("ContraindicationsFor(nil) = %v, want nil", rules)
	}
}

// TestClassify verifies movement classification by name fragment.
func TestClassify(t *testing.T) {
	tests := []struct {
		exercise string
		want     Classification
	}{
		{"Squat", ClassCompound},
		{"Romanian Deadlift", ClassCompound},
		{"Leg Extension", ClassIsolation},
		{"Bicep Curl", ClassIsolation},
		{"Foam Rolling", ClassUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.exercise); got != tt.want {
			t.Errorf("Classify(%q) = %d, want %d", tt.exercise, got, tt.want)
		}
	}
}

// fakeCatalog is a scripted Catalog for exercising the remote-first path.
type fakeCatalog struct {
	exercise *CatalogExercise
	pool     []CatalogExercise
	rules    []Contraindication
	err      error
}

func (f *fakeCatalog) Lookup(ctx context.Context, name string) (*CatalogExercise, error) {
	return f.exercise, f.err
}

func (f *fakeCatalog) ByEquipment(ctx context.Context, equipment []string) ([]CatalogExercise, error) {
	return f.pool, f.err
}

func (f *fakeCatalog) Contraindications(ctx context.Context, conditions []string) ([]Contraindication, error) {
	return f.rules, f.err
}

// TestCatalogPreferred verifies catalog answers win over the local table.
func TestCatalogPreferred(t *testing.T) {
	cat := &fakeCatalog{
		exercise: &CatalogExercise{Name: "Squat", Equipment: []string{"machine"}},
	}
	s := NewService(cat, nil, testLogger())

	// The catalog says Squat is a machine exercise; the local table would
	// have said barbell.
	if s.RequiresEquipment(context.Background(), "Squat", "barbell") {
		t.Error("RequiresEquipment() = true, want catalog answer false")
	}
	if !s.RequiresEquipment(context.Background(), "Squat", "machine") {
		t.Error("RequiresEquipment() = false, want catalog answer true")
	}
}

// TestCatalogErrorFallsBack verifies catalog failures degrade to the
// local tables instead of propagating.
func TestCatalogErrorFallsBack(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("connection refused")}
	s := NewService(cat, nil, testLogger())

	if !s.RequiresEquipment(context.Background(), "Squat", "barbell") {
		t.Error("RequiresEquipment() = false, want local table answer true")
	}
	rules := s.ContraindicationsFor(context.Background(), []string{"shoulder injury"})
	if len(rules) != 1 {
		t.Errorf("ContraindicationsFor() = %d rules, want 1 from local table", len(rules))
	}
}
