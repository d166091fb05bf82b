package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func testPlan() *Plan {
	return &Plan{
		Name: "Push Pull Legs",
		Week: map[string]DaySchedule{
			"Monday": WorkoutDay(Session{
				Name: "Push",
				Exercises: []Exercise{
					{Name: "Bench Press", Sets: 3, Reps: "8-10", Rest: "90s"},
					{Name: "Overhead Press", Sets: 3, Reps: "10"},
				},
			}),
			"Tuesday": RestDay(),
			"Wednesday": WorkoutDay(Session{
				Name: "Pull",
				Exercises: []Exercise{
					{Name: "Bent-Over Row", Sets: 4, Reps: "8"},
				},
			}),
			"Thursday": RestDay(),
			"Friday": WorkoutDay(Session{
				Name: "Legs",
				Exercises: []Exercise{
					{Name: "Squat", Sets: 3, Reps: "5"},
				},
			}),
			"Saturday": RestDay(),
			"Sunday":   RestDay(),
		},
	}
}

// TestDayScheduleMarshalRest verifies rest days serialize as the literal
// string and workout days as session objects.
func TestDayScheduleMarshalRest(t *testing.T) {
	data, err := json.Marshal(RestDay())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"Rest"` {
		t.Errorf("rest day = %s, want %q", data, `"Rest"`)
	}

	data, err = json.Marshal(WorkoutDay(Session{Name: "Push", Exercises: []Exercise{}}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"sessionName":"Push"`) {
		t.Errorf("workout day = %s, want session object", data)
	}
}

// TestDayScheduleUnmarshalRestCasing verifies rest literals are accepted
// in any casing.
func TestDayScheduleUnmarshalRestCasing(t *testing.T) {
	for _, raw := range []string{`"Rest"`, `"rest"`, `"REST"`, `" rest "`} {
		var d DaySchedule
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", raw, err)
		}
		if !d.IsRest() {
			t.Errorf("Unmarshal(%s).IsRest() = false, want true", raw)
		}
	}
}

// TestDayScheduleUnmarshalSession verifies a session object decodes into a
// workout day.
func TestDayScheduleUnmarshalSession(t *testing.T) {
	raw := `{"sessionName":"Legs","exercises":[{"exercise":"Squat","sets":3,"repsOrDuration":"5"}]}`
	var d DaySchedule
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.IsRest() {
		t.Fatal("IsRest() = true, want false")
	}
	if d.Session.Name != "Legs" {
		t.Errorf("session name = %q, want %q", d.Session.Name, "Legs")
	}
	if len(d.Session.Exercises) != 1 || d.Session.Exercises[0].Name != "Squat" {
		t.Errorf("exercises = %+v, want one Squat entry", d.Session.Exercises)
	}
}

// TestDayScheduleUnmarshalUnknownString verifies non-rest strings are
// rejected rather than silently treated as rest days.
func TestDayScheduleUnmarshalUnknownString(t *testing.T) {
	var d DaySchedule
	if err := json.Unmarshal([]byte(`"holiday"`), &d); err == nil {
		t.Error("Unmarshal(\"holiday\") error = nil, want error")
	}
}

// TestDayScheduleRoundTrip verifies a schedule survives marshal and
// unmarshal unchanged.
func TestDayScheduleRoundTrip(t *testing.T) {
	orig := WorkoutDay(Session{
		Name:      "Upper",
		Exercises: []Exercise{{Name: "Bench Press", Sets: 3, Reps: "8-10", Rest: "60s", Notes: "pause at chest"}},
		Notes:     []string{"warm up first"},
	})
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back DaySchedule
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Session.Exercises[0] != orig.Session.Exercises[0] {
		t.Errorf("round trip exercise = %+v, want %+v", back.Session.Exercises[0], orig.Session.Exercises[0])
	}
}

// TestDayIndex verifies chronological ordering and case-insensitive lookup.
func TestDayIndex(t *testing.T) {
	if got := DayIndex("Monday"); got != 0 {
		t.Errorf("DayIndex(Monday) = %d, want 0", got)
	}
	if got := DayIndex("sunday"); got != 6 {
		t.Errorf("DayIndex(sunday) = %d, want 6", got)
	}
	if got := DayIndex("Someday"); got != -1 {
		t.Errorf("DayIndex(Someday) = %d, want -1", got)
	}
}

// TestWorkoutDays verifies workout days come back in chronological order.
func TestWorkoutDays(t *testing.T) {
	days := testPlan().WorkoutDays()
	want := []string{"Monday", "Wednesday", "Friday"}
	if len(days) != len(want) {
		t.Fatalf("WorkoutDays() = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("WorkoutDays()[%d] = %q, want %q", i, days[i], want[i])
		}
	}
}

// TestFindExercise verifies case-insensitive lookup across sessions.
func TestFindExercise(t *testing.T) {
	p := testPlan()
	if !p.FindExercise("bench press") {
		t.Error("FindExercise(bench press) = false, want true")
	}
	if !p.FindExercise("Squat") {
		t.Error("FindExercise(Squat) = false, want true")
	}
	if p.FindExercise("Deadlift") {
		t.Error("FindExercise(Deadlift) = true, want false")
	}
}

// TestCloneIndependent verifies mutations to a clone never reach the
// original plan.
func TestCloneIndependent(t *testing.T) {
	orig := testPlan()
	orig.Notes = []string{"original note"}

	cp := orig.Clone()
	cp.Week["Monday"].Session.Exercises[0].Name = "Incline Press"
	cp.Week["Monday"].Session.AppendNote("clone note")
	cp.Week["Tuesday"] = WorkoutDay(Session{Name: "Extra"})
	cp.Notes = append(cp.Notes, "another")

	if got := orig.Week["Monday"].Session.Exercises[0].Name; got != "Bench Press" {
		t.Errorf("original exercise name = %q, want %q", got, "Bench Press")
	}
	if n := len(orig.Week["Monday"].Session.Notes); n != 0 {
		t.Errorf("original session notes = %d, want 0", n)
	}
	if !orig.Week["Tuesday"].IsRest() {
		t.Error("original Tuesday became a workout day")
	}
	if len(orig.Notes) != 1 {
		t.Errorf("original notes = %d, want 1", len(orig.Notes))
	}
}

// TestCloneNil verifies cloning a nil plan is safe.
func TestCloneNil(t *testing.T) {
	var p *Plan
	if p.Clone() != nil {
		t.Error("Clone() of nil plan != nil")
	}
}

// TestAppendPlanNote verifies duplicate notes are dropped.
func TestAppendPlanNote(t *testing.T) {
	p := testPlan()
	if !p.AppendPlanNote("train hard") {
		t.Error("first AppendPlanNote() = false, want true")
	}
	if p.AppendPlanNote("train hard") {
		t.Error("duplicate AppendPlanNote() = true, want false")
	}
	if len(p.Notes) != 1 {
		t.Errorf("notes = %d, want 1", len(p.Notes))
	}
}

// TestSessionAppendNote verifies session notes skip exact duplicates.
func TestSessionAppendNote(t *testing.T) {
	s := &Session{}
	s.AppendNote("keep rest short")
	s.AppendNote("keep rest short")
	s.AppendNote("hydrate")
	if len(s.Notes) != 2 {
		t.Errorf("notes = %v, want 2 entries", s.Notes)
	}
}

// TestExerciseAppendNote verifies notes join with semicolons.
func TestExerciseAppendNote(t *testing.T) {
	e := &Exercise{Name: "Squat"}
	e.AppendNote("brace core")
	if e.Notes != "brace core" {
		t.Errorf("notes = %q, want %q", e.Notes, "brace core")
	}
	e.AppendNote("slow descent")
	if e.Notes != "brace core; slow descent" {
		t.Errorf("notes = %q, want %q", e.Notes, "brace core; slow descent")
	}
}
