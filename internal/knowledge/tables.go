package knowledge

import "strings"

// The keyword tables below are the deterministic fallback knowledge used
// when the remote catalog is unavailable or has no match. They are data,
// not control flow, so they can be extended and tested in isolation.

// equipmentTerms is the recognized equipment vocabulary. Plural and
// variant spellings normalize onto these canonical names.
var equipmentTerms = map[string]string{
	"barbell":     "barbell",
	"barbells":    "barbell",
	"dumbbell":    "dumbbell",
	"dumbbells":   "dumbbell",
	"kettlebell":  "kettlebell",
	"kettlebells": "kettlebell",
	"machine":     "machine",
	"machines":    "machine",
	"cable":       "cable",
	"cables":      "cable",
	"band":        "band",
	"bands":       "band",
	"bench":       "bench",
	"bodyweight":  "bodyweight",
	"body weight": "bodyweight",
	"pull-up bar": "pull-up bar",
	"pullup bar":  "pull-up bar",
}

// NormalizeEquipment maps an equipment string onto its canonical term.
// Unknown strings pass through lowercased.
func NormalizeEquipment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := equipmentTerms[s]; ok {
		return canonical
	}
	return s
}

// SplitEquipmentList splits a user-supplied equipment string on "and" and
// commas, normalizing each item: "dumbbells and bands" → [dumbbell band].
func SplitEquipmentList(s string) []string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " and ", ",")
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, NormalizeEquipment(part))
	}
	return out
}

// localExercises is the built-in exercise table: muscles worked and the
// equipment required. It doubles as the fallback substitution pool.
var localExercises = []CatalogExercise{
	{Name: "Squat", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"hamstrings", "core"}, Equipment: []string{"barbell"}},
	{Name: "Goblet Squat", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"core"}, Equipment: []string{"dumbbell"}},
	{Name: "Bodyweight Squat", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"core"}, Equipment: []string{"bodyweight"}},
	{Name: "Leg Press", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"hamstrings"}, Equipment: []string{"machine"}},
	{Name: "Lunges", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"hamstrings", "core"}, Equipment: []string{"bodyweight"}},
	{Name: "Bulgarian Split Squat", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"hamstrings"}, Equipment: []string{"dumbbell", "bench"}},
	{Name: "Leg Extension", PrimaryMuscles: []string{"quads"}, Equipment: []string{"machine"}},
	{Name: "Leg Curl", PrimaryMuscles: []string{"hamstrings"}, Equipment: []string{"machine"}},
	{Name: "Romanian Deadlift", PrimaryMuscles: []string{"hamstrings", "glutes"}, SecondaryMuscles: []string{"back"}, Equipment: []string{"barbell"}},
	{Name: "Dumbbell Romanian Deadlift", PrimaryMuscles: []string{"hamstrings", "glutes"}, SecondaryMuscles: []string{"back"}, Equipment: []string{"dumbbell"}},
	{Name: "Deadlift", PrimaryMuscles: []string{"hamstrings", "glutes", "back"}, SecondaryMuscles: []string{"core", "traps"}, Equipment: []string{"barbell"}},
	{Name: "Hip Thrust", PrimaryMuscles: []string{"glutes"}, SecondaryMuscles: []string{"hamstrings"}, Equipment: []string{"barbell", "bench"}},
	{Name: "Glute Bridge", PrimaryMuscles: []string{"glutes"}, SecondaryMuscles: []string{"hamstrings", "core"}, Equipment: []string{"bodyweight"}},
	{Name: "Calf Raise", PrimaryMuscles: []string{"calves"}, Equipment: []string{"bodyweight"}},
	{Name: "Bench Press", PrimaryMuscles: []string{"chest", "triceps"}, SecondaryMuscles: []string{"shoulders"}, Equipment: []string{"barbell", "bench"}},
	{Name: "Dumbbell Bench Press", PrimaryMuscles: []string{"chest", "triceps"}, SecondaryMuscles: []string{"shoulders"}, Equipment: []string{"dumbbell", "bench"}},
	{Name: "Push-Up", PrimaryMuscles: []string{"chest", "triceps"}, SecondaryMuscles: []string{"shoulders", "core"}, Equipment: []string{"bodyweight"}},
	{Name: "Chest Fly", PrimaryMuscles: []string{"chest"}, SecondaryMuscles: []string{"shoulders"}, Equipment: []string{"dumbbell", "bench"}},
	{Name: "Cable Crossover", PrimaryMuscles: []string{"chest"}, Equipment: []string{"cable"}},
	{Name: "Overhead Press", PrimaryMuscles: []string{"shoulders", "triceps"}, SecondaryMuscles: []string{"core"}, Equipment: []string{"barbell"}},
	{Name: "Dumbbell Shoulder Press", PrimaryMuscles: []string{"shoulders", "triceps"}, Equipment: []string{"dumbbell"}},
	{Name: "Lateral Raise", PrimaryMuscles: []string{"shoulders"}, Equipment: []string{"dumbbell"}},
	{Name: "Band Pull-Apart", PrimaryMuscles: []string{"shoulders"}, SecondaryMuscles: []string{"back"}, Equipment: []string{"band"}},
	{Name: "Pull-Up", PrimaryMuscles: []string{"back", "biceps"}, SecondaryMuscles: []string{"core"}, Equipment: []string{"pull-up bar"}},
	{Name: "Lat Pulldown", PrimaryMuscles: []string{"back", "biceps"}, Equipment: []string{"machine"}},
	{Name: "Bent-Over Row", PrimaryMuscles: []string{"back", "biceps"}, SecondaryMuscles: []string{"core"}, Equipment: []string{"barbell"}},
	{Name: "Dumbbell Row", PrimaryMuscles: []string{"back", "biceps"}, Equipment: []string{"dumbbell"}},
	{Name: "Seated Cable Row", PrimaryMuscles: []string{"back", "biceps"}, Equipment: []string{"cable"}},
	{Name: "Band Row", PrimaryMuscles: []string{"back", "biceps"}, Equipment: []string{"band"}},
	{Name: "Bicep Curl", PrimaryMuscles: []string{"biceps"}, Equipment: []string{"dumbbell"}},
	{Name: "Barbell Curl", PrimaryMuscles: []string{"biceps"}, Equipment: []string{"barbell"}},
	{Name: "Band Curl", PrimaryMuscles: []string{"biceps"}, Equipment: []string{"band"}},
	{Name: "Tricep Pushdown", PrimaryMuscles: []string{"triceps"}, Equipment: []string{"cable"}},
	{Name: "Tricep Dip", PrimaryMuscles: []string{"triceps", "chest"}, Equipment: []string{"bodyweight"}},
	{Name: "Overhead Tricep Extension", PrimaryMuscles: []string{"triceps"}, Equipment: []string{"dumbbell"}},
	{Name: "Plank", PrimaryMuscles: []string{"core"}, Equipment: []string{"bodyweight"}},
	{Name: "Hanging Leg Raise", PrimaryMuscles: []string{"core"}, Equipment: []string{"pull-up bar"}},
	{Name: "Jump Squat", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"calves"}, Equipment: []string{"bodyweight"}},
	{Name: "Box Jump", PrimaryMuscles: []string{"quads", "glutes"}, SecondaryMuscles: []string{"calves"}, Equipment: []string{"bodyweight"}},
	{Name: "Burpee", PrimaryMuscles: []string{"chest", "quads"}, SecondaryMuscles: []string{"core", "shoulders"}, Equipment: []string{"bodyweight"}},
}

// equipmentNameHints maps equipment to name fragments that imply the
// equipment even for exercises the table doesn't know.
var equipmentNameHints = map[string][]string{
	"barbell":     {"barbell", "bench press", "squat", "deadlift", "overhead press", "bent-over row", "power clean", "good morning"},
	"dumbbell":    {"dumbbell", "goblet", "lateral raise", "chest fly", "curl"},
	"kettlebell":  {"kettlebell", "swing"},
	"machine":     {"machine", "leg press", "lat pulldown", "leg extension", "leg curl", "pec deck", "smith"},
	"cable":       {"cable", "pushdown", "crossover", "face pull"},
	"band":        {"band"},
	"bench":       {"bench press", "bench", "step-up"},
	"pull-up bar": {"pull-up", "pullup", "chin-up", "hanging"},
}

// fallbackContraindications maps condition keywords to exercise-name
// block-lists. Condition matching is a case-insensitive substring test, so
// "chronic knee pain" hits the "knee" entry.
var fallbackContraindications = map[string][]string{
	"knee":     {"Jump Squat", "Box Jump", "Jumping Lunges", "Pistol Squat", "Burpee", "Deep Squat"},
	"shoulder": {"Overhead Press", "Behind-the-Neck Press", "Upright Row", "Push Press", "Handstand Push-Up"},
	"back":     {"Deadlift", "Good Morning", "Bent-Over Row", "Superman", "Barbell Squat"},
	"elbow":    {"Tricep Dip", "Skull Crusher", "Close-Grip Bench Press"},
	"wrist":    {"Push-Up", "Front Squat", "Clean and Jerk", "Handstand Push-Up"},
	"hip":      {"Deep Squat", "Sumo Deadlift", "Leg Press", "Pigeon Pose"},
	"ankle":    {"Box Jump", "Jump Rope", "Calf Raise", "Sprints"},
}

// fallbackSubstitutes is the hand-coded last-resort substitution table,
// keyed by "equipment|exercise fragment".
var fallbackSubstitutes = map[string]string{
	"barbell|squat":          "Goblet Squat",
	"barbell|bench press":    "Push-Up",
	"barbell|deadlift":       "Dumbbell Romanian Deadlift",
	"barbell|overhead press": "Dumbbell Shoulder Press",
	"barbell|row":            "Dumbbell Row",
	"barbell|curl":           "Bicep Curl",
	"barbell|hip thrust":     "Glute Bridge",
	"machine|leg press":      "Goblet Squat",
	"machine|lat pulldown":   "Pull-Up",
	"machine|leg curl":       "Romanian Deadlift",
	"machine|leg extension":  "Lunges",
	"cable|pushdown":         "Tricep Dip",
	"cable|row":              "Dumbbell Row",
	"cable|crossover":        "Chest Fly",
	"dumbbell|curl":          "Band Curl",
	"dumbbell|press":         "Push-Up",
	"dumbbell|row":           "Band Row",
}

// compoundVocabulary names the multi-joint exercises; isolationVocabulary
// names single-joint ones. Classification is a fragment-membership test.
var compoundVocabulary = []string{
	"squat", "deadlift", "bench press", "overhead press", "row", "pull-up",
	"chin-up", "dip", "lunge", "clean", "snatch", "hip thrust", "push-up",
	"leg press", "pulldown",
}

var isolationVocabulary = []string{
	"curl", "extension", "raise", "fly", "pushdown", "pull-apart",
	"crossover", "kickback", "shrug", "pec deck",
}

// Classification of an exercise by name.
type Classification int

const (
	ClassUnknown Classification = iota
	ClassCompound
	ClassIsolation
)

// Classify reports whether an exercise name reads as a compound or
// isolation movement. Compound fragments win ties ("leg extension" checks
// isolation first on purpose: extension is the more specific signal).
func Classify(exercise string) Classification {
	name := strings.ToLower(exercise)
	for _, frag := range isolationVocabulary {
		if strings.Contains(name, frag) {
			return ClassIsolation
		}
	}
	for _, frag := range compoundVocabulary {
		if strings.Contains(name, frag) {
			return ClassCompound
		}
	}
	return ClassUnknown
}
