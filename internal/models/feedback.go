package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DirectiveType tags one category of adjustment request extracted from
// feedback. The set is closed: the transformer matches exhaustively on it.
type DirectiveType string

const (
	DirectiveSubstitution      DirectiveType = "substitution"
	DirectiveVolume            DirectiveType = "volume"
	DirectiveIntensity         DirectiveType = "intensity"
	DirectiveSchedule          DirectiveType = "schedule"
	DirectiveRestPeriod        DirectiveType = "restPeriod"
	DirectiveEquipment         DirectiveType = "equipment"
	DirectivePainConcern       DirectiveType = "painConcern"
	DirectiveAdvancedTechnique DirectiveType = "advancedTechnique"
	DirectiveTimeConstraint    DirectiveType = "timeConstraint"
	DirectiveOther             DirectiveType = "other"
)

// Change directions shared by volume, intensity, and rest-period directives.
const (
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
	ChangeSet      = "set"
)

// Volume adjustment properties.
const (
	PropertySets = "sets"
	PropertyReps = "reps"
)

// Rest-period change scopes.
const (
	RestBetweenSets     = "between_sets"
	RestBetweenWorkouts = "between_workouts"
)

// TargetAll is the exercise wildcard: the directive applies to every
// exercise in every session.
const TargetAll = "all"

// FlexValue is a string that also accepts a bare JSON number on decode.
// Language-model output is inconsistent about quoting numeric values.
type FlexValue string

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FlexValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FlexValue(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Int parses the value as an integer.
func (v FlexValue) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (v FlexValue) String() string { return string(v) }

// Substitution asks for one exercise to be swapped for another.
type Substitution struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

// VolumeAdjustment changes sets or reps for a named exercise or for "all".
type VolumeAdjustment struct {
	Exercise string    `json:"exercise"`
	Property string    `json:"property"`
	Change   string    `json:"change"`
	Value    FlexValue `json:"value,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// IntensityAdjustment requests a change to weight, tempo, difficulty, or a
// similar parameter. Applied as a descriptive note, never a field mutation.
type IntensityAdjustment struct {
	Exercise  string    `json:"exercise"`
	Parameter string    `json:"parameter"`
	Change    string    `json:"change"`
	Value     FlexValue `json:"value,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// ScheduleChange requests rearranging the weekly schedule. Type is a
// free-form verb ("move", "combine", ...); Details carries the day names.
type ScheduleChange struct {
	Type    string `json:"type"`
	Details string `json:"details"`
	Reason  string `json:"reason,omitempty"`
}

// RestPeriodChange adjusts rest between sets or between workout days.
type RestPeriodChange struct {
	Type   string    `json:"type"`
	Change string    `json:"change"`
	Value  FlexValue `json:"value,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

// EquipmentLimitation reports equipment the user no longer has access to,
// with an optional replacement ("and"/comma-separated list allowed).
type EquipmentLimitation struct {
	Equipment   string `json:"equipment"`
	Alternative string `json:"alternative,omitempty"`
}

// PainConcern flags pain in a body area, optionally tied to an exercise.
// Exercise may be "general" when no single movement is implicated.
type PainConcern struct {
	Area     string `json:"area"`
	Exercise string `json:"exercise"`
	Severity string `json:"severity,omitempty"`
}

// ParsedFeedback is the interpreter's output: eight mutually independent
// directive categories. After Normalize every slice is non-nil, so callers
// never see a missing category.
type ParsedFeedback struct {
	Substitutions        []Substitution        `json:"substitutions"`
	VolumeAdjustments    []VolumeAdjustment    `json:"volumeAdjustments"`
	IntensityAdjustments []IntensityAdjustment `json:"intensityAdjustments"`
	ScheduleChanges      []ScheduleChange      `json:"scheduleChanges"`
	RestPeriodChanges    []RestPeriodChange    `json:"restPeriodChanges"`
	EquipmentLimitations []EquipmentLimitation `json:"equipmentLimitations"`
	PainConcerns         []PainConcern         `json:"painConcerns"`
	GeneralFeedback      string                `json:"generalFeedback"`
}

// Normalize replaces nil category slices with empty ones.
func (f *ParsedFeedback) Normalize() {
	if f.Substitutions == nil {
		f.Substitutions = []Substitution{}
	}
	if f.VolumeAdjustments == nil {
		f.VolumeAdjustments = []VolumeAdjustment{}
	}
	if f.IntensityAdjustments == nil {
		f.IntensityAdjustments = []IntensityAdjustment{}
	}
	if f.ScheduleChanges == nil {
		f.ScheduleChanges = []ScheduleChange{}
	}
	if f.RestPeriodChanges == nil {
		f.RestPeriodChanges = []RestPeriodChange{}
	}
	if f.EquipmentLimitations == nil {
		f.EquipmentLimitations = []EquipmentLimitation{}
	}
	if f.PainConcerns == nil {
		f.PainConcerns = []PainConcern{}
	}
}

// Empty reports whether the feedback contains no directives at all.
func (f ParsedFeedback) Empty() bool {
	return len(f.Substitutions) == 0 &&
		len(f.VolumeAdjustments) == 0 &&
		len(f.IntensityAdjustments) == 0 &&
		len(f.ScheduleChanges) == 0 &&
		len(f.RestPeriodChanges) == 0 &&
		len(f.EquipmentLimitations) == 0 &&
		len(f.PainConcerns) == 0
}

// DirectiveTypes returns the types present in the feedback, in the
// transformer's processing order.
func (f ParsedFeedback) DirectiveTypes() []DirectiveType {
	var types []DirectiveType
	if len(f.PainConcerns) > 0 {
		types = append(types, DirectivePainConcern)
	}
	if len(f.EquipmentLimitations) > 0 {
		types = append(types, DirectiveEquipment)
	}
	if len(f.Substitutions) > 0 {
		types = append(types, DirectiveSubstitution)
	}
	if len(f.VolumeAdjustments) > 0 {
		types = append(types, DirectiveVolume)
	}
	if len(f.IntensityAdjustments) > 0 {
		types = append(types, DirectiveIntensity)
	}
	if len(f.ScheduleChanges) > 0 {
		types = append(types, DirectiveSchedule)
	}
	if len(f.RestPeriodChanges) > 0 {
		types = append(types, DirectiveRestPeriod)
	}
	return types
}
