package interpreter

import (
	"regexp"
	"strings"

	"github.com/claude/replan/internal/models"
)

// Keyword vocabularies for the rule-based fallback parser. Rules are not
// mutually exclusive: several may fire on one input.

var powerliftingSignals = []string{
	"powerlifting", "powerlifter", "strength focus", "focus on strength",
	"compound lifts", "big three", "heavy triples", "heavy singles",
	"low rep", "lift heavier",
}

var challengeSignals = []string{
	"too easy", "more challenge", "more challenging", "not challenging",
	"not hard enough", "harder workout",
}

var injurySignals = []string{
	"hurt", "pain", "injur", "sore", "ache", "aching", "tweak",
}

var overheadSignals = []string{
	"overhead", "above my head", "pressing up", "press overhead",
}

var bodyParts = []string{
	"knee", "shoulder", "back", "elbow", "wrist", "hip", "ankle", "neck",
}

var (
	replacePattern  = regexp.MustCompile(`replace\s+(?:the\s+)?([a-z0-9 \-']+?)\s+with\s+(?:the\s+)?([a-z0-9 \-']+?)(?:[.,!?;]|$)`)
	bodyPainPattern = regexp.MustCompile(`\b(knee|shoulder|back|elbow|wrist|hip|ankle|neck)\s+pain\b`)
)

// FallbackParse is the deterministic rule-based interpreter used when the
// language model is unavailable or returns unusable output. It is a pure
// function of the input text.
func FallbackParse(text string) models.ParsedFeedback {
	lower := strings.ToLower(text)
	var fb models.ParsedFeedback

	// Powerlifting / compound-focus language: lower rep targets and nudge
	// toward the compound versions of common machine movements.
	if containsAny(lower, powerliftingSignals) {
		fb.IntensityAdjustments = append(fb.IntensityAdjustments, models.IntensityAdjustment{
			Exercise:  models.TargetAll,
			Parameter: "reps",
			Change:    models.ChangeDecrease,
			Reason:    "strength focus favors lower rep ranges",
		})
		fb.Substitutions = append(fb.Substitutions,
			models.Substitution{From: "Leg Press", To: "Squat", Reason: "compound focus"},
			models.Substitution{From: "Lat Pulldown", To: "Bent-Over Row", Reason: "compound focus"},
		)
	}

	// "Too easy" language: more volume and more intensity.
	if containsAny(lower, challengeSignals) {
		fb.VolumeAdjustments = append(fb.VolumeAdjustments, models.VolumeAdjustment{
			Exercise: models.TargetAll,
			Property: models.PropertySets,
			Change:   models.ChangeIncrease,
			Reason:   "plan reported as too easy",
		})
		fb.IntensityAdjustments = append(fb.IntensityAdjustments, models.IntensityAdjustment{
			Exercise:  models.TargetAll,
			Parameter: "weight",
			Change:    models.ChangeIncrease,
			Reason:    "plan reported as too easy",
		})
	}

	// Injury keyword + body part co-occurrence.
	if containsAny(lower, injurySignals) {
		for _, part := range bodyParts {
			if !strings.Contains(lower, part) {
				continue
			}
			fb.PainConcerns = appendPainConcern(fb.PainConcerns, models.PainConcern{
				Area:     part,
				Exercise: "general",
			})
			if part == "shoulder" && containsAny(lower, overheadSignals) {
				fb.Substitutions = append(fb.Substitutions, models.Substitution{
					From:   "Overhead Press",
					To:     "Lateral Raise",
					Reason: "avoid overhead movement with shoulder pain",
				})
			}
		}
	}

	// "replace X with Y"
	for _, m := range replacePattern.FindAllStringSubmatch(lower, -1) {
		fb.Substitutions = append(fb.Substitutions, models.Substitution{
			From:   strings.TrimSpace(m[1]),
			To:     strings.TrimSpace(m[2]),
			Reason: "requested in feedback",
		})
	}

	// Generic volume phrases.
	if strings.Contains(lower, "more sets") || strings.Contains(lower, "increase sets") {
		fb.VolumeAdjustments = append(fb.VolumeAdjustments, models.VolumeAdjustment{
			Exercise: models.TargetAll,
			Property: models.PropertySets,
			Change:   models.ChangeIncrease,
		})
	}
	if strings.Contains(lower, "less reps") || strings.Contains(lower, "fewer reps") || strings.Contains(lower, "decrease reps") {
		fb.VolumeAdjustments = append(fb.VolumeAdjustments, models.VolumeAdjustment{
			Exercise: models.TargetAll,
			Property: models.PropertyReps,
			Change:   models.ChangeDecrease,
		})
	}

	// "<bodypart> pain"
	for _, m := range bodyPainPattern.FindAllStringSubmatch(lower, -1) {
		fb.PainConcerns = appendPainConcern(fb.PainConcerns, models.PainConcern{
			Area:     m[1],
			Exercise: "general",
		})
	}

	fb.GeneralFeedback = strings.TrimSpace(text)
	dropIncreasesForPainfulExercises(&fb)
	return fb
}

// dropIncreasesForPainfulExercises keeps the fallback conservative: an
// explicit pain signal is never contradicted by an intensity or volume
// increase for the same exercise. A "general" pain concern suppresses
// increases targeting the whole plan.
func dropIncreasesForPainfulExercises(fb *models.ParsedFeedback) {
	if len(fb.PainConcerns) == 0 {
		return
	}

	painful := func(exercise string) bool {
		for _, pc := range fb.PainConcerns {
			if strings.EqualFold(pc.Exercise, exercise) {
				return true
			}
			if strings.EqualFold(pc.Exercise, "general") && strings.EqualFold(exercise, models.TargetAll) {
				return true
			}
		}
		return false
	}

	var intensity []models.IntensityAdjustment
	for _, ia := range fb.IntensityAdjustments {
		if ia.Change == models.ChangeIncrease && painful(ia.Exercise) {
			continue
		}
		intensity = append(intensity, ia)
	}
	fb.IntensityAdjustments = intensity

	var volume []models.VolumeAdjustment
	for _, va := range fb.VolumeAdjustments {
		if va.Change == models.ChangeIncrease && painful(va.Exercise) {
			continue
		}
		volume = append(volume, va)
	}
	fb.VolumeAdjustments = volume
}

func appendPainConcern(concerns []models.PainConcern, pc models.PainConcern) []models.PainConcern {
	for _, existing := range concerns {
		if strings.EqualFold(existing.Area, pc.Area) && strings.EqualFold(existing.Exercise, pc.Exercise) {
			return concerns
		}
	}
	return append(concerns, pc)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
