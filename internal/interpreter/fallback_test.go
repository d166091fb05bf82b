package interpreter

import (
	"testing"

	"github.com/claude/replan/internal/models"
)

// TestFallbackPowerlifting verifies strength-focus language lowers rep
// targets and swaps machine movements for their compound versions.
func TestFallbackPowerlifting(t *testing.T) {
	fb := FallbackParse("I want to switch to powerlifting and focus on the big three.")

	if len(fb.IntensityAdjustments) != 1 {
		t.Fatalf("intensity adjustments = %d, want 1", len(fb.IntensityAdjustments))
	}
	ia := fb.IntensityAdjustments[0]
	if ia.Exercise != models.TargetAll || ia.Parameter != "reps" || ia.Change != models.ChangeDecrease {
		t.Errorf("intensity = %+v, want all/reps/decrease", ia)
	}

	if len(fb.Substitutions) != 2 {
		t.Fatalf("substitutions = %d, want 2", len(fb.Substitutions))
	}
	if fb.Substitutions[0].From != "Leg Press" || fb.Substitutions[0].To != "Squat" {
		t.Errorf("substitution[0] = %+v, want Leg Press -> Squat", fb.Substitutions[0])
	}
	if fb.Substitutions[1].From != "Lat Pulldown" || fb.Substitutions[1].To != "Bent-Over Row" {
		t.Errorf("substitution[1] = %+v, want Lat Pulldown -> Bent-Over Row", fb.Substitutions[1])
	}
}

// TestFallbackTooEasy verifies challenge language raises both volume and
// intensity.
func TestFallbackTooEasy(t *testing.T) {
	fb := FallbackParse("The workouts are too easy for me now.")

	if len(fb.VolumeAdjustments) != 1 {
		t.Fatalf("volume adjustments = %d, want 1", len(fb.VolumeAdjustments))
	}
	va := fb.VolumeAdjustments[0]
	if va.Exercise != models.TargetAll || va.Property != models.PropertySets || va.Change != models.ChangeIncrease {
		t.Errorf("volume = %+v, want all/sets/increase", va)
	}
	if len(fb.IntensityAdjustments) != 1 || fb.IntensityAdjustments[0].Change != models.ChangeIncrease {
		t.Errorf("intensity = %+v, want one weight increase", fb.IntensityAdjustments)
	}
}

// TestFallbackPain verifies injury language plus a body part yields a
// pain concern, deduplicated across rules.
func TestFallbackPain(t *testing.T) {
	fb := FallbackParse("My knee hurts during squats, real knee pain.")

	if len(fb.PainConcerns) != 1 {
		t.Fatalf("pain concerns = %+v, want exactly 1", fb.PainConcerns)
	}
	pc := fb.PainConcerns[0]
	if pc.Area != "knee" || pc.Exercise != "general" {
		t.Errorf("pain concern = %+v, want knee/general", pc)
	}
}

// TestFallbackShoulderOverhead verifies shoulder pain with overhead
// language swaps the overhead press out.
func TestFallbackShoulderOverhead(t *testing.T) {
	fb := FallbackParse("My shoulder hurts when pressing overhead.")

	if len(fb.Substitutions) != 1 {
		t.Fatalf("substitutions = %+v, want 1", fb.Substitutions)
	}
	sub := fb.Substitutions[0]
	if sub.From != "Overhead Press" || sub.To != "Lateral Raise" {
		t.Errorf("substitution = %+v, want Overhead Press -> Lateral Raise", sub)
	}
}

// TestFallbackReplacePattern verifies explicit "replace X with Y" requests.
func TestFallbackReplacePattern(t *testing.T) {
	fb := FallbackParse("Please replace the bench press with push-ups.")

	if len(fb.Substitutions) != 1 {
		t.Fatalf("substitutions = %+v, want 1", fb.Substitutions)
	}
	sub := fb.Substitutions[0]
	if sub.From != "bench press" || sub.To != "push-ups" {
		t.Errorf("substitution = %q -> %q, want bench press -> push-ups", sub.From, sub.To)
	}
}

// TestFallbackVolumePhrases verifies generic set/rep phrases.
func TestFallbackVolumePhrases(t *testing.T) {
	fb := FallbackParse("I'd like more sets but fewer reps per exercise.")

	if len(fb.VolumeAdjustments) != 2 {
		t.Fatalf("volume adjustments = %+v, want 2", fb.VolumeAdjustments)
	}
	if fb.VolumeAdjustments[0].Property != models.PropertySets || fb.VolumeAdjustments[0].Change != models.ChangeIncrease {
		t.Errorf("volume[0] = %+v, want sets increase", fb.VolumeAdjustments[0])
	}
	if fb.VolumeAdjustments[1].Property != models.PropertyReps || fb.VolumeAdjustments[1].Change != models.ChangeDecrease {
		t.Errorf("volume[1] = %+v, want reps decrease", fb.VolumeAdjustments[1])
	}
}

// TestFallbackPainSuppressesIncreases verifies a pain signal cancels
// whole-plan increases from the same input.
func TestFallbackPainSuppressesIncreases(t *testing.T) {
	fb := FallbackParse("It's too easy, though my knee hurts a bit.")

	if len(fb.PainConcerns) != 1 {
		t.Fatalf("pain concerns = %+v, want 1", fb.PainConcerns)
	}
	for _, va := range fb.VolumeAdjustments {
		if va.Change == models.ChangeIncrease {
			t.Errorf("volume increase %+v survived a pain concern", va)
		}
	}
	for _, ia := range fb.IntensityAdjustments {
		if ia.Change == models.ChangeIncrease {
			t.Errorf("intensity increase %+v survived a pain concern", ia)
		}
	}
}

// TestFallbackGeneralFeedback verifies the raw text is preserved trimmed.
func TestFallbackGeneralFeedback(t *testing.T) {
	fb := FallbackParse("  Just keeping at it.  ")
	if fb.GeneralFeedback != "Just keeping at it." {
		t.Errorf("general feedback = %q, want %q", fb.GeneralFeedback, "Just keeping at it.")
	}
	if !fb.Empty() {
		t.Errorf("feedback = %+v, want no directives", fb)
	}
}
