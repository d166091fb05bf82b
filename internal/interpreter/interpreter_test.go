package interpreter

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

// fakeModel is a scripted LanguageModel.
type fakeModel struct {
	out string
	err error
}

func (f *fakeModel) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	return f.out, f.err
}

// TestParseModelOutput verifies well-formed model JSON is used directly.
func TestParseModelOutput(t *testing.T) {
	llm := &fakeModel{out: `{"substitutions":[{"from":"Squat","to":"Leg Press"}],"generalFeedback":"knees"}`}
	fb := New(llm, testLogger()).Parse(context.Background(), "swap my squats")

	if len(fb.Substitutions) != 1 || fb.Substitutions[0].From != "Squat" {
		t.Errorf("substitutions = %+v, want one Squat entry", fb.Substitutions)
	}
	if fb.GeneralFeedback != "knees" {
		t.Errorf("general feedback = %q, want %q", fb.GeneralFeedback, "knees")
	}
	if fb.PainConcerns == nil {
		t.Error("PainConcerns = nil, want normalized empty slice")
	}
}

// TestParseFencedOutput verifies markdown code fences around the JSON are
// tolerated.
func TestParseFencedOutput(t *testing.T) {
	llm := &fakeModel{out: "```json\n{\"painConcerns\":[{\"area\":\"knee\",\"exercise\":\"Squat\"}]}\n```"}
	fb := New(llm, testLogger()).Parse(context.Background(), "my knee hurts")

	if len(fb.PainConcerns) != 1 || fb.PainConcerns[0].Exercise != "Squat" {
		t.Errorf("pain concerns = %+v, want one Squat entry", fb.PainConcerns)
	}
}

// TestParseModelErrorFallsBack verifies model failures route to the
// rule-based parser.
func TestParseModelErrorFallsBack(t *testing.T) {
	llm := &fakeModel{err: errors.New("connection refused")}
	fb := New(llm, testLogger()).Parse(context.Background(), "my knee hurts")

	if len(fb.PainConcerns) != 1 || fb.PainConcerns[0].Area != "knee" {
		t.Errorf("pain concerns = %+v, want fallback knee entry", fb.PainConcerns)
	}
}

// TestParseGarbageOutputFallsBack verifies non-JSON model output routes to
// the rule-based parser.
func TestParseGarbageOutputFallsBack(t *testing.T) {
	llm := &fakeModel{out: "Sure! Here's what I think you should do:"}
	fb := New(llm, testLogger()).Parse(context.Background(), "the workouts are too easy")

	if len(fb.VolumeAdjustments) != 1 {
		t.Errorf("volume adjustments = %+v, want fallback increase", fb.VolumeAdjustments)
	}
}

// TestParseNilModel verifies fallback-only operation with no model wired.
func TestParseNilModel(t *testing.T) {
	fb := New(nil, testLogger()).Parse(context.Background(), "replace the leg press with lunges")

	if len(fb.Substitutions) != 1 || fb.Substitutions[0].To != "lunges" {
		t.Errorf("substitutions = %+v, want leg press -> lunges", fb.Substitutions)
	}
}

// TestStripFences covers fenced, tagged, and bare input.
func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```JSON\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
