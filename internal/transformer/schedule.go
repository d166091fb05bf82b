package transformer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/claude/replan/internal/models"
)

// applySchedule rearranges the weekly schedule. "move" relocates a session
// to a rest day; "combine" merges two sessions onto the earlier-mentioned
// day. Other subtypes are acknowledged without changes.
func (t *Transformer) applySchedule(plan *models.Plan, sc models.ScheduleChange) (outcome, error) {
	switch strings.ToLower(strings.TrimSpace(sc.Type)) {
	case "move":
		return t.moveWorkout(plan, sc.Details)
	case "combine":
		return t.combineWorkouts(plan, sc.Details)
	default:
		return outcome{
			Text: fmt.Sprintf("Schedule change type %q is not yet supported; no changes made.", sc.Type),
		}, nil
	}
}

func (t *Transformer) moveWorkout(plan *models.Plan, details string) (outcome, error) {
	days := extractDays(details)
	if len(days) < 2 {
		return outcome{}, fmt.Errorf("could not identify two days in %q", details)
	}
	from, to := days[0], days[1]

	fromSched, ok := plan.Week[from]
	if !ok || fromSched.IsRest() {
		return outcome{}, fmt.Errorf("%s has no workout to move", from)
	}
	toSched, ok := plan.Week[to]
	if ok && !toSched.IsRest() {
		return outcome{}, fmt.Errorf("%s already has a workout", to)
	}

	plan.Week[to] = fromSched
	plan.Week[from] = models.RestDay()

	return outcome{
		Changed: true,
		Text:    fmt.Sprintf("Moved %q from %s to %s.", fromSched.Session.Name, from, to),
		Day:     to,
	}, nil
}

func (t *Transformer) combineWorkouts(plan *models.Plan, details string) (outcome, error) {
	days := extractDays(details)
	if len(days) < 2 {
		return outcome{}, fmt.Errorf("could not identify two days in %q", details)
	}
	first, second := days[0], days[1]
	if first == second {
		return outcome{}, fmt.Errorf("cannot combine %s with itself", first)
	}

	firstSched, ok := plan.Week[first]
	if !ok || firstSched.IsRest() {
		return outcome{}, fmt.Errorf("%s has no workout to combine", first)
	}
	secondSched, ok := plan.Week[second]
	if !ok || secondSched.IsRest() {
		return outcome{}, fmt.Errorf("%s has no workout to combine", second)
	}

	merged := *firstSched.Session
	merged.Name = fmt.Sprintf("Combined: %s & %s", firstSched.Session.Name, secondSched.Session.Name)
	merged.Exercises = append(append([]models.Exercise(nil), firstSched.Session.Exercises...), secondSched.Session.Exercises...)

	plan.Week[first] = models.WorkoutDay(merged)
	plan.Week[second] = models.RestDay()

	return outcome{
		Changed: true,
		Text:    fmt.Sprintf("Combined %s's and %s's sessions into %q.", first, second, merged.Name),
		Day:     first,
	}, nil
}

// extractDays returns the weekday names mentioned in the text, ordered by
// their position of first mention.
func extractDays(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		day string
		pos int
	}
	var hits []hit
	for _, day := range models.DayNames {
		if pos := strings.Index(lower, strings.ToLower(day)); pos >= 0 {
			hits = append(hits, hit{day: day, pos: pos})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	days := make([]string, len(hits))
	for i, h := range hits {
		days[i] = h.day
	}
	return days
}
