package transformer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/replan/internal/models"
)

// Rest-period bounds in seconds.
const (
	restStepSeconds = 30
	restFloor       = 15
)

var restPattern = regexp.MustCompile(`^(\d+)\s*(s|sec|secs|second|seconds|m|min|mins|minute|minutes)$`)

// restStyle preserves the original unit rendering across an adjustment.
type restStyle int

const (
	styleShortSeconds restStyle = iota // "60s"
	styleLongSeconds                   // "90 seconds"
	styleMinutes                       // "2 min"
)

// parseRestTime parses a rest string like "60s", "90 seconds", or "2 min"
// into seconds plus the unit style it was written in.
func parseRestTime(s string) (int, restStyle, bool) {
	m := restPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}

	switch m[2] {
	case "s":
		return n, styleShortSeconds, true
	case "sec", "secs", "second", "seconds":
		return n, styleLongSeconds, true
	default:
		return n * 60, styleMinutes, true
	}
}

// formatRest renders seconds back in the given style. Minute style falls
// back to seconds when the value no longer divides evenly.
func formatRest(seconds int, style restStyle) string {
	switch style {
	case styleShortSeconds:
		return fmt.Sprintf("%ds", seconds)
	case styleMinutes:
		if seconds%60 == 0 {
			return fmt.Sprintf("%d min", seconds/60)
		}
		return fmt.Sprintf("%d seconds", seconds)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}

// applyRestPeriod dispatches on the rest-change scope.
func (t *Transformer) applyRestPeriod(plan *models.Plan, rc models.RestPeriodChange) (outcome, error) {
	switch rc.Type {
	case models.RestBetweenSets:
		return t.adjustRestBetweenSets(plan, rc)
	case models.RestBetweenWorkouts:
		return t.adjustRestBetweenWorkouts(plan, rc)
	default:
		return outcome{}, fmt.Errorf("unknown rest period type %q", rc.Type)
	}
}

// adjustRestBetweenSets shifts each exercise's parseable rest value by
// ±30s (floor 15s) or to an explicit target. When no exercise carries a
// parseable rest value and an explicit target was given, one general note
// per session stands in for per-exercise edits.
func (t *Transformer) adjustRestBetweenSets(plan *models.Plan, rc models.RestPeriodChange) (outcome, error) {
	targetSeconds, haveTarget := parseRestValue(rc.Value.String())
	if rc.Change == models.ChangeSet && !haveTarget {
		return outcome{}, fmt.Errorf("explicit rest value %q is not a duration", rc.Value)
	}

	if !anyParseableRest(plan) {
		if !haveTarget {
			return outcome{
				Text: "No exercise has a parseable rest value; nothing to adjust.",
			}, nil
		}
		noted := 0
		note := fmt.Sprintf("Rest between sets: %s", formatRest(targetSeconds, styleLongSeconds))
		for _, day := range models.DayNames {
			sched, ok := plan.Week[day]
			if !ok || sched.IsRest() {
				continue
			}
			sched.Session.AppendNote(note)
			noted++
		}
		return outcome{
			Changed: noted > 0,
			Text:    fmt.Sprintf("Added a rest guideline note to %d session(s).", noted),
		}, nil
	}

	adjusted := 0
	var lastDay string
	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			seconds, style, ok := parseRestTime(ex.Rest)
			if !ok {
				continue
			}

			switch rc.Change {
			case models.ChangeIncrease:
				seconds += restStepSeconds
			case models.ChangeDecrease:
				seconds = max(restFloor, seconds-restStepSeconds)
			case models.ChangeSet:
				seconds = targetSeconds
			default:
				return outcome{}, fmt.Errorf("unknown rest change %q", rc.Change)
			}

			ex.Rest = formatRest(seconds, style)
			adjusted++
			lastDay = day
		}
	}

	return outcome{
		Changed: adjusted > 0,
		Text:    fmt.Sprintf("Adjusted rest on %d exercise(s).", adjusted),
		Day:     lastDay,
	}, nil
}

// parseRestValue accepts either a duration string ("90 seconds") or a bare
// number of seconds ("90").
func parseRestValue(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if seconds, _, ok := parseRestTime(v); ok {
		return seconds, true
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n, true
	}
	return 0, false
}

func anyParseableRest(plan *models.Plan) bool {
	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for _, ex := range sched.Session.Exercises {
			if _, _, ok := parseRestTime(ex.Rest); ok {
				return true
			}
		}
	}
	return false
}

// adjustRestBetweenWorkouts converts a workout day to rest ("increase") or
// brings one back ("decrease"). Displaced sessions are archived so a later
// decrease can restore them. Both directions degrade to an unchanged,
// explained outcome when no eligible day exists.
func (t *Transformer) adjustRestBetweenWorkouts(plan *models.Plan, rc models.RestPeriodChange) (outcome, error) {
	switch rc.Change {
	case models.ChangeIncrease:
		day := pickDayToRest(plan)
		if day == "" {
			return outcome{
				Text: "No workout day is available to convert to rest.",
			}, nil
		}
		sess := *plan.Week[day].Session
		if plan.Archived == nil {
			plan.Archived = make(map[string]models.Session)
		}
		plan.Archived[day] = sess
		plan.Week[day] = models.RestDay()
		return outcome{
			Changed: true,
			Text:    fmt.Sprintf("Converted %s to a rest day; archived %q for restoration.", day, sess.Name),
			Day:     day,
		}, nil

	case models.ChangeDecrease:
		return t.restoreWorkoutDay(plan)

	default:
		return outcome{}, fmt.Errorf("unknown rest change %q", rc.Change)
	}
}

// pickDayToRest selects which workout day to convert to rest: the latest
// workout day not adjacent to another workout day, falling back to the
// latest workout day. Returns "" when the plan has no workouts.
func pickDayToRest(plan *models.Plan) string {
	workoutDays := plan.WorkoutDays()
	if len(workoutDays) == 0 {
		return ""
	}

	isWorkout := make(map[int]bool, len(workoutDays))
	for _, day := range workoutDays {
		isWorkout[models.DayIndex(day)] = true
	}

	for i := len(workoutDays) - 1; i >= 0; i-- {
		idx := models.DayIndex(workoutDays[i])
		if !isWorkout[idx-1] && !isWorkout[idx+1] {
			return workoutDays[i]
		}
	}
	return workoutDays[len(workoutDays)-1]
}

// restoreWorkoutDay puts an archived session back onto a rest day,
// preferring its original slot; with nothing archived, the first rest day
// becomes a placeholder session for the user to fill in.
func (t *Transformer) restoreWorkoutDay(plan *models.Plan) (outcome, error) {
	var restDays []string
	for _, day := range models.DayNames {
		if sched, ok := plan.Week[day]; ok && sched.IsRest() {
			restDays = append(restDays, day)
		}
	}
	if len(restDays) == 0 {
		return outcome{
			Text: "No rest day is available to convert to a workout.",
		}, nil
	}

	// Prefer restoring an archived session to its original day.
	for _, day := range restDays {
		if sess, ok := plan.Archived[day]; ok {
			plan.Week[day] = models.WorkoutDay(sess)
			delete(plan.Archived, day)
			return outcome{
				Changed: true,
				Text:    fmt.Sprintf("Restored %q to %s.", sess.Name, day),
				Day:     day,
			}, nil
		}
	}

	// Any archived session onto the first rest day.
	for _, origin := range models.DayNames {
		if sess, ok := plan.Archived[origin]; ok {
			day := restDays[0]
			plan.Week[day] = models.WorkoutDay(sess)
			delete(plan.Archived, origin)
			return outcome{
				Changed: true,
				Text:    fmt.Sprintf("Restored %q to %s.", sess.Name, day),
				Day:     day,
			}, nil
		}
	}

	day := restDays[0]
	plan.Week[day] = models.WorkoutDay(models.Session{
		Name:      "New Workout",
		Exercises: []models.Exercise{},
	})
	return outcome{
		Changed: true,
		Text:    fmt.Sprintf("Converted %s to a placeholder workout day; add exercises to it.", day),
		Day:     day,
	}, nil
}
