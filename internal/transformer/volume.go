package transformer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/replan/internal/models"
)

var repRangePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// applyVolume changes sets or reps on the targeted exercises. Sets move by
// ±1 (never below 1) or to an explicit value; rep ranges shift both bounds
// by ±1, scalar reps by ±2, both clamped at 1. "all" targets every
// exercise in every session.
func (t *Transformer) applyVolume(plan *models.Plan, va models.VolumeAdjustment) (outcome, error) {
	if va.Property != models.PropertySets && va.Property != models.PropertyReps {
		return outcome{}, fmt.Errorf("unknown volume property %q", va.Property)
	}

	var explicit int
	if va.Change == models.ChangeSet {
		v, ok := va.Value.Int()
		if va.Property == models.PropertySets {
			if !ok || v < 1 {
				return outcome{}, fmt.Errorf("explicit sets value %q is not a positive integer", va.Value)
			}
			explicit = v
		}
	}

	all := strings.EqualFold(va.Exercise, models.TargetAll)
	adjusted := 0
	var lastDay string

	for _, day := range models.DayNames {
		sched, ok := plan.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for i := range sched.Session.Exercises {
			ex := &sched.Session.Exercises[i]
			if !all && !strings.EqualFold(ex.Name, va.Exercise) {
				continue
			}

			changed := false
			if va.Property == models.PropertySets {
				changed = adjustSets(ex, va.Change, explicit)
			} else {
				changed = adjustReps(ex, va.Change, va.Value.String())
			}
			if changed {
				adjusted++
				lastDay = day
			}
		}
	}

	if adjusted == 0 {
		return outcome{
			Text: fmt.Sprintf("No exercise matched %q for the %s adjustment.", va.Exercise, va.Property),
		}, nil
	}
	return outcome{
		Changed:  true,
		Text:     fmt.Sprintf("Adjusted %s on %d exercise(s).", va.Property, adjusted),
		Day:      lastDay,
		Exercise: va.Exercise,
	}, nil
}

func adjustSets(ex *models.Exercise, change string, explicit int) bool {
	switch change {
	case models.ChangeIncrease:
		ex.Sets++
	case models.ChangeDecrease:
		ex.Sets = max(1, ex.Sets-1)
	case models.ChangeSet:
		ex.Sets = explicit
	default:
		return false
	}
	return true
}

func adjustReps(ex *models.Exercise, change, value string) bool {
	if change == models.ChangeSet {
		if strings.TrimSpace(value) == "" {
			return false
		}
		ex.Reps = strings.TrimSpace(value)
		return true
	}

	delta := 0
	switch change {
	case models.ChangeIncrease:
		delta = 1
	case models.ChangeDecrease:
		delta = -1
	default:
		return false
	}

	if m := repRangePattern.FindStringSubmatch(strings.TrimSpace(ex.Reps)); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		ex.Reps = fmt.Sprintf("%d-%d", max(1, low+delta), max(1, high+delta))
		return true
	}

	// Scalar reps move by 2 per step; non-numeric values (durations like
	// "30 seconds") are left alone.
	n, err := strconv.Atoi(strings.TrimSpace(ex.Reps))
	if err != nil {
		return false
	}
	ex.Reps = strconv.Itoa(max(1, n+2*delta))
	return true
}
