package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RestLiteral is the canonical schedule value for a rest day. Reads accept
// any casing; writes always produce this form.
const RestLiteral = "Rest"

// DayNames lists the seven weekly schedule keys in chronological order.
// The weeklySchedule map always carries exactly these keys.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the chronological position of a day name (Monday = 0),
// matching case-insensitively. Returns -1 for unknown names.
func DayIndex(day string) int {
	for i, d := range DayNames {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

// Plan is a weekly workout plan. It is the unit the adjustment pipeline
// operates on: loaded once, deep-copied before transformation, and returned
// with an appended adjustmentHistory record.
type Plan struct {
	ID                uuid.UUID              `json:"planId"`
	Name              string                 `json:"planName"`
	Week              map[string]DaySchedule `json:"weeklySchedule"`
	Notes             []string               `json:"notes,omitempty"`
	AdjustmentHistory []AdjustmentRecord     `json:"adjustmentHistory,omitempty"`
	AppliedChanges    []AppliedChange        `json:"appliedChanges,omitempty"`
	SkippedChanges    []SkippedChange        `json:"skippedChanges,omitempty"`
	Archived          map[string]Session     `json:"archivedSessions,omitempty"`
	UpdatedAt         time.Time              `json:"updatedAt"`
	LastAdjusted      time.Time              `json:"lastAdjusted,omitzero"`
}

// DaySchedule is one day's entry in the weekly schedule: either rest or a
// workout session. On the wire a rest day is the literal string "Rest" and a
// workout day is a session object.
type DaySchedule struct {
	Session *Session
}

// RestDay returns the rest-day schedule value.
func RestDay() DaySchedule {
	return DaySchedule{}
}

// WorkoutDay returns a schedule value holding the given session.
func WorkoutDay(s Session) DaySchedule {
	return DaySchedule{Session: &s}
}

// IsRest reports whether the day has no workout scheduled.
func (d DaySchedule) IsRest() bool {
	return d.Session == nil
}

func (d DaySchedule) MarshalJSON() ([]byte, error) {
	if d.Session == nil {
		return json.Marshal(RestLiteral)
	}
	return json.Marshal(d.Session)
}

func (d *DaySchedule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), RestLiteral) {
			d.Session = nil
			return nil
		}
		return fmt.Errorf("unexpected day schedule string %q", s)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("parsing day schedule: %w", err)
	}
	d.Session = &sess
	return nil
}

// Session is a named, ordered list of exercises scheduled for a day.
type Session struct {
	Name      string     `json:"sessionName"`
	Exercises []Exercise `json:"exercises"`
	Notes     []string   `json:"notes,omitempty"`
}

// AppendNote adds a session-level note, skipping exact duplicates.
func (s *Session) AppendNote(note string) {
	for _, n := range s.Notes {
		if n == note {
			return
		}
	}
	s.Notes = append(s.Notes, note)
}

// Exercise is one entry in a session. Reps holds either a single count,
// a range like "8-10", or a duration like "30 seconds".
type Exercise struct {
	Name  string `json:"exercise"`
	Sets  int    `json:"sets"`
	Reps  string `json:"repsOrDuration"`
	Rest  string `json:"rest,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// AppendNote appends to the exercise's semicolon-joined notes string.
func (e *Exercise) AppendNote(note string) {
	if e.Notes == "" {
		e.Notes = note
		return
	}
	e.Notes += "; " + note
}

// AppendPlanNote adds a plan-level note, skipping exact duplicates.
func (p *Plan) AppendPlanNote(note string) bool {
	for _, n := range p.Notes {
		if n == note {
			return false
		}
	}
	p.Notes = append(p.Notes, note)
	return true
}

// WorkoutDays returns the day names carrying a session, in chronological order.
func (p *Plan) WorkoutDays() []string {
	var days []string
	for _, day := range DayNames {
		if sched, ok := p.Week[day]; ok && !sched.IsRest() {
			days = append(days, day)
		}
	}
	return days
}

// FindExercise reports whether an exercise with the given name (compared
// case-insensitively) appears anywhere in the plan's sessions.
func (p *Plan) FindExercise(name string) bool {
	for _, day := range DayNames {
		sched, ok := p.Week[day]
		if !ok || sched.IsRest() {
			continue
		}
		for _, ex := range sched.Session.Exercises {
			if strings.EqualFold(ex.Name, name) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the plan. The transformer mutates only the
// copy; the caller's plan stays pristine for audit and diffing.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Week = make(map[string]DaySchedule, len(p.Week))
	for day, sched := range p.Week {
		if sched.Session == nil {
			cp.Week[day] = DaySchedule{}
			continue
		}
		cp.Week[day] = WorkoutDay(cloneSession(*sched.Session))
	}
	cp.Notes = append([]string(nil), p.Notes...)
	cp.AdjustmentHistory = cloneRecords(p.AdjustmentHistory)
	cp.AppliedChanges = append([]AppliedChange(nil), p.AppliedChanges...)
	cp.SkippedChanges = append([]SkippedChange(nil), p.SkippedChanges...)
	if p.Archived != nil {
		cp.Archived = make(map[string]Session, len(p.Archived))
		for day, sess := range p.Archived {
			cp.Archived[day] = cloneSession(sess)
		}
	}
	return &cp
}

func cloneSession(s Session) Session {
	cp := s
	cp.Exercises = append([]Exercise(nil), s.Exercises...)
	cp.Notes = append([]string(nil), s.Notes...)
	return cp
}

func cloneRecords(records []AdjustmentRecord) []AdjustmentRecord {
	if records == nil {
		return nil
	}
	out := make([]AdjustmentRecord, len(records))
	for i, r := range records {
		out[i] = r
		out[i].DirectiveTypes = append([]DirectiveType(nil), r.DirectiveTypes...)
	}
	return out
}

// AdjustmentRecord summarizes one adjustment pass for the plan's history.
type AdjustmentRecord struct {
	ID             uuid.UUID       `json:"id"`
	Time           time.Time       `json:"time"`
	Summary        string          `json:"summary"`
	DirectiveTypes []DirectiveType `json:"directiveTypes,omitempty"`
	Applied        int             `json:"applied"`
	Skipped        int             `json:"skipped"`
}
