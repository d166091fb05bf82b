package models

import "strings"

// Fitness levels, lowest to highest.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// UserProfile carries the user data the validator consults: training goals,
// medical conditions, and scheduling preference.
type UserProfile struct {
	UserID            string   `json:"userId"`
	FitnessLevel      string   `json:"fitnessLevel"`
	Goals             []string `json:"goals,omitempty"`
	MedicalConditions []string `json:"medicalConditions,omitempty"`
	DaysPerWeek       int      `json:"daysPerWeek,omitempty"`
}

// HasGoal reports whether the profile lists a goal containing the given
// keyword (case-insensitive substring match, so "muscle gain" matches
// "gain muscle mass").
func (p UserProfile) HasGoal(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, g := range p.Goals {
		if strings.Contains(strings.ToLower(g), keyword) {
			return true
		}
	}
	return false
}
