// Package model defines the health tracker's record types.
package model

import "time"

// DailyLog holds one calendar day's wellness metrics. At most one exists per day.
type DailyLog struct {
	ID                  string       `json:"id"`
	Date                time.Time    `json:"date"`
	SleepHours          float64      `json:"sleep_hours"`
	SleepQuality        int          `json:"sleep_quality"`
	Stress              int          `json:"stress"`
	ExerciseMinutes     int          `json:"exercise_minutes"`
	ExerciseType        ExerciseType `json:"exercise_type"`
	SugarIntake         SugarLevel   `json:"sugar_intake"`
	Alcohol             Alcohol      `json:"alcohol"`
	FruitsServings      int          `json:"fruits_servings"`
	ProteinGrams        int          `json:"protein_grams"`
	Supplements         []string     `json:"supplements,omitempty"`
	OfficeDay           bool         `json:"office_day"`
	SickContactExposure bool         `json:"sick_contact_exposure"`
	HumidifierUsed      bool         `json:"humidifier_used"`
	Notes               string       `json:"notes,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// NewDailyLog returns a log for the given day with the original app's defaults.
func NewDailyLog(day time.Time) DailyLog {
	return DailyLog{
		Date:         StartOfDay(day),
		SleepHours:   7,
		SleepQuality: 3,
		Stress:       3,
		ExerciseType: ExerciseNone,
		SugarIntake:  SugarLow,
		Alcohol:      AlcoholNone,
	}
}

// Validate checks every metric against its allowed range.
func (l DailyLog) Validate() error {
	var v ValidationError
	if l.Date.IsZero() {
		v.add("date", "is required")
	}
	if l.SleepHours < 0 || l.SleepHours > 12 {
		v.add("sleep_hours", "must be 0-12, got %g", l.SleepHours)
	}
	if l.SleepQuality < 1 || l.SleepQuality > 5 {
		v.add("sleep_quality", "must be 1-5, got %d", l.SleepQuality)
	}
	if l.Stress < 1 || l.Stress > 5 {
		v.add("stress", "must be 1-5, got %d", l.Stress)
	}
	if l.ExerciseMinutes < 0 || l.ExerciseMinutes > 300 {
		v.add("exercise_minutes", "must be 0-300, got %d", l.ExerciseMinutes)
	}
	if !isValid(l.ExerciseType, ExerciseTypes) {
		v.add("exercise_type", "unknown exercise type %q", l.ExerciseType)
	}
	if !isValid(l.SugarIntake, SugarLevels) {
		v.add("sugar_intake", "unknown sugar level %q", l.SugarIntake)
	}
	if !isValid(l.Alcohol, AlcoholLevels) {
		v.add("alcohol", "unknown alcohol value %q", l.Alcohol)
	}
	if l.FruitsServings < 0 || l.FruitsServings > 10 {
		v.add("fruits_servings", "must be 0-10, got %d", l.FruitsServings)
	}
	if l.ProteinGrams < 0 || l.ProteinGrams > 200 {
		v.add("protein_grams", "must be 0-200, got %d", l.ProteinGrams)
	}
	return v.err()
}
