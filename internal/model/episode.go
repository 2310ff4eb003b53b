package model

import (
	"encoding/json"
	"sort"
	"time"
)

// End is an episode's resolution: either ongoing or ended on a calendar day.
// The zero value is Ongoing.
type End struct {
	day   time.Time
	ended bool
}

// Ongoing returns the End of an episode that has not resolved yet.
func Ongoing() End { return End{} }

// EndedOn returns the End of an episode that resolved on day.
func EndedOn(day time.Time) End {
	return End{day: StartOfDay(day), ended: true}
}

// Date returns the end day and true, or the zero time and false while ongoing.
func (e End) Date() (time.Time, bool) {
	return e.day, e.ended
}

// IsOngoing reports whether the episode is still active.
func (e End) IsOngoing() bool { return !e.ended }

func (e End) MarshalJSON() ([]byte, error) {
	if !e.ended {
		return []byte("null"), nil
	}
	return json.Marshal(e.day)
}

func (e *End) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = Ongoing()
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	*e = EndedOn(t)
	return nil
}

// SymptomSet is a duplicate-free set of symptoms kept in canonical vocabulary order.
type SymptomSet []Symptom

// NewSymptomSet dedups and orders the given symptoms.
func NewSymptomSet(symptoms ...Symptom) SymptomSet {
	seen := make(map[Symptom]bool, len(symptoms))
	for _, s := range symptoms {
		seen[s] = true
	}
	set := make(SymptomSet, 0, len(seen))
	for _, s := range Symptoms {
		if seen[s] {
			set = append(set, s)
		}
	}
	return set
}

// Has reports whether s is in the set.
func (ss SymptomSet) Has(s Symptom) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func (ss *SymptomSet) UnmarshalJSON(b []byte) error {
	var raw []Symptom
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*ss = NewSymptomSet(raw...)
	return nil
}

// Episode is a contiguous, possibly still ongoing, illness period.
type Episode struct {
	ID          string      `json:"id"`
	StartDate   time.Time   `json:"start_date"`
	End         End         `json:"end_date"`
	Type        EpisodeType `json:"type"`
	Severity    int         `json:"severity"`
	Symptoms    SymptomSet  `json:"symptoms"`
	WorstTime   WorstTime   `json:"worst_time"`
	MucusColor  MucusColor  `json:"mucus_color"`
	Medications []string    `json:"medications,omitempty"`
	DoctorVisit bool        `json:"doctor_visit"`
	TestResults string      `json:"test_results,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewEpisode returns an ongoing episode starting on start with the original app's defaults.
func NewEpisode(start time.Time) Episode {
	return Episode{
		StartDate:  StartOfDay(start),
		End:        Ongoing(),
		Type:       EpisodeCold,
		Severity:   3,
		Symptoms:   SymptomSet{},
		WorstTime:  WorstAllDay,
		MucusColor: MucusNone,
	}
}

// IsActive reports whether the episode has no end date.
func (e Episode) IsActive() bool { return e.End.IsOngoing() }

// Duration returns the whole days from start to end, or false while active.
func (e Episode) Duration() (int, bool) {
	end, ok := e.End.Date()
	if !ok {
		return 0, false
	}
	return DaysBetween(e.StartDate, end), true
}

// EffectiveEnd is the end day, or the day of now while the episode is ongoing.
// An active episode dated in the future therefore ends before it starts.
func (e Episode) EffectiveEnd(now time.Time) time.Time {
	if end, ok := e.End.Date(); ok {
		return end
	}
	return StartOfDay(now)
}

// Validate checks field ranges and date ordering.
func (e Episode) Validate() error {
	var v ValidationError
	if e.StartDate.IsZero() {
		v.add("start_date", "is required")
	}
	if end, ok := e.End.Date(); ok && StartOfDay(end).Before(StartOfDay(e.StartDate)) {
		v.add("end_date", "must not be before start_date")
	}
	if !isValid(e.Type, EpisodeTypes) {
		v.add("type", "unknown episode type %q", e.Type)
	}
	if e.Severity < 1 || e.Severity > 5 {
		v.add("severity", "must be 1-5, got %d", e.Severity)
	}
	for _, s := range e.Symptoms {
		if !isValid(s, Symptoms) {
			v.add("symptoms", "unknown symptom %q", s)
		}
	}
	if !isValid(e.WorstTime, WorstTimes) {
		v.add("worst_time", "unknown worst time %q", e.WorstTime)
	}
	if !isValid(e.MucusColor, MucusColors) {
		v.add("mucus_color", "unknown mucus color %q", e.MucusColor)
	}
	return v.err()
}

// SortEpisodes orders episodes by start day, newest first.
func SortEpisodes(eps []Episode) {
	sort.SliceStable(eps, func(i, j int) bool {
		return eps[i].StartDate.After(eps[j].StartDate)
	})
}
