package model

import (
	"fmt"
	"strings"
)

// ExerciseType is the kind of exercise logged for a day.
type ExerciseType string

const (
	ExerciseNone  ExerciseType = "none"
	ExerciseWalk  ExerciseType = "walk"
	ExerciseGym   ExerciseType = "gym"
	ExerciseYoga  ExerciseType = "yoga"
	ExerciseOther ExerciseType = "other"
)

// ExerciseTypes lists every exercise type in display order.
var ExerciseTypes = []ExerciseType{ExerciseNone, ExerciseWalk, ExerciseGym, ExerciseYoga, ExerciseOther}

// SugarLevel is the coarse sugar intake for a day.
type SugarLevel string

const (
	SugarLow    SugarLevel = "low"
	SugarMedium SugarLevel = "medium"
	SugarHigh   SugarLevel = "high"
)

var SugarLevels = []SugarLevel{SugarLow, SugarMedium, SugarHigh}

// Alcohol records whether any alcohol was consumed.
type Alcohol string

const (
	AlcoholNone Alcohol = "none"
	AlcoholSome Alcohol = "some"
)

var AlcoholLevels = []Alcohol{AlcoholNone, AlcoholSome}

// EpisodeType classifies an illness episode.
type EpisodeType string

const (
	EpisodeCold    EpisodeType = "cold"
	EpisodeCough   EpisodeType = "cough"
	EpisodeFever   EpisodeType = "fever"
	EpisodeSinus   EpisodeType = "sinus"
	EpisodeAllergy EpisodeType = "allergy"
	EpisodeOther   EpisodeType = "other"
)

var EpisodeTypes = []EpisodeType{EpisodeCold, EpisodeCough, EpisodeFever, EpisodeSinus, EpisodeAllergy, EpisodeOther}

// MucusColor is informational only; no analytic reads it.
type MucusColor string

const (
	MucusNone   MucusColor = "none"
	MucusClear  MucusColor = "clear"
	MucusYellow MucusColor = "yellow"
	MucusGreen  MucusColor = "green"
)

var MucusColors = []MucusColor{MucusNone, MucusClear, MucusYellow, MucusGreen}

// WorstTime is the time of day symptoms peak.
type WorstTime string

const (
	WorstMorning WorstTime = "morning"
	WorstNight   WorstTime = "night"
	WorstAllDay  WorstTime = "all_day"
)

var WorstTimes = []WorstTime{WorstMorning, WorstNight, WorstAllDay}

// Symptom is one entry of the fixed symptom vocabulary.
type Symptom string

const (
	SymptomCough      Symptom = "cough"
	SymptomSoreThroat Symptom = "sore_throat"
	SymptomRunnyNose  Symptom = "runny_nose"
	SymptomSneezing   Symptom = "sneezing"
	SymptomFever      Symptom = "fever"
	SymptomFatigue    Symptom = "fatigue"
	SymptomBodyAches  Symptom = "body_aches"
	SymptomHeadache   Symptom = "headache"
)

// Symptoms is the closed vocabulary in canonical order.
var Symptoms = []Symptom{
	SymptomCough, SymptomSoreThroat, SymptomRunnyNose, SymptomSneezing,
	SymptomFever, SymptomFatigue, SymptomBodyAches, SymptomHeadache,
}

// Label returns a human readable name, e.g. "sore throat".
func (s Symptom) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func ParseExerciseType(s string) (ExerciseType, error) {
	return parseEnum(s, ExerciseTypes, "exercise type")
}

func ParseSugarLevel(s string) (SugarLevel, error) {
	return parseEnum(s, SugarLevels, "sugar level")
}

func ParseAlcohol(s string) (Alcohol, error) {
	return parseEnum(s, AlcoholLevels, "alcohol")
}

func ParseEpisodeType(s string) (EpisodeType, error) {
	return parseEnum(s, EpisodeTypes, "episode type")
}

func ParseMucusColor(s string) (MucusColor, error) {
	return parseEnum(s, MucusColors, "mucus color")
}

func ParseWorstTime(s string) (WorstTime, error) {
	return parseEnum(s, WorstTimes, "worst time")
}

func ParseSymptom(s string) (Symptom, error) {
	return parseEnum(s, Symptoms, "symptom")
}

// parseEnum accepts the canonical name case-insensitively, with spaces or dashes for underscores.
func parseEnum[T ~string](s string, valid []T, what string) (T, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, v := range valid {
		if string(v) == norm {
			return v, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (valid: %s)", what, s, strings.Join(names, ", "))
}

func isValid[T comparable](v T, valid []T) bool {
	for _, x := range valid {
		if x == v {
			return true
		}
	}
	return false
}
