// Package sample generates demo records for trying out insights.
package sample

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

// LogDays is how many days of logs Generate produces, ending today.
const LogDays = 30

// Data is a generated set of records.
type Data struct {
	Logs     []model.DailyLog
	Episodes []model.Episode
}

// Generate builds 30 days of logs and three episodes (one still active)
// relative to now. The same seed always yields the same data.
func Generate(now time.Time, seed int64) Data {
	rng := rand.New(rand.NewSource(seed))
	today := model.StartOfDay(now)

	var d Data
	for daysAgo := 0; daysAgo < LogDays; daysAgo++ {
		l := model.NewDailyLog(model.AddDays(today, -daysAgo))
		l.SleepHours = 5.5 + rng.Float64()*3
		l.SleepQuality = 2 + rng.Intn(4)
		l.Stress = 1 + rng.Intn(4)
		l.ExerciseMinutes = rng.Intn(61)
		l.ExerciseType = pick(rng, model.ExerciseTypes)
		l.SugarIntake = pick(rng, model.SugarLevels)
		l.Alcohol = pick(rng, model.AlcoholLevels)
		l.FruitsServings = rng.Intn(6)
		l.ProteinGrams = 40 + rng.Intn(81)
		if rng.Intn(2) == 0 {
			l.Supplements = []string{"Vitamin D3", "Multivitamin"}
		} else {
			l.Supplements = []string{"Vitamin B12"}
		}
		l.OfficeDay = rng.Intn(2) == 0
		l.SickContactExposure = daysAgo < 5 && rng.Intn(2) == 0
		l.HumidifierUsed = rng.Intn(2) == 0
		d.Logs = append(d.Logs, l)
	}

	cold := model.NewEpisode(model.AddDays(today, -20))
	cold.End = model.EndedOn(model.AddDays(today, -15))
	cold.Type = model.EpisodeCold
	cold.Symptoms = model.NewSymptomSet(model.SymptomCough, model.SymptomRunnyNose, model.SymptomSneezing, model.SymptomFatigue)
	cold.MucusColor = model.MucusClear
	cold.WorstTime = model.WorstMorning
	cold.Medications = []string{"Ibuprofen", "Cough syrup"}
	cold.Notes = "Mild cold, recovered quickly"

	sinus := model.NewEpisode(model.AddDays(today, -45))
	sinus.End = model.EndedOn(model.AddDays(today, -38))
	sinus.Type = model.EpisodeSinus
	sinus.Symptoms = model.NewSymptomSet(model.SymptomHeadache, model.SymptomFatigue, model.SymptomRunnyNose)
	sinus.MucusColor = model.MucusYellow
	sinus.Severity = 4
	sinus.WorstTime = model.WorstNight
	sinus.Medications = []string{"Decongestant", "Pain reliever"}
	sinus.DoctorVisit = true
	sinus.TestResults = "Acute sinusitis, antibiotics prescribed"
	sinus.Notes = "Took antibiotics for 7 days"

	cough := model.NewEpisode(model.AddDays(today, -3))
	cough.Type = model.EpisodeCough
	cough.Symptoms = model.NewSymptomSet(model.SymptomCough, model.SymptomSoreThroat)
	cough.Severity = 2
	cough.WorstTime = model.WorstNight
	cough.Medications = []string{"Cough drops"}
	cough.Notes = "Dry cough, still recovering"

	d.Episodes = []model.Episode{cold, sinus, cough}
	return d
}

// Load writes generated data into st.
func Load(ctx context.Context, st store.Store, d Data) error {
	for _, l := range d.Logs {
		if _, err := st.SaveLog(ctx, l); err != nil {
			return fmt.Errorf("save sample log %s: %w", model.FormatDay(l.Date), err)
		}
	}
	for _, e := range d.Episodes {
		if _, err := st.SaveEpisode(ctx, e); err != nil {
			return fmt.Errorf("save sample episode: %w", err)
		}
	}
	return nil
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
