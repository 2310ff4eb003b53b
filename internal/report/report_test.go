package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/sickday/internal/analytics"
	"github.com/rcliao/sickday/internal/model"
)

var now = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return model.AddDays(model.StartOfDay(now), n)
}

func TestWriteLogsCSV(t *testing.T) {
	a := model.NewDailyLog(day(0))
	a.OfficeDay = true
	a.Notes = `said "hi", left early`
	b := model.NewDailyLog(day(-1))
	b.SleepHours = 6.25

	var buf bytes.Buffer
	require.NoError(t, WriteLogsCSV(&buf, []model.DailyLog{a, b}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, logHeader, records[0])
	assert.Equal(t, "2026-03-31", records[1][0])
	assert.Equal(t, "6.25", records[1][1])
	assert.Equal(t, "Yes", records[2][8])
	assert.Equal(t, `said "hi", left early`, records[2][11])
}

func TestWriteEpisodesCSV(t *testing.T) {
	done := model.NewEpisode(day(-10))
	done.End = model.EndedOn(day(-5))
	done.Symptoms = model.NewSymptomSet(model.SymptomRunnyNose, model.SymptomCough)
	done.Medications = []string{"Ibuprofen", "Cough syrup"}
	act := model.NewEpisode(day(-1))

	var buf bytes.Buffer
	require.NoError(t, WriteEpisodesCSV(&buf, []model.Episode{act, done}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "5 days", records[1][3])
	assert.Equal(t, "cough; runny nose", records[1][5])
	assert.Equal(t, "Ibuprofen; Cough syrup", records[1][8])
	assert.Equal(t, "Active", records[2][1])
	assert.Equal(t, "Active", records[2][3])
}

func TestWriteSummary(t *testing.T) {
	ep := model.NewEpisode(day(-20))
	ep.End = model.EndedOn(day(-15))
	ep.Severity = 4
	ep.Symptoms = model.NewSymptomSet(model.SymptomFatigue)
	var logs []model.DailyLog
	for n := -9; n <= 0; n++ {
		logs = append(logs, model.NewDailyLog(day(n)))
	}

	s := analytics.Summarize(logs, []model.Episode{ep}, 90, now)
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "90 Day Summary")
	assert.Contains(t, out, "Disclaimer")
	assert.Contains(t, out, "cold - 2026-03-12 to 2026-03-17 (5 days)")
	assert.Contains(t, out, "Severity: ****\n")
	assert.Contains(t, out, "fatigue: 1 times")
	assert.Contains(t, out, "Average Sleep: 7.0 hours")
	assert.Contains(t, out, "low: 10 days")
}

func TestWriteSummaryEmpty(t *testing.T) {
	s := analytics.Summarize(nil, nil, 90, now)
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "No episodes in the last 90 days")
	assert.Contains(t, out, "No symptom data available")
	assert.Contains(t, out, "No daily log data available")
	assert.False(t, strings.Contains(out, "Sugar Intake"))
}
