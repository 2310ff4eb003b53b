// Package report renders records and insights for export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rcliao/sickday/internal/model"
)

var logHeader = []string{
	"Date", "Sleep Hours", "Sleep Quality", "Stress", "Exercise Minutes", "Exercise Type",
	"Sugar", "Alcohol", "Office Day", "Sick Contact", "Humidifier", "Notes",
}

var episodeHeader = []string{
	"Start Date", "End Date", "Type", "Duration", "Severity", "Symptoms",
	"Mucus Color", "Worst Time", "Medications", "Doctor Visit", "Test Results", "Notes",
}

// WriteLogsCSV writes daily logs oldest first.
func WriteLogsCSV(w io.Writer, logs []model.DailyLog) error {
	sorted := append([]model.DailyLog(nil), logs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	cw := csv.NewWriter(w)
	if err := cw.Write(logHeader); err != nil {
		return err
	}
	for _, l := range sorted {
		row := []string{
			model.FormatDay(l.Date),
			strconv.FormatFloat(l.SleepHours, 'f', 2, 64),
			strconv.Itoa(l.SleepQuality),
			strconv.Itoa(l.Stress),
			strconv.Itoa(l.ExerciseMinutes),
			string(l.ExerciseType),
			string(l.SugarIntake),
			string(l.Alcohol),
			yesNo(l.OfficeDay),
			yesNo(l.SickContactExposure),
			yesNo(l.HumidifierUsed),
			l.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write log %s: %w", model.FormatDay(l.Date), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEpisodesCSV writes episodes oldest first.
func WriteEpisodesCSV(w io.Writer, episodes []model.Episode) error {
	sorted := append([]model.Episode(nil), episodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartDate.Before(sorted[j].StartDate) })

	cw := csv.NewWriter(w)
	if err := cw.Write(episodeHeader); err != nil {
		return err
	}
	for _, e := range sorted {
		end, duration := "Active", "Active"
		if d, ok := e.End.Date(); ok {
			end = model.FormatDay(d)
			days, _ := e.Duration()
			duration = fmt.Sprintf("%d days", days)
		}
		symptoms := make([]string, len(e.Symptoms))
		for i, s := range e.Symptoms {
			symptoms[i] = s.Label()
		}
		row := []string{
			model.FormatDay(e.StartDate),
			end,
			string(e.Type),
			duration,
			strconv.Itoa(e.Severity),
			strings.Join(symptoms, "; "),
			string(e.MucusColor),
			string(e.WorstTime),
			strings.Join(e.Medications, "; "),
			yesNo(e.DoctorVisit),
			e.TestResults,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write episode %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
