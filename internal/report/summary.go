package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/sickday/internal/analytics"
	"github.com/rcliao/sickday/internal/model"
)

const disclaimer = "This report is for informational purposes only and does not constitute medical advice. " +
	"Please consult with a healthcare provider for medical concerns."

const (
	maxReportEpisodes = 10
	maxReportSymptoms = 8
)

// WriteSummary renders a plain-text health summary suitable for sharing.
func WriteSummary(w io.Writer, s analytics.Summary) error {
	p := &printer{w: w}

	p.line("SickDay Tracker - %d Day Summary", s.SummaryDays)
	p.line("Generated: %s", s.GeneratedAt.Format("Jan 2, 2006"))
	p.blank()

	p.section("Disclaimer")
	p.line("%s", disclaimer)
	p.blank()

	p.section(fmt.Sprintf("Episodes (Last %d Days)", s.SummaryDays))
	if len(s.RecentEpisodes) == 0 {
		p.line("No episodes in the last %d days", s.SummaryDays)
	}
	for i, e := range s.RecentEpisodes {
		if i == maxReportEpisodes {
			p.line("... and %d more", len(s.RecentEpisodes)-maxReportEpisodes)
			break
		}
		end, duration := "Present", "Active"
		if d, ok := e.End.Date(); ok {
			end = model.FormatDay(d)
			days, _ := e.Duration()
			duration = fmt.Sprintf("%d days", days)
		}
		p.line("* %s - %s to %s (%s)", e.Type, model.FormatDay(e.StartDate), end, duration)
		if len(e.Symptoms) > 0 {
			labels := make([]string, len(e.Symptoms))
			for i, sym := range e.Symptoms {
				labels[i] = sym.Label()
			}
			p.line("  Symptoms: %s", strings.Join(labels, ", "))
		}
		p.line("  Severity: %s", strings.Repeat("*", e.Severity))
	}
	p.blank()

	p.section("Symptom Summary")
	if len(s.Symptoms) == 0 {
		p.line("No symptom data available")
	}
	for i, sc := range s.Symptoms {
		if i == maxReportSymptoms {
			break
		}
		p.line("* %s: %d times", sc.Symptom.Label(), sc.Count)
	}
	p.blank()

	p.section(fmt.Sprintf("Health Averages (Last %d Days)", s.SummaryDays))
	if s.Health == nil {
		p.line("No daily log data available")
	} else {
		h := s.Health
		p.line("* Average Sleep: %.1f hours", h.AvgSleepHours)
		p.line("* Average Stress: %.1f/5", h.AvgStress)
		p.line("* Average Exercise: %.0f minutes", h.AvgExerciseMinutes)
		p.blank()
		p.line("Sugar Intake Distribution:")
		for _, lvl := range model.SugarLevels {
			p.line("  %s: %d days", lvl, h.Sugar[lvl])
		}
	}

	return p.err
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() { p.line("") }

func (p *printer) section(title string) {
	p.line("%s", title)
	p.line("%s", strings.Repeat("-", len(title)))
}
