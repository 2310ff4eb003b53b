package analytics

import "github.com/rcliao/sickday/internal/model"

// Stats is a descriptive snapshot of a set of daily logs.
type Stats struct {
	Days            int     `json:"days"`
	AvgSleepHours   float64 `json:"avg_sleep_hours"`
	AvgStress       float64 `json:"avg_stress"`
	OfficeDays      int     `json:"office_days"`
	SickContactDays int     `json:"sick_contact_days"`
	HumidifierDays  int     `json:"humidifier_days"`
}

// Snapshot aggregates logs. An empty input yields the zero Stats; callers
// must treat that as insufficient data rather than a result.
func Snapshot(logs []model.DailyLog) Stats {
	if len(logs) == 0 {
		return Stats{}
	}
	var st Stats
	var sleep float64
	var stress int
	for _, l := range logs {
		sleep += l.SleepHours
		stress += l.Stress
		if l.OfficeDay {
			st.OfficeDays++
		}
		if l.SickContactExposure {
			st.SickContactDays++
		}
		if l.HumidifierUsed {
			st.HumidifierDays++
		}
	}
	n := float64(len(logs))
	st.Days = len(logs)
	st.AvgSleepHours = sleep / n
	st.AvgStress = float64(stress) / n
	return st
}

// OfficeRate is the fraction of days that were office days.
func (s Stats) OfficeRate() float64 { return rate(s.OfficeDays, s.Days) }

// SickContactRate is the fraction of days with sick-contact exposure.
func (s Stats) SickContactRate() float64 { return rate(s.SickContactDays, s.Days) }

// HumidifierRate is the fraction of days the humidifier was used.
func (s Stats) HumidifierRate() float64 { return rate(s.HumidifierDays, s.Days) }

func rate(n, days int) float64 {
	if days == 0 {
		return 0
	}
	return float64(n) / float64(days)
}
