package analytics

import (
	"sort"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// CurrentStreak counts consecutive logged days walking back from the day of
// today. Logs dated after today and repeated dates are skipped, so each day
// counts at most once. Returns 0 when today has no log.
func CurrentStreak(logs []model.DailyLog, today time.Time) int {
	days := sortedDaysDesc(logs)
	expected := model.StartOfDay(today)
	streak := 0
	for _, d := range days {
		if d.After(expected) {
			continue
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = model.AddDays(expected, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive logged days in the history.
func LongestStreak(logs []model.DailyLog) int {
	days := sortedDaysDesc(logs)
	longest, run := 0, 0
	var prev time.Time
	for i, d := range days {
		switch {
		case i > 0 && d.Equal(prev):
			continue
		case i > 0 && model.DaysBetween(d, prev) == 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return longest
}

func sortedDaysDesc(logs []model.DailyLog) []time.Time {
	days := make([]time.Time, len(logs))
	for i, l := range logs {
		days[i] = model.StartOfDay(l.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
