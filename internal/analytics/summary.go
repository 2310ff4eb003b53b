package analytics

import (
	"sort"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// DefaultSummaryDays is the look-back of the health averages section.
const DefaultSummaryDays = 90

// EpisodeCount counts episodes that started within the last days days.
func EpisodeCount(episodes []model.Episode, days int, now time.Time) int {
	since := model.AddDays(model.StartOfDay(now), -days)
	n := 0
	for _, e := range episodes {
		if !model.StartOfDay(e.StartDate).Before(since) {
			n++
		}
	}
	return n
}

// AverageDuration is the mean duration in days of completed episodes.
// Active episodes are left out entirely. Returns false when none completed.
func AverageDuration(episodes []model.Episode) (float64, bool) {
	total, n := 0, 0
	for _, e := range episodes {
		if d, ok := e.Duration(); ok {
			total += d
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}

// SymptomCount is how many episodes reported a symptom.
type SymptomCount struct {
	Symptom model.Symptom `json:"symptom"`
	Count   int           `json:"count"`
}

// SymptomFrequency counts symptoms across episodes, most frequent first.
// Ties keep vocabulary order.
func SymptomFrequency(episodes []model.Episode) []SymptomCount {
	counts := make(map[model.Symptom]int)
	for _, e := range episodes {
		for _, s := range e.Symptoms {
			counts[s]++
		}
	}
	out := make([]SymptomCount, 0, len(counts))
	for _, s := range model.Symptoms {
		if c := counts[s]; c > 0 {
			out = append(out, SymptomCount{Symptom: s, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// HealthAverages summarizes recent daily logs.
type HealthAverages struct {
	Days               int                      `json:"days"`
	AvgSleepHours      float64                  `json:"avg_sleep_hours"`
	AvgStress          float64                  `json:"avg_stress"`
	AvgExerciseMinutes float64                  `json:"avg_exercise_minutes"`
	Sugar              map[model.SugarLevel]int `json:"sugar"`
}

// RecentAverages averages the logs dated within the last days days. Returns
// false when there are none.
func RecentAverages(logs []model.DailyLog, days int, now time.Time) (*HealthAverages, bool) {
	since := model.AddDays(model.StartOfDay(now), -days)
	var recent []model.DailyLog
	for _, l := range logs {
		if !model.StartOfDay(l.Date).Before(since) {
			recent = append(recent, l)
		}
	}
	if len(recent) == 0 {
		return nil, false
	}

	st := Snapshot(recent)
	avg := &HealthAverages{
		Days:          st.Days,
		AvgSleepHours: st.AvgSleepHours,
		AvgStress:     st.AvgStress,
		Sugar:         make(map[model.SugarLevel]int, len(model.SugarLevels)),
	}
	for _, lvl := range model.SugarLevels {
		avg.Sugar[lvl] = 0
	}
	exercise := 0
	for _, l := range recent {
		exercise += l.ExerciseMinutes
		avg.Sugar[l.SugarIntake]++
	}
	avg.AvgExerciseMinutes = float64(exercise) / float64(len(recent))
	return avg, true
}

// ActiveEpisode returns the most recently started ongoing episode.
func ActiveEpisode(episodes []model.Episode) (*model.Episode, bool) {
	var found *model.Episode
	for i := range episodes {
		e := episodes[i]
		if !e.IsActive() {
			continue
		}
		if found == nil || e.StartDate.After(found.StartDate) {
			found = &e
		}
	}
	return found, found != nil
}

// Summary is the insights overview.
type Summary struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	Episodes30d     int             `json:"episodes_30d"`
	Episodes90d     int             `json:"episodes_90d"`
	Episodes365d    int             `json:"episodes_365d"`
	AverageDuration *float64        `json:"average_duration_days,omitempty"`
	Symptoms        []SymptomCount  `json:"symptoms"`
	Health          *HealthAverages `json:"health,omitempty"`
	ActiveEpisode   *model.Episode  `json:"active_episode,omitempty"`
	CurrentStreak   int             `json:"current_streak"`
	LongestStreak   int             `json:"longest_streak"`
	SummaryDays     int             `json:"summary_days"`
	RecentEpisodes  []model.Episode `json:"recent_episodes"`
}

// Summarize builds the insights overview. Health averages and recent
// episodes cover the last summaryDays days.
func Summarize(logs []model.DailyLog, episodes []model.Episode, summaryDays int, now time.Time) Summary {
	if summaryDays <= 0 {
		summaryDays = DefaultSummaryDays
	}
	s := Summary{
		GeneratedAt:   now,
		Episodes30d:   EpisodeCount(episodes, 30, now),
		Episodes90d:   EpisodeCount(episodes, 90, now),
		Episodes365d:  EpisodeCount(episodes, 365, now),
		Symptoms:      SymptomFrequency(episodes),
		CurrentStreak: CurrentStreak(logs, now),
		LongestStreak: LongestStreak(logs),
		SummaryDays:   summaryDays,
	}
	if avg, ok := AverageDuration(episodes); ok {
		s.AverageDuration = &avg
	}
	if h, ok := RecentAverages(logs, summaryDays, now); ok {
		s.Health = h
	}
	if a, ok := ActiveEpisode(episodes); ok {
		s.ActiveEpisode = a
	}

	since := model.AddDays(model.StartOfDay(now), -summaryDays)
	s.RecentEpisodes = []model.Episode{}
	for _, e := range episodes {
		if !model.StartOfDay(e.StartDate).Before(since) {
			s.RecentEpisodes = append(s.RecentEpisodes, e)
		}
	}
	model.SortEpisodes(s.RecentEpisodes)
	return s
}
