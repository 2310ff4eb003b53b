package analytics

import (
	"sort"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

const (
	DefaultPreWindowDays = 7
	DefaultBaselineDays  = 60
)

// Windows sets the lengths of the analysis windows, in days.
type Windows struct {
	PreWindowDays int `json:"pre_window_days" yaml:"pre_window_days"`
	BaselineDays  int `json:"baseline_days" yaml:"baseline_days"`
}

// DefaultWindows compares the 7 days before onset against the last 60 days.
var DefaultWindows = Windows{PreWindowDays: DefaultPreWindowDays, BaselineDays: DefaultBaselineDays}

// Trigger pairs the pre-episode snapshot with the healthy baseline. It is
// descriptive only; deltas and their meaning are left to the caller.
type Trigger struct {
	EpisodeID  string `json:"episode_id"`
	PreEpisode Stats  `json:"pre_episode"`
	Baseline   Stats  `json:"baseline"`
}

// TriggerAnalysis runs Windows.TriggerAnalysis with DefaultWindows.
func TriggerAnalysis(ep model.Episode, logs []model.DailyLog, episodes []model.Episode, now time.Time) (*Trigger, bool) {
	return DefaultWindows.TriggerAnalysis(ep, logs, episodes, now)
}

// TriggerAnalysis compares the logs in [start-PreWindowDays, start] against
// the logs in [today-BaselineDays, today] minus every episode's
// [start-PreWindowDays, effective end] range. It returns false when either
// window has no logs.
func (w Windows) TriggerAnalysis(ep model.Episode, logs []model.DailyLog, episodes []model.Episode, now time.Time) (*Trigger, bool) {
	pre := w.PreEpisodeLogs(ep, logs)
	if len(pre) == 0 {
		return nil, false
	}
	base := w.BaselineLogs(ep, logs, episodes, now)
	if len(base) == 0 {
		return nil, false
	}
	return &Trigger{
		EpisodeID:  ep.ID,
		PreEpisode: Snapshot(pre),
		Baseline:   Snapshot(base),
	}, true
}

// PreEpisodeLogs returns the logs dated within the closed pre-episode window.
func (w Windows) PreEpisodeLogs(ep model.Episode, logs []model.DailyLog) []model.DailyLog {
	start := model.StartOfDay(ep.StartDate)
	r := dayRange{from: model.AddDays(start, -w.PreWindowDays), to: start}
	var out []model.DailyLog
	for _, l := range logs {
		if r.contains(model.StartOfDay(l.Date)) {
			out = append(out, l)
		}
	}
	return out
}

// BaselineLogs returns the logs of the last BaselineDays days that fall
// outside every episode's lead-in-through-resolution range. ep is excluded
// even when it is not part of episodes.
func (w Windows) BaselineLogs(ep model.Episode, logs []model.DailyLog, episodes []model.Episode, now time.Time) []model.DailyLog {
	today := model.StartOfDay(now)
	window := dayRange{from: model.AddDays(today, -w.BaselineDays), to: today}

	ranges := make([]dayRange, 0, len(episodes)+1)
	seen := false
	for _, e := range episodes {
		if ep.ID != "" && e.ID == ep.ID {
			seen = true
		}
		ranges = append(ranges, w.exclusion(e, now))
	}
	if !seen {
		ranges = append(ranges, w.exclusion(ep, now))
	}
	excluded := mergeRanges(ranges)

	var out []model.DailyLog
	for _, l := range logs {
		d := model.StartOfDay(l.Date)
		if window.contains(d) && !excluded.contains(d) {
			out = append(out, l)
		}
	}
	return out
}

// exclusion covers an episode and its lead-in. The end is never before the
// start, so a future-dated active episode still excludes its own days.
func (w Windows) exclusion(e model.Episode, now time.Time) dayRange {
	start := model.StartOfDay(e.StartDate)
	end := e.EffectiveEnd(now)
	if end.Before(start) {
		end = start
	}
	return dayRange{
		from: model.AddDays(start, -w.PreWindowDays),
		to:   end,
	}
}

// dayRange is a closed range of calendar days.
type dayRange struct {
	from, to time.Time
}

func (r dayRange) contains(day time.Time) bool {
	return !day.Before(r.from) && !day.After(r.to)
}

// rangeSet is a sorted list of disjoint, non-adjacent day ranges.
type rangeSet []dayRange

// mergeRanges unions ranges, joining any that overlap or touch day to day.
func mergeRanges(ranges []dayRange) rangeSet {
	if len(ranges) == 0 {
		return nil
	}
	sorted := append([]dayRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].from.Before(sorted[j].from) })

	out := rangeSet{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if !r.from.After(model.AddDays(last.to, 1)) {
			if r.to.After(last.to) {
				last.to = r.to
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func (rs rangeSet) contains(day time.Time) bool {
	i := sort.Search(len(rs), func(i int) bool { return !rs[i].to.Before(day) })
	return i < len(rs) && rs[i].contains(day)
}
