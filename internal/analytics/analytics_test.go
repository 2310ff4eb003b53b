package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/sickday/internal/model"
)

var now = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func day(n int) time.Time {
	return model.AddDays(model.StartOfDay(now), n)
}

func ended(id string, start, end int) model.Episode {
	ep := model.NewEpisode(day(start))
	ep.ID = id
	ep.End = model.EndedOn(day(end))
	return ep
}

func active(id string, start int) model.Episode {
	ep := model.NewEpisode(day(start))
	ep.ID = id
	return ep
}

func logOn(n int) model.DailyLog {
	l := model.NewDailyLog(day(n))
	l.ID = model.FormatDay(day(n))
	return l
}

func logsBetween(from, to int) []model.DailyLog {
	var logs []model.DailyLog
	for n := from; n <= to; n++ {
		logs = append(logs, logOn(n))
	}
	return logs
}

func ids(eps []model.Episode) []string {
	out := make([]string, 0, len(eps))
	for _, e := range eps {
		out = append(out, e.ID)
	}
	return out
}

func TestDetectOverlapsTouchingBoundary(t *testing.T) {
	a := ended("a", -30, -25)
	b := ended("b", -25, -20)

	assert.Equal(t, []string{"b"}, ids(DetectOverlaps(a, []model.Episode{a, b}, now)))
	assert.Equal(t, []string{"a"}, ids(DetectOverlaps(b, []model.Episode{a, b}, now)))
}

func TestDetectOverlapsDisjoint(t *testing.T) {
	a := ended("a", -30, -25)
	b := ended("b", -24, -20)

	assert.Empty(t, DetectOverlaps(a, []model.Episode{a, b}, now))
	assert.Empty(t, DetectOverlaps(b, []model.Episode{a, b}, now))
}

func TestDetectOverlapsActiveEpisodes(t *testing.T) {
	a := active("a", -5)
	b := active("b", -3)

	assert.Equal(t, []string{"b"}, ids(DetectOverlaps(a, []model.Episode{a, b}, now)))
	assert.Equal(t, []string{"a"}, ids(DetectOverlaps(b, []model.Episode{a, b}, now)))
}

func TestDetectOverlapsActiveExtendsToNow(t *testing.T) {
	old := active("old", -40)
	recent := ended("recent", -2, -1)
	assert.Equal(t, []string{"recent"}, ids(DetectOverlaps(old, []model.Episode{old, recent}, now)))
}

func TestOverlapsFutureActiveEndsToday(t *testing.T) {
	// Starts in five days but is still open, so it ends today.
	future := active("f", 5)
	later := ended("o", 3, 10)
	assert.False(t, Overlaps(future, later, now))
	assert.False(t, Overlaps(later, future, now))

	// An episode spanning both today and the future start still overlaps.
	assert.True(t, Overlaps(future, ended("p", -3, 7), now))
}

func TestDetectOverlapsUnsavedCandidate(t *testing.T) {
	stored := ended("s", -10, -6)
	candidate := model.NewEpisode(day(-6))
	candidate.End = model.EndedOn(day(-4))

	assert.Equal(t, []string{"s"}, ids(DetectOverlaps(candidate, []model.Episode{stored}, now)))
}

func TestDetectOverlapsSymmetric(t *testing.T) {
	eps := []model.Episode{
		ended("a", -50, -45),
		ended("b", -45, -40),
		ended("c", -39, -30),
		active("d", -35),
		ended("e", -60, -52),
		active("f", -1),
		ended("g", -3, -3),
	}
	for _, x := range eps {
		assert.Empty(t, DetectOverlaps(x, []model.Episode{x}, now), "episode %s overlaps itself", x.ID)
		for _, y := range eps {
			if x.ID == y.ID {
				continue
			}
			assert.Equal(t, Overlaps(x, y, now), Overlaps(y, x, now), "%s vs %s", x.ID, y.ID)
		}
	}
}

func TestCurrentStreak(t *testing.T) {
	logs := []model.DailyLog{logOn(0), logOn(-1), logOn(-2), logOn(-4), logOn(-5)}
	assert.Equal(t, 3, CurrentStreak(logs, now))
}

func TestCurrentStreakNoLogToday(t *testing.T) {
	logs := []model.DailyLog{logOn(-1), logOn(-2)}
	assert.Equal(t, 0, CurrentStreak(logs, now))
	assert.Equal(t, 0, CurrentStreak(nil, now))
}

func TestCurrentStreakIgnoresFutureAndDuplicates(t *testing.T) {
	dup := logOn(-1)
	dup.Date = dup.Date.Add(9 * time.Hour)
	logs := []model.DailyLog{logOn(-2), logOn(1), logOn(-1), dup, logOn(0)}
	assert.Equal(t, 3, CurrentStreak(logs, now))
}

func TestLongestStreak(t *testing.T) {
	logs := append(logsBetween(-20, -15), logOn(-10), logOn(-1), logOn(0))
	assert.Equal(t, 6, LongestStreak(logs))
	assert.Equal(t, 0, LongestStreak(nil))
}

func TestSnapshot(t *testing.T) {
	a := logOn(-1)
	a.SleepHours, a.Stress, a.OfficeDay = 6, 4, true
	b := logOn(-2)
	b.SleepHours, b.Stress, b.HumidifierUsed, b.SickContactExposure = 8, 2, true, true

	st := Snapshot([]model.DailyLog{a, b})
	assert.Equal(t, 2, st.Days)
	assert.InDelta(t, 7.0, st.AvgSleepHours, 1e-9)
	assert.InDelta(t, 3.0, st.AvgStress, 1e-9)
	assert.Equal(t, 1, st.OfficeDays)
	assert.Equal(t, 1, st.SickContactDays)
	assert.Equal(t, 1, st.HumidifierDays)
	assert.InDelta(t, 0.5, st.OfficeRate(), 1e-9)

	assert.Equal(t, Stats{}, Snapshot(nil))
}

func TestTriggerAnalysisPreEpisodeOfficeDays(t *testing.T) {
	ep := ended("ep", -10, -8)
	var logs []model.DailyLog
	for n := -17; n <= -11; n++ {
		l := logOn(n)
		l.OfficeDay = true
		logs = append(logs, l)
	}
	logs = append(logs, logsBetween(-60, -30)...)

	tr, ok := TriggerAnalysis(ep, logs, []model.Episode{ep}, now)
	require.True(t, ok)
	assert.Equal(t, 7, tr.PreEpisode.OfficeDays)
	assert.Equal(t, 7, tr.PreEpisode.Days)
	assert.Equal(t, "ep", tr.EpisodeID)
}

func TestTriggerAnalysisPreWindowIsClosed(t *testing.T) {
	ep := ended("ep", -10, -8)
	logs := append(logsBetween(-18, -9), logsBetween(-50, -40)...)

	pre := DefaultWindows.PreEpisodeLogs(ep, logs)
	require.Len(t, pre, 8)
	assert.Equal(t, day(-17), pre[0].Date)
	assert.Equal(t, day(-10), pre[len(pre)-1].Date)
}

func TestBaselineExcludesEpisodeLeadIn(t *testing.T) {
	ep := ended("ep", -20, -15)
	logs := logsBetween(-60, 0)

	base := DefaultWindows.BaselineLogs(ep, logs, []model.Episode{ep}, now)
	for _, l := range base {
		d := l.Date
		if !d.Before(day(-27)) && !d.After(day(-15)) {
			t.Fatalf("baseline contains excluded day %s", model.FormatDay(d))
		}
	}
	// 61 days in the window, 13 excluded.
	assert.Len(t, base, 48)
}

func TestBaselineExcludesUnionOfEpisodes(t *testing.T) {
	a := ended("a", -40, -35)
	b := ended("b", -38, -30)
	c := active("c", -2)
	logs := logsBetween(-70, 0)

	base := DefaultWindows.BaselineLogs(c, logs, []model.Episode{a, b, c}, now)
	for _, l := range base {
		d := l.Date
		assert.True(t, d.Before(day(-47)) || (d.After(day(-30)) && d.Before(day(-9))),
			"unexpected baseline day %s", model.FormatDay(d))
	}
	// [-60,-48] is 13 days and [-29,-10] is 20 days.
	assert.Len(t, base, 33)
}

func TestBaselineExcludesQueriedEpisodeWhenNotStored(t *testing.T) {
	candidate := model.NewEpisode(day(-5))
	logs := logsBetween(-20, 0)

	base := DefaultWindows.BaselineLogs(candidate, logs, nil, now)
	for _, l := range base {
		assert.True(t, l.Date.Before(day(-12)))
	}
	assert.Len(t, base, 8)
}

func TestBaselineWithFutureActiveEpisode(t *testing.T) {
	future := active("f", 3)
	past := ended("p", -30, -25)
	logs := logsBetween(-40, 0)

	base := DefaultWindows.BaselineLogs(past, logs, []model.Episode{future, past}, now)
	for _, l := range base {
		d := l.Date
		assert.False(t, !d.Before(day(-37)) && !d.After(day(-25)), "lead-in day %s kept", model.FormatDay(d))
		assert.True(t, d.Before(day(-4)), "future lead-in day %s kept", model.FormatDay(d))
	}
	// [-40,-38] is 3 days and [-24,-5] is 20 days.
	assert.Len(t, base, 23)
}

func TestTriggerAnalysisInsufficientPreWindow(t *testing.T) {
	ep := ended("ep", -10, -8)
	logs := logsBetween(-60, -30)

	tr, ok := TriggerAnalysis(ep, logs, []model.Episode{ep}, now)
	assert.False(t, ok)
	assert.Nil(t, tr)
}

func TestTriggerAnalysisInsufficientBaseline(t *testing.T) {
	// Only lead-in logs exist, and they are all excluded from the baseline.
	ep := ended("ep", -10, -8)
	logs := logsBetween(-17, -10)

	tr, ok := TriggerAnalysis(ep, logs, []model.Episode{ep}, now)
	assert.False(t, ok)
	assert.Nil(t, tr)
}

func TestCustomWindows(t *testing.T) {
	w := Windows{PreWindowDays: 3, BaselineDays: 30}
	ep := ended("ep", -10, -8)
	logs := logsBetween(-90, 0)

	tr, ok := w.TriggerAnalysis(ep, logs, []model.Episode{ep}, now)
	require.True(t, ok)
	assert.Equal(t, 4, tr.PreEpisode.Days)
	// [-30,0] minus [-13,-8].
	assert.Equal(t, 25, tr.Baseline.Days)
}

func TestMergeRanges(t *testing.T) {
	rs := mergeRanges([]dayRange{
		{from: day(-10), to: day(-8)},
		{from: day(-20), to: day(-15)},
		{from: day(-7), to: day(-5)},
		{from: day(-16), to: day(-12)},
	})
	require.Len(t, rs, 2)
	assert.Equal(t, dayRange{from: day(-20), to: day(-12)}, rs[0])
	assert.Equal(t, dayRange{from: day(-10), to: day(-5)}, rs[1])

	assert.True(t, rs.contains(day(-12)))
	assert.False(t, rs.contains(day(-11)))
	assert.False(t, rs.contains(day(-4)))
	assert.False(t, rangeSet(nil).contains(day(0)))
}

func TestAverageDurationExcludesActive(t *testing.T) {
	eps := []model.Episode{ended("a", -30, -25), ended("b", -20, -13), active("c", -2)}
	avg, ok := AverageDuration(eps)
	require.True(t, ok)
	assert.InDelta(t, 6.0, avg, 1e-9)

	_, ok = AverageDuration([]model.Episode{active("x", -1)})
	assert.False(t, ok)
}

func TestEpisodeCount(t *testing.T) {
	eps := []model.Episode{ended("a", -100, -95), ended("b", -45, -40), active("c", -2)}
	assert.Equal(t, 1, EpisodeCount(eps, 30, now))
	assert.Equal(t, 2, EpisodeCount(eps, 90, now))
	assert.Equal(t, 3, EpisodeCount(eps, 365, now))
}

func TestSymptomFrequency(t *testing.T) {
	a := ended("a", -30, -25)
	a.Symptoms = model.NewSymptomSet(model.SymptomCough, model.SymptomFatigue)
	b := ended("b", -20, -15)
	b.Symptoms = model.NewSymptomSet(model.SymptomFatigue, model.SymptomHeadache)
	c := active("c", -1)
	c.Symptoms = model.NewSymptomSet(model.SymptomFatigue, model.SymptomCough)

	got := SymptomFrequency([]model.Episode{a, b, c})
	assert.Equal(t, []SymptomCount{
		{Symptom: model.SymptomFatigue, Count: 3},
		{Symptom: model.SymptomCough, Count: 2},
		{Symptom: model.SymptomHeadache, Count: 1},
	}, got)
}

func TestRecentAverages(t *testing.T) {
	a := logOn(-1)
	a.ExerciseMinutes, a.SugarIntake = 30, model.SugarHigh
	b := logOn(-2)
	b.ExerciseMinutes = 10
	old := logOn(-120)
	old.ExerciseMinutes = 300

	h, ok := RecentAverages([]model.DailyLog{a, b, old}, 90, now)
	require.True(t, ok)
	assert.Equal(t, 2, h.Days)
	assert.InDelta(t, 20.0, h.AvgExerciseMinutes, 1e-9)
	assert.Equal(t, 1, h.Sugar[model.SugarHigh])
	assert.Equal(t, 1, h.Sugar[model.SugarLow])
	assert.Equal(t, 0, h.Sugar[model.SugarMedium])

	_, ok = RecentAverages([]model.DailyLog{old}, 90, now)
	assert.False(t, ok)
}

func TestActiveEpisodePicksMostRecent(t *testing.T) {
	got, ok := ActiveEpisode([]model.Episode{active("old", -20), ended("x", -5, -1), active("new", -3)})
	require.True(t, ok)
	assert.Equal(t, "new", got.ID)

	_, ok = ActiveEpisode([]model.Episode{ended("x", -5, -1)})
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	eps := []model.Episode{ended("a", -100, -95), ended("b", -45, -38), active("c", -3)}
	logs := logsBetween(-29, 0)

	s := Summarize(logs, eps, 0, now)
	assert.Equal(t, DefaultSummaryDays, s.SummaryDays)
	assert.Equal(t, 1, s.Episodes30d)
	assert.Equal(t, 2, s.Episodes90d)
	require.NotNil(t, s.AverageDuration)
	assert.InDelta(t, 6.0, *s.AverageDuration, 1e-9)
	require.NotNil(t, s.ActiveEpisode)
	assert.Equal(t, "c", s.ActiveEpisode.ID)
	assert.Equal(t, 30, s.CurrentStreak)
	assert.Equal(t, 30, s.LongestStreak)
	assert.Equal(t, []string{"c", "b"}, ids(s.RecentEpisodes))
	require.NotNil(t, s.Health)
	assert.Equal(t, 30, s.Health.Days)
}
