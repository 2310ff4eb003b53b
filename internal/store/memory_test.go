package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/sickday/internal/model"
)

func TestMemoryStoreBehavesLikeSQLite(t *testing.T) {
	ctx := context.Background()
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newTestStore(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			first, err := s.SaveLog(ctx, model.NewDailyLog(day(-1)))
			if err != nil {
				t.Fatalf("save log: %v", err)
			}
			again := model.NewDailyLog(day(-1))
			again.Stress = 1
			updated, _ := s.SaveLog(ctx, again)
			if updated.ID != first.ID || updated.Stress != 1 {
				t.Errorf("expected in-place update, got %+v", updated)
			}
			s.SaveLog(ctx, model.NewDailyLog(day(0)))

			logs, _ := s.ListLogs(ctx, LogFilter{Desc: true})
			if len(logs) != 2 || !logs[0].Date.Equal(day(0)) {
				t.Errorf("expected 2 logs newest first, got %d", len(logs))
			}

			done := model.NewEpisode(day(-9))
			done.End = model.EndedOn(day(-6))
			s.SaveEpisode(ctx, done)
			act, _ := s.SaveEpisode(ctx, model.NewEpisode(day(-2)))

			active, _ := s.ListEpisodes(ctx, EpisodeFilter{Status: StatusActive})
			if len(active) != 1 || active[0].ID != act.ID {
				t.Errorf("expected the active episode, got %+v", active)
			}

			if err := s.DeleteEpisode(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			if err := s.Reset(ctx); err != nil {
				t.Fatalf("reset: %v", err)
			}
			all, _ := s.ListEpisodes(ctx, EpisodeFilter{})
			if len(all) != 0 {
				t.Errorf("expected no episodes after reset, got %d", len(all))
			}
		})
	}
}

func TestParseEpisodeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want EpisodeStatus
		err  bool
	}{
		{"", StatusAll, false},
		{"all", StatusAll, false},
		{"active", StatusActive, false},
		{"completed", StatusCompleted, false},
		{"done", StatusAll, true},
	}
	for _, tt := range tests {
		got, err := ParseEpisodeStatus(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseEpisodeStatus(%q) error = %v, want error %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseEpisodeStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
