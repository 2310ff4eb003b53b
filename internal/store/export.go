package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// BundleVersion is the current export format version.
const BundleVersion = 1

// Bundle is the JSON export of every record.
type Bundle struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Logs       []model.DailyLog `json:"daily_logs"`
	Episodes   []model.Episode  `json:"episodes"`
}

// ImportResult counts the records written by Import.
type ImportResult struct {
	Logs     int `json:"logs"`
	Episodes int `json:"episodes"`
}

// ExportAll returns every log (oldest first) and episode.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Bundle, error) {
	logs, err := s.ListLogs(ctx, LogFilter{})
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	episodes, err := s.ListEpisodes(ctx, EpisodeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	if logs == nil {
		logs = []model.DailyLog{}
	}
	if episodes == nil {
		episodes = []model.Episode{}
	}
	return &Bundle{
		Version:    BundleVersion,
		ExportedAt: time.Now().UTC(),
		Logs:       logs,
		Episodes:   episodes,
	}, nil
}

// Import writes a bundle. Logs merge by calendar day and episodes by ID, so
// importing the same bundle twice is a no-op apart from updated_at.
func (s *SQLiteStore) Import(ctx context.Context, b Bundle) (ImportResult, error) {
	var res ImportResult
	if b.Version > BundleVersion {
		return res, fmt.Errorf("unsupported bundle version %d", b.Version)
	}
	for _, l := range b.Logs {
		if _, err := s.SaveLog(ctx, l); err != nil {
			return res, fmt.Errorf("import log %s: %w", model.FormatDay(l.Date), err)
		}
		res.Logs++
	}
	for _, e := range b.Episodes {
		if _, err := s.SaveEpisode(ctx, e); err != nil {
			return res, fmt.Errorf("import episode %s: %w", e.ID, err)
		}
		res.Episodes++
	}
	return res, nil
}
