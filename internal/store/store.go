// Package store provides the record store interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// LogFilter selects daily logs. Zero From/To leave that side open.
type LogFilter struct {
	From  time.Time
	To    time.Time
	Desc  bool // newest first
	Limit int  // 0 means no limit
}

// EpisodeStatus filters episodes by whether they have ended.
type EpisodeStatus int

const (
	StatusAll EpisodeStatus = iota
	StatusActive
	StatusCompleted
)

// ParseEpisodeStatus accepts "all", "active" or "completed".
func ParseEpisodeStatus(s string) (EpisodeStatus, error) {
	switch s {
	case "", "all":
		return StatusAll, nil
	case "active":
		return StatusActive, nil
	case "completed":
		return StatusCompleted, nil
	}
	return StatusAll, errors.New("invalid status " + s + " (valid: all, active, completed)")
}

// EpisodeFilter selects episodes, newest start first.
type EpisodeFilter struct {
	Status EpisodeStatus
	Limit  int
}

// Store defines the record storage interface.
type Store interface {
	// SaveLog creates the log for its calendar day or updates it in place.
	SaveLog(ctx context.Context, l model.DailyLog) (*model.DailyLog, error)

	// GetLog returns the log for the calendar day of day.
	GetLog(ctx context.Context, day time.Time) (*model.DailyLog, error)

	// ListLogs returns logs ordered by date.
	ListLogs(ctx context.Context, f LogFilter) ([]model.DailyLog, error)

	// DeleteLog removes the log for a calendar day.
	DeleteLog(ctx context.Context, day time.Time) error

	// SaveEpisode inserts an episode without an ID, or updates the one with its ID.
	SaveEpisode(ctx context.Context, e model.Episode) (*model.Episode, error)

	// GetEpisode returns an episode by ID.
	GetEpisode(ctx context.Context, id string) (*model.Episode, error)

	// ListEpisodes returns episodes matching the filter.
	ListEpisodes(ctx context.Context, f EpisodeFilter) ([]model.Episode, error)

	// DeleteEpisode removes an episode by ID.
	DeleteEpisode(ctx context.Context, id string) error

	// Reset deletes every log and episode.
	Reset(ctx context.Context) error

	// Close closes the store.
	Close() error
}
