// Package tracker answers insight queries against a record store.
//
// Each call fetches a fresh snapshot from the store and hands it to the
// pure functions in package analytics together with the service clock.
// Store failures are reported as ErrStoreUnavailable and are never folded
// into an empty result.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rcliao/sickday/internal/analytics"
	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

var (
	// ErrStoreUnavailable means the record store could not be queried.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrInsufficientData means an analysis window had no logs.
	ErrInsufficientData = errors.New("insufficient data")
)

// Service runs analytics over a store.
type Service struct {
	store       store.Store
	now         func() time.Time
	windows     analytics.Windows
	summaryDays int
	log         *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the reference clock. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithWindows overrides the trigger analysis windows.
func WithWindows(w analytics.Windows) Option {
	return func(s *Service) { s.windows = w }
}

// WithSummaryDays sets the look-back of the insights summary.
func WithSummaryDays(days int) Option {
	return func(s *Service) { s.summaryDays = days }
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns a Service reading from st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:       st,
		now:         time.Now,
		windows:     analytics.DefaultWindows,
		summaryDays: analytics.DefaultSummaryDays,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overlaps returns the stored episodes sharing a day with ep.
func (s *Service) Overlaps(ctx context.Context, ep model.Episode) ([]model.Episode, error) {
	episodes, err := s.episodes(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DetectOverlaps(ep, episodes, s.now()), nil
}

// SaveEpisode stores ep and reports the episodes it overlaps. Overlaps are
// informational and never prevent the save.
func (s *Service) SaveEpisode(ctx context.Context, ep model.Episode) (*model.Episode, []model.Episode, error) {
	saved, err := s.store.SaveEpisode(ctx, ep)
	if err != nil {
		return nil, nil, s.storeErr("save episode", err)
	}
	overlaps, err := s.Overlaps(ctx, *saved)
	if err != nil {
		return saved, nil, err
	}
	if len(overlaps) > 0 {
		s.log.Debug("episode overlaps", "id", saved.ID, "count", len(overlaps))
	}
	return saved, overlaps, nil
}

// Streak holds the current and longest logging streaks.
type Streak struct {
	Current     int  `json:"current"`
	Longest     int  `json:"longest"`
	LoggedToday bool `json:"logged_today"`
}

// Streak computes logging streaks as of today.
func (s *Service) Streak(ctx context.Context) (*Streak, error) {
	logs, err := s.logs(ctx, store.LogFilter{Desc: true})
	if err != nil {
		return nil, err
	}
	now := s.now()
	st := &Streak{
		Current: analytics.CurrentStreak(logs, now),
		Longest: analytics.LongestStreak(logs),
	}
	st.LoggedToday = st.Current > 0
	return st, nil
}

// Trigger compares the lead-in to an episode against the healthy baseline.
// Returns ErrInsufficientData when either window has no logs.
func (s *Service) Trigger(ctx context.Context, episodeID string) (*analytics.Trigger, error) {
	ep, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, s.storeErr("get episode", err)
	}
	logs, episodes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tr, ok := s.windows.TriggerAnalysis(*ep, logs, episodes, s.now())
	if !ok {
		return nil, fmt.Errorf("episode %s: %w", episodeID, ErrInsufficientData)
	}
	return tr, nil
}

// Summary builds the insights overview.
func (s *Service) Summary(ctx context.Context) (*analytics.Summary, error) {
	logs, episodes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sum := analytics.Summarize(logs, episodes, s.summaryDays, s.now())
	return &sum, nil
}

// ActiveEpisode returns the most recent ongoing episode, or nil when there is none.
func (s *Service) ActiveEpisode(ctx context.Context) (*model.Episode, error) {
	episodes, err := s.listEpisodes(ctx, store.EpisodeFilter{Status: store.StatusActive})
	if err != nil {
		return nil, err
	}
	ep, _ := analytics.ActiveEpisode(episodes)
	return ep, nil
}

func (s *Service) logs(ctx context.Context, f store.LogFilter) ([]model.DailyLog, error) {
	logs, err := s.store.ListLogs(ctx, f)
	if err != nil {
		return nil, s.storeErr("list logs", err)
	}
	s.log.Debug("fetched logs", "count", len(logs))
	return logs, nil
}

// snapshot loads every log and episode concurrently.
func (s *Service) snapshot(ctx context.Context) ([]model.DailyLog, []model.Episode, error) {
	var (
		logs     []model.DailyLog
		episodes []model.Episode
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.logs(gctx, store.LogFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		episodes, err = s.episodes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return logs, episodes, nil
}

func (s *Service) episodes(ctx context.Context) ([]model.Episode, error) {
	return s.listEpisodes(ctx, store.EpisodeFilter{})
}

func (s *Service) listEpisodes(ctx context.Context, f store.EpisodeFilter) ([]model.Episode, error) {
	episodes, err := s.store.ListEpisodes(ctx, f)
	if err != nil {
		return nil, s.storeErr("list episodes", err)
	}
	s.log.Debug("fetched episodes", "count", len(episodes))
	return episodes, nil
}

// storeErr passes through not-found and validation errors, and marks
// everything else as the store being unavailable.
func (s *Service) storeErr(op string, err error) error {
	var verr *model.ValidationError
	if errors.Is(err, store.ErrNotFound) || errors.As(err, &verr) {
		return err
	}
	s.log.Warn("store query failed", "op", op, "err", err)
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
