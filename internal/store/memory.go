package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// MemoryStore implements Store in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	logs     map[string]model.DailyLog // keyed by YYYY-MM-DD
	episodes map[string]model.Episode
	seq      int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs:     make(map[string]model.DailyLog),
		episodes: make(map[string]model.Episode),
	}
}

func (m *MemoryStore) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

func (m *MemoryStore) SaveLog(ctx context.Context, l model.DailyLog) (*model.DailyLog, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	l.Date = model.StartOfDay(l.Date)
	key := model.FormatDay(l.Date)
	if prev, ok := m.logs[key]; ok {
		l.ID, l.CreatedAt = prev.ID, prev.CreatedAt
	} else {
		if l.ID == "" {
			l.ID = m.nextID("log-")
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
	}
	l.UpdatedAt = now
	l.Supplements = append([]string(nil), l.Supplements...)
	m.logs[key] = l
	return &l, nil
}

func (m *MemoryStore) GetLog(ctx context.Context, day time.Time) (*model.DailyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := model.FormatDay(model.StartOfDay(day))
	l, ok := m.logs[key]
	if !ok {
		return nil, fmt.Errorf("daily log %s: %w", key, ErrNotFound)
	}
	return &l, nil
}

func (m *MemoryStore) ListLogs(ctx context.Context, f LogFilter) ([]model.DailyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var from, to time.Time
	if !f.From.IsZero() {
		from = model.StartOfDay(f.From)
	}
	if !f.To.IsZero() {
		to = model.StartOfDay(f.To)
	}

	var out []model.DailyLog
	for _, l := range m.logs {
		if !from.IsZero() && l.Date.Before(from) {
			continue
		}
		if !to.IsZero() && l.Date.After(to) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteLog(ctx context.Context, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := model.FormatDay(model.StartOfDay(day))
	if _, ok := m.logs[key]; !ok {
		return fmt.Errorf("daily log %s: %w", key, ErrNotFound)
	}
	delete(m.logs, key)
	return nil
}

func (m *MemoryStore) SaveEpisode(ctx context.Context, e model.Episode) (*model.Episode, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = m.nextID("ep-")
	}
	if prev, ok := m.episodes[e.ID]; ok {
		e.CreatedAt = prev.CreatedAt
	} else if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.StartDate = model.StartOfDay(e.StartDate)
	e.Symptoms = model.NewSymptomSet(e.Symptoms...)
	e.Medications = append([]string(nil), e.Medications...)
	m.episodes[e.ID] = e
	return &e, nil
}

func (m *MemoryStore) GetEpisode(ctx context.Context, id string) (*model.Episode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.episodes[id]
	if !ok {
		return nil, fmt.Errorf("episode %s: %w", id, ErrNotFound)
	}
	return &e, nil
}

func (m *MemoryStore) ListEpisodes(ctx context.Context, f EpisodeFilter) ([]model.Episode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Episode
	for _, e := range m.episodes {
		switch {
		case f.Status == StatusActive && !e.IsActive():
			continue
		case f.Status == StatusCompleted && e.IsActive():
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) DeleteEpisode(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.episodes[id]; !ok {
		return fmt.Errorf("episode %s: %w", id, ErrNotFound)
	}
	delete(m.episodes, id)
	return nil
}

func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = make(map[string]model.DailyLog)
	m.episodes = make(map[string]model.Episode)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
