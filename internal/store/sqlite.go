package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/sickday/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_logs (
		id               TEXT PRIMARY KEY,
		date             TEXT NOT NULL UNIQUE,
		sleep_hours      REAL NOT NULL,
		sleep_quality    INTEGER NOT NULL,
		stress           INTEGER NOT NULL,
		exercise_minutes INTEGER NOT NULL DEFAULT 0,
		exercise_type    TEXT NOT NULL DEFAULT 'none',
		sugar_intake     TEXT NOT NULL DEFAULT 'low',
		alcohol          TEXT NOT NULL DEFAULT 'none',
		fruits_servings  INTEGER NOT NULL DEFAULT 0,
		protein_grams    INTEGER NOT NULL DEFAULT 0,
		supplements      TEXT,
		office_day       INTEGER NOT NULL DEFAULT 0,
		sick_contact     INTEGER NOT NULL DEFAULT 0,
		humidifier_used  INTEGER NOT NULL DEFAULT 0,
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS episodes (
		id           TEXT PRIMARY KEY,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		type         TEXT NOT NULL DEFAULT 'cold',
		severity     INTEGER NOT NULL DEFAULT 3,
		symptoms     TEXT,
		worst_time   TEXT NOT NULL DEFAULT 'all_day',
		mucus_color  TEXT NOT NULL DEFAULT 'none',
		medications  TEXT,
		doctor_visit INTEGER NOT NULL DEFAULT 0,
		test_results TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_episodes_start ON episodes(start_date DESC);
	CREATE INDEX IF NOT EXISTS idx_episodes_end ON episodes(end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

const logColumns = `id, date, sleep_hours, sleep_quality, stress, exercise_minutes, exercise_type,
	sugar_intake, alcohol, fruits_servings, protein_grams, supplements, office_day, sick_contact,
	humidifier_used, notes, created_at, updated_at`

const episodeColumns = `id, start_date, end_date, type, severity, symptoms, worst_time, mucus_color,
	medications, doctor_visit, test_results, notes, created_at, updated_at`

func (s *SQLiteStore) SaveLog(ctx context.Context, l model.DailyLog) (*model.DailyLog, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	day := model.FormatDay(model.StartOfDay(l.Date))

	id := l.ID
	if id == "" {
		id = s.newID()
	}
	created := l.CreatedAt
	if created.IsZero() {
		created = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The day is the identity: an existing row keeps its id and created_at.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO daily_logs (`+logColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			sleep_hours = excluded.sleep_hours,
			sleep_quality = excluded.sleep_quality,
			stress = excluded.stress,
			exercise_minutes = excluded.exercise_minutes,
			exercise_type = excluded.exercise_type,
			sugar_intake = excluded.sugar_intake,
			alcohol = excluded.alcohol,
			fruits_servings = excluded.fruits_servings,
			protein_grams = excluded.protein_grams,
			supplements = excluded.supplements,
			office_day = excluded.office_day,
			sick_contact = excluded.sick_contact,
			humidifier_used = excluded.humidifier_used,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		id, day, l.SleepHours, l.SleepQuality, l.Stress, l.ExerciseMinutes, string(l.ExerciseType),
		string(l.SugarIntake), string(l.Alcohol), l.FruitsServings, l.ProteinGrams, jsonList(l.Supplements),
		l.OfficeDay, l.SickContactExposure, l.HumidifierUsed, l.Notes,
		created.UTC().Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("upsert daily log: %w", err)
	}

	row := tx.QueryRowContext(ctx, `SELECT `+logColumns+` FROM daily_logs WHERE date = ?`, day)
	saved, err := scanLog(row)
	if err != nil {
		return nil, fmt.Errorf("reload daily log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SQLiteStore) GetLog(ctx context.Context, day time.Time) (*model.DailyLog, error) {
	key := model.FormatDay(model.StartOfDay(day))
	row := s.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM daily_logs WHERE date = ?`, key)
	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily log %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLiteStore) ListLogs(ctx context.Context, f LogFilter) ([]model.DailyLog, error) {
	var where []string
	var args []interface{}

	if !f.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, model.FormatDay(model.StartOfDay(f.From)))
	}
	if !f.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, model.FormatDay(model.StartOfDay(f.To)))
	}

	query := `SELECT ` + logColumns + ` FROM daily_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Desc {
		query += ` ORDER BY date DESC`
	} else {
		query += ` ORDER BY date`
	}
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.DailyLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) DeleteLog(ctx context.Context, day time.Time) error {
	key := model.FormatDay(model.StartOfDay(day))
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE date = ?`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("daily log %s: %w", key, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) SaveEpisode(ctx context.Context, e model.Episode) (*model.Episode, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}

	var endDate *string
	if end, ok := e.End.Date(); ok {
		d := model.FormatDay(end)
		endDate = &d
	}

	symptoms := make([]string, len(e.Symptoms))
	for i, sym := range e.Symptoms {
		symptoms[i] = string(sym)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO episodes (`+episodeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			type = excluded.type,
			severity = excluded.severity,
			symptoms = excluded.symptoms,
			worst_time = excluded.worst_time,
			mucus_color = excluded.mucus_color,
			medications = excluded.medications,
			doctor_visit = excluded.doctor_visit,
			test_results = excluded.test_results,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		e.ID, model.FormatDay(model.StartOfDay(e.StartDate)), endDate, string(e.Type), e.Severity,
		jsonList(symptoms), string(e.WorstTime), string(e.MucusColor), jsonList(e.Medications),
		e.DoctorVisit, e.TestResults, e.Notes,
		e.CreatedAt.UTC().Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("save episode: %w", err)
	}

	return s.GetEpisode(ctx, e.ID)
}

func (s *SQLiteStore) GetEpisode(ctx context.Context, id string) (*model.Episode, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)
	e, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) ListEpisodes(ctx context.Context, f EpisodeFilter) ([]model.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes`
	var args []interface{}

	switch f.Status {
	case StatusActive:
		query += ` WHERE end_date IS NULL`
	case StatusCompleted:
		query += ` WHERE end_date IS NOT NULL`
	}
	query += ` ORDER BY start_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []model.Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

func (s *SQLiteStore) DeleteEpisode(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("episode %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_logs`); err != nil {
		return fmt.Errorf("delete daily logs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes`); err != nil {
		return fmt.Errorf("delete episodes: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLog(row scanner) (model.DailyLog, error) {
	var l model.DailyLog
	var date, exerciseType, sugar, alcohol, createdAt, updatedAt string
	var supplements sql.NullString

	err := row.Scan(
		&l.ID, &date, &l.SleepHours, &l.SleepQuality, &l.Stress, &l.ExerciseMinutes, &exerciseType,
		&sugar, &alcohol, &l.FruitsServings, &l.ProteinGrams, &supplements, &l.OfficeDay,
		&l.SickContactExposure, &l.HumidifierUsed, &l.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return l, err
	}

	l.Date, err = model.ParseDay(date)
	if err != nil {
		return l, fmt.Errorf("parse log date %q: %w", date, err)
	}
	l.ExerciseType = model.ExerciseType(exerciseType)
	l.SugarIntake = model.SugarLevel(sugar)
	l.Alcohol = model.Alcohol(alcohol)
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	decodeList("daily_logs", "supplements", l.ID, supplements, &l.Supplements)
	return l, nil
}

func scanEpisode(row scanner) (model.Episode, error) {
	var e model.Episode
	var start, typ, worst, mucus, createdAt, updatedAt string
	var end, symptoms, medications sql.NullString

	err := row.Scan(
		&e.ID, &start, &end, &typ, &e.Severity, &symptoms, &worst, &mucus,
		&medications, &e.DoctorVisit, &e.TestResults, &e.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return e, err
	}

	e.StartDate, err = model.ParseDay(start)
	if err != nil {
		return e, fmt.Errorf("parse episode start %q: %w", start, err)
	}
	e.End = model.Ongoing()
	if end.Valid {
		d, err := model.ParseDay(end.String)
		if err != nil {
			return e, fmt.Errorf("parse episode end %q: %w", end.String, err)
		}
		e.End = model.EndedOn(d)
	}
	e.Type = model.EpisodeType(typ)
	e.WorstTime = model.WorstTime(worst)
	e.MucusColor = model.MucusColor(mucus)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	e.Symptoms = model.SymptomSet{}
	var raw []model.Symptom
	if decodeList("episodes", "symptoms", e.ID, symptoms, &raw) {
		e.Symptoms = model.NewSymptomSet(raw...)
	}
	decodeList("episodes", "medications", e.ID, medications, &e.Medications)
	return e, nil
}

// decodeList unmarshals a JSON list column into dst. A NULL column leaves dst
// untouched. A malformed value is logged and also leaves dst untouched, so the
// rest of the row stays readable.
func decodeList(table, column, id string, col sql.NullString, dst any) bool {
	if !col.Valid {
		return false
	}
	if err := json.Unmarshal([]byte(col.String), dst); err != nil {
		slog.Warn("unreadable list column", "table", table, "column", column, "id", id, "err", err)
		return false
	}
	return true
}

// jsonList encodes a string list for a TEXT column, or NULL when empty.
func jsonList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	b, _ := json.Marshal(items)
	s := string(b)
	return &s
}
