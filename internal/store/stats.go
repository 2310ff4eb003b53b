package store

import (
	"context"
	"database/sql"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string `json:"db_path"`
	DBSizeBytes    int64  `json:"db_size_bytes"`
	TotalLogs      int    `json:"total_logs"`
	FirstLog       string `json:"first_log,omitempty"`
	LastLog        string `json:"last_log,omitempty"`
	TotalEpisodes  int    `json:"total_episodes"`
	ActiveEpisodes int    `json:"active_episodes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM daily_logs`).Scan(&st.TotalLogs, &first, &last)
	if err != nil {
		return st, err
	}
	st.FirstLog, st.LastLog = first.String, last.String

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) - COUNT(end_date) FROM episodes`).Scan(&st.TotalEpisodes, &st.ActiveEpisodes)
	if err != nil {
		return st, err
	}

	return st, nil
}
