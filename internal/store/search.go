package store

import (
	"context"
	"strings"
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// SearchParams holds parameters for searching free-text fields.
type SearchParams struct {
	Query string
	Limit int
}

// SearchResult is a log or episode whose text matched the query.
type SearchResult struct {
	Kind    string    `json:"kind"` // "log" or "episode"
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Field   string    `json:"field"`
	Excerpt string    `json:"excerpt"`
}

// Search finds logs and episodes whose notes, test results or medications
// contain the query, case-insensitively. Newest first.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	like := "%" + escapeLike(p.Query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, id, day, field, text FROM (
			SELECT 'log' AS kind, id, date AS day, 'notes' AS field, notes AS text
			FROM daily_logs WHERE notes LIKE ? ESCAPE '\'
			UNION ALL
			SELECT 'episode', id, start_date, 'notes', notes
			FROM episodes WHERE notes LIKE ? ESCAPE '\'
			UNION ALL
			SELECT 'episode', id, start_date, 'test_results', test_results
			FROM episodes WHERE test_results LIKE ? ESCAPE '\'
			UNION ALL
			SELECT 'episode', id, start_date, 'medications', medications
			FROM episodes WHERE medications LIKE ? ESCAPE '\'
		)
		ORDER BY day DESC, kind
		LIMIT ?`, like, like, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var day string
		if err := rows.Scan(&r.Kind, &r.ID, &day, &r.Field, &r.Excerpt); err != nil {
			return nil, err
		}
		r.Date, _ = model.ParseDay(day)
		r.Excerpt = excerpt(r.Excerpt, p.Query, 80)
		results = append(results, r)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// excerpt trims text to a window of roughly width runes around the first match.
func excerpt(text, query string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	idx := strings.Index(strings.ToLower(text), strings.ToLower(query))
	start := 0
	if idx > 0 && idx <= len(text) {
		start = len([]rune(text[:idx])) - width/4
		if start < 0 {
			start = 0
		}
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
		start = max(0, end-width)
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}
