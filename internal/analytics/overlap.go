package analytics

import (
	"time"

	"github.com/rcliao/sickday/internal/model"
)

// Overlaps reports whether a and b share at least one calendar day. Active
// episodes extend through the day of now. Touching endpoints count.
func Overlaps(a, b model.Episode, now time.Time) bool {
	aStart, aEnd := model.StartOfDay(a.StartDate), a.EffectiveEnd(now)
	bStart, bEnd := model.StartOfDay(b.StartDate), b.EffectiveEnd(now)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DetectOverlaps returns every episode in all that shares a day with candidate.
// The candidate itself, matched by ID, is never reported. A candidate with an
// empty ID has not been stored yet and matches nothing by identity.
func DetectOverlaps(candidate model.Episode, all []model.Episode, now time.Time) []model.Episode {
	var out []model.Episode
	for _, other := range all {
		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, other, now) {
			out = append(out, other)
		}
	}
	return out
}
