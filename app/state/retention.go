package state

import (
	"slices"
	"time"
)

// Prune ages out records whose last-seen is older than maxDays, then evicts the
// oldest records until at most maxItems remain. A last-seen that does not parse
// counts as expired for the age cutoff but as "now" for eviction ordering.
// It returns the number of records removed.
func (s *Store) Prune(now time.Time, maxDays, maxItems int) int {
	before := len(s.Items)
	cutoff := now.Add(-time.Duration(maxDays) * 24 * time.Hour)

	for key, item := range s.Items {
		lastSeen, ok := ParseTime(item.LastSeen)
		if !ok || lastSeen.Before(cutoff) {
			delete(s.Items, key)
		}
	}

	maxItems = max(maxItems, 0)
	if len(s.Items) > maxItems {
		// key order first so equal timestamps evict deterministically
		list := s.Sorted()
		slices.SortStableFunc(list, func(a, b StoredArticle) int {
			return lastSeenOrNow(a, now).Compare(lastSeenOrNow(b, now))
		})

		for _, item := range list[:len(list)-maxItems] {
			delete(s.Items, item.Key)
		}
	}

	return before - len(s.Items)
}

func lastSeenOrNow(item StoredArticle, now time.Time) time.Time {
	if t, ok := ParseTime(item.LastSeen); ok {
		return t
	}
	return now
}
