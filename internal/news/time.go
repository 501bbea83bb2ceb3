package news

import "time"

// DaysSince returns the number of whole days between a publish time and
// now. Future publish times yield negative values, which recency scoring
// treats as "under a day old".
func DaysSince(published, now time.Time) int {
	diff := now.UTC().Sub(published.UTC())
	return int(diff.Hours() / 24)
}
