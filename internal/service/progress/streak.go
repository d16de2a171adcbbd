package progress

import "time"

// CalculateStreak counts consecutive days of study ending today or
// yesterday. dates must be distinct midnight-UTC session dates sorted most
// recent first, as returned by the session store. A streak survives
// overnight: studying yesterday but not yet today still counts, so the
// walk may anchor on either day. Duplicate dates are a no-op rather than
// an increment; the first gap stops the walk.
func CalculateStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := now.UTC().Truncate(24 * time.Hour)
	anchor := today
	if !dates[0].Equal(today) {
		// The walk can start from yesterday, keeping the streak alive
		// until the end of the current day.
		yesterday := today.AddDate(0, 0, -1)
		if !dates[0].Equal(yesterday) {
			return 0
		}
		anchor = yesterday
	}

	streak := 1
	for _, date := range dates[1:] {
		if date.Equal(anchor) {
			continue
		}
		prev := anchor.AddDate(0, 0, -1)
		if !date.Equal(prev) {
			break
		}
		streak++
		anchor = prev
	}

	return streak
}
