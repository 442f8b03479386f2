package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// advanceStreak computes the next streak pair after qualifying activity at
// now. lastStreakDay is the day of the last *qualifying* activity (zero for
// never); logins and other non-qualifying touches must not feed into it.
// A repeat on the same day leaves the streak alone, the day after extends
// it, anything longer resets it to 1.
func advanceStreak(current, longest int, lastStreakDay, now time.Time) (int, int) {
	switch {
	case sameDay(lastStreakDay, now):
		// already counted today; a zero streak still owes today its point
		if current == 0 {
			current = 1
		}
	case sameDay(lastStreakDay.AddDate(0, 0, 1), now):
		current++
	default:
		current = 1
	}

	if current > longest {
		longest = current
	}
	return current, longest
}

// touchStreak advances the user's streak inside an open transaction. The
// streak keys off last_streak_day, which only this function writes.
// last_active is bumped too but never read back for streak decisions.
// Callers hold the FOR UPDATE lock on the user row.
func touchStreak(ctx context.Context, tx pgx.Tx, userID int64, now time.Time) error {
	var current, longest int
	var lastStreakDay *time.Time
	err := tx.QueryRow(ctx,
		`SELECT current_streak, longest_streak, last_streak_day FROM users WHERE id = $1`,
		userID,
	).Scan(&current, &longest, &lastStreakDay)
	if err != nil {
		return err
	}

	var last time.Time
	if lastStreakDay != nil {
		last = *lastStreakDay
	}
	current, longest = advanceStreak(current, longest, last, now)

	_, err = tx.Exec(ctx,
		`UPDATE users SET current_streak = $1, longest_streak = $2, last_streak_day = $3, last_active = $4
		 WHERE id = $5`,
		current, longest, now, now, userID)
	return err
}
