package service

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak(t *testing.T) {
	cases := []struct {
		name          string
		current       int
		longest       int
		lastStreakDay time.Time
		now           time.Time
		wantCurrent   int
		wantLongest   int
	}{
		{"same day is a no-op", 3, 5, day(10), day(10).Add(6 * time.Hour), 3, 5},
		{"next day extends", 3, 5, day(10), day(11), 4, 5},
		{"extension can set a new record", 5, 5, day(10), day(11), 6, 6},
		{"gap resets to one", 7, 9, day(10), day(13), 1, 9},
		{"first ever activity", 0, 0, time.Time{}, day(10), 1, 1},
		{"zero streak claims its day even when already stamped", 0, 4, day(10), day(10).Add(2 * time.Hour), 1, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, longest := advanceStreak(tc.current, tc.longest, tc.lastStreakDay, tc.now)
			if current != tc.wantCurrent || longest != tc.wantLongest {
				t.Fatalf("advanceStreak(%d, %d, %v, %v) = (%d, %d); want (%d, %d)",
					tc.current, tc.longest, tc.lastStreakDay, tc.now,
					current, longest, tc.wantCurrent, tc.wantLongest)
			}
		})
	}
}

// The streak keys off the day of the last qualifying activity, so logging in
// (which only bumps last_active) must not eat the day's streak point.
func TestStreakUnaffectedByLogins(t *testing.T) {
	// day 1: quest completed, streak 1. day 2: the user logs in at 09:00
	// and completes a quest at 18:00. The login leaves lastStreakDay at
	// day 1, so the quest still extends the streak.
	lastStreakDay := day(1)
	current, longest := advanceStreak(1, 1, lastStreakDay, day(2).Add(18*time.Hour))
	if current != 2 || longest != 2 {
		t.Fatalf("streak after day-2 quest = (%d, %d); want (2, 2)", current, longest)
	}

	// brand-new account: signup stamps last_active the same day, but
	// lastStreakDay starts empty, so the first quest opens the streak
	current, longest = advanceStreak(0, 0, time.Time{}, day(1).Add(2*time.Hour))
	if current != 1 || longest != 1 {
		t.Fatalf("first-day streak = (%d, %d); want (1, 1)", current, longest)
	}
}

func TestAdvanceStreakMidnightBoundary(t *testing.T) {
	lastStreakDay := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC)

	current, _ := advanceStreak(1, 1, lastStreakDay, now)
	if current != 2 {
		t.Fatalf("activity two minutes apart across midnight should extend the streak, got %d", current)
	}
}
