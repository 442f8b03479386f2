package repository

import (
	"testing"
	"time"

	"defi_quest/internal/domain"
)

func TestPeriodStartDaily(t *testing.T) {
	now := time.Date(2025, time.March, 12, 17, 45, 3, 0, time.UTC)
	got := PeriodStart(domain.QuestTypeDaily, now)
	want := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("PeriodStart(daily) = %v; want %v", got, want)
	}
}

func TestPeriodStartWeekly(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"wednesday maps to monday",
			time.Date(2025, time.March, 12, 17, 45, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday maps to itself",
			time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps to previous monday",
			time.Date(2025, time.March, 16, 23, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PeriodStart(domain.QuestTypeWeekly, tc.now)
			if !got.Equal(tc.want) {
				t.Fatalf("PeriodStart(weekly, %v) = %v; want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestPeriodStartStableWithinPeriod(t *testing.T) {
	morning := time.Date(2025, time.March, 12, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 12, 23, 59, 0, 0, time.UTC)

	if !PeriodStart(domain.QuestTypeDaily, morning).Equal(PeriodStart(domain.QuestTypeDaily, evening)) {
		t.Fatal("daily period start changed within the same day")
	}
	if !PeriodStart(domain.QuestTypeWeekly, morning).Equal(PeriodStart(domain.QuestTypeWeekly, evening)) {
		t.Fatal("weekly period start changed within the same week")
	}
}
