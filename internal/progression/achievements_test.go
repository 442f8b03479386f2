package progression

import "testing"

func testRules() []AchievementRule {
	return []AchievementRule{
		{ID: 1, CriteriaType: CriteriaGoalsCreated, CriteriaTarget: 1},
		{ID: 2, CriteriaType: CriteriaStreakDays, CriteriaTarget: 7},
		{ID: 3, CriteriaType: CriteriaLevel, CriteriaTarget: 5},
		{ID: 4, CriteriaType: CriteriaGoalsCompleted, CriteriaTarget: 10},
	}
}

func TestCheckAchievements(t *testing.T) {
	stats := UserStats{
		TotalXP:        450, // level 5
		CurrentStreak:  3,
		GoalsCreated:   2,
		GoalsCompleted: 1,
	}

	newly := CheckAchievements(stats, testRules(), map[int64]bool{})

	want := map[int64]bool{1: true, 3: true}
	if len(newly) != len(want) {
		t.Fatalf("got %v; want ids 1 and 3", newly)
	}
	for _, id := range newly {
		if !want[id] {
			t.Fatalf("unexpected achievement id %d in %v", id, newly)
		}
	}
}

func TestCheckAchievementsIdempotent(t *testing.T) {
	stats := UserStats{TotalXP: 450, CurrentStreak: 8, GoalsCreated: 1}
	unlocked := map[int64]bool{}

	first := CheckAchievements(stats, testRules(), unlocked)
	if len(first) == 0 {
		t.Fatal("expected newly satisfied achievements on first call")
	}
	for _, id := range first {
		unlocked[id] = true
	}

	second := CheckAchievements(stats, testRules(), unlocked)
	if len(second) != 0 {
		t.Fatalf("second call returned %v; want empty set", second)
	}
}

func TestCheckAchievementsUnknownCriteria(t *testing.T) {
	rules := []AchievementRule{{ID: 9, CriteriaType: "moon_phase", CriteriaTarget: 1}}
	newly := CheckAchievements(UserStats{GoalsCreated: 100}, rules, map[int64]bool{})
	if len(newly) != 0 {
		t.Fatalf("unknown criteria unlocked %v; want nothing", newly)
	}
}

func TestCheckAchievementsNoSideEffects(t *testing.T) {
	stats := UserStats{GoalsCreated: 1}
	unlocked := map[int64]bool{}
	rules := testRules()

	_ = CheckAchievements(stats, rules, unlocked)

	if len(unlocked) != 0 {
		t.Fatalf("unlocked set mutated: %v", unlocked)
	}
}
