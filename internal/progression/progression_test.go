package progression

import "testing"

func TestLevel(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{450, 5},
		{1000, 11},
	}

	for _, tc := range cases {
		if got := Level(tc.xp); got != tc.want {
			t.Fatalf("Level(%d) = %d; want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for xp := 1; xp <= 5000; xp++ {
		cur := Level(xp)
		if cur < prev {
			t.Fatalf("Level decreased at xp=%d: %d -> %d", xp, prev, cur)
		}
		prev = cur
	}
}

func TestXPToNextLevel(t *testing.T) {
	for xp := 0; xp <= 1000; xp++ {
		toNext := XPToNextLevel(xp)
		if toNext < 1 || toNext > 100 {
			t.Fatalf("XPToNextLevel(%d) = %d; want value in [1,100]", xp, toNext)
		}
		if toNext+xp != Level(xp)*XPPerLevel {
			t.Fatalf("XPToNextLevel(%d)+xp = %d; want %d", xp, toNext+xp, Level(xp)*XPPerLevel)
		}
	}
}

func TestLevelProgressPercent(t *testing.T) {
	for xp := 0; xp <= 1000; xp++ {
		p := LevelProgressPercent(xp)
		if p < 0 || p >= 100 {
			t.Fatalf("LevelProgressPercent(%d) = %f; want value in [0,100)", xp, p)
		}
	}

	if got := LevelProgressPercent(450); got != 50 {
		t.Fatalf("LevelProgressPercent(450) = %f; want 50", got)
	}
}

func TestStreakBonus(t *testing.T) {
	if got := StreakBonus(100, 0); got != 100 {
		t.Fatalf("StreakBonus(100, 0) = %d; want 100", got)
	}

	// cap takes effect at 30 days
	at30 := StreakBonus(100, 30)
	at45 := StreakBonus(100, 45)
	if at30 != at45 {
		t.Fatalf("StreakBonus(100, 30) = %d, StreakBonus(100, 45) = %d; want equal", at30, at45)
	}

	if StreakBonus(100, 7) <= 100 {
		t.Fatalf("StreakBonus(100, 7) = %d; want > 100", StreakBonus(100, 7))
	}
}

func TestConsistencyScore(t *testing.T) {
	cases := []struct {
		completed, created int
		want               int
	}{
		{0, 0, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
	}

	for _, tc := range cases {
		if got := ConsistencyScore(tc.completed, tc.created); got != tc.want {
			t.Fatalf("ConsistencyScore(%d, %d) = %d; want %d", tc.completed, tc.created, got, tc.want)
		}
	}
}

func TestClassifyDifficulty(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	cases := []struct {
		goalType GoalType
		days     int
		amount   *float64
		want     Difficulty
	}{
		{GoalTrading, 90, amount(10), DifficultyExtreme}, // 3+3+2
		{GoalHolding, 1, nil, DifficultyEasy},            // 1
		{GoalDCA, 30, nil, DifficultyMedium},             // 2+2
		{GoalStaking, 30, amount(5), DifficultyHard},     // 2+2+1
		{GoalHolding, 7, nil, DifficultyEasy},            // 1+1
		{GoalTrading, 7, nil, DifficultyMedium},          // 3+1
		{GoalTrading, 90, nil, DifficultyHard},           // 3+3
	}

	for _, tc := range cases {
		got := ClassifyDifficulty(tc.goalType, tc.days, tc.amount)
		if got != tc.want {
			t.Fatalf("ClassifyDifficulty(%s, %d, %v) = %s; want %s", tc.goalType, tc.days, tc.amount, got, tc.want)
		}
	}
}

func TestClassifyDifficultyDeterministic(t *testing.T) {
	a := ClassifyDifficulty(GoalDCA, 45, nil)
	b := ClassifyDifficulty(GoalDCA, 45, nil)
	if a != b {
		t.Fatalf("same inputs gave different tiers: %s vs %s", a, b)
	}
}

func TestGoalXPReward(t *testing.T) {
	cases := []struct {
		difficulty Difficulty
		days       int
		want       int
	}{
		{DifficultyEasy, 10, 100},
		{DifficultyMedium, 30, 450},
		{DifficultyHard, 30, 600},
		{DifficultyExtreme, 90, 2700},
	}

	for _, tc := range cases {
		if got := GoalXPReward(tc.difficulty, tc.days); got != tc.want {
			t.Fatalf("GoalXPReward(%s, %d) = %d; want %d", tc.difficulty, tc.days, got, tc.want)
		}
	}
}

// End-to-end derivation: a fresh user completes a 30-day dca goal with no
// target amount.
func TestGoalCompletionDerivation(t *testing.T) {
	difficulty := ClassifyDifficulty(GoalDCA, 30, nil)
	if difficulty != DifficultyMedium {
		t.Fatalf("difficulty = %s; want medium", difficulty)
	}

	reward := GoalXPReward(difficulty, 30)
	if reward != 450 {
		t.Fatalf("reward = %d; want 450", reward)
	}

	totalXP := 0 + reward
	if Level(totalXP) != 5 {
		t.Fatalf("Level(%d) = %d; want 5", totalXP, Level(totalXP))
	}
	if XPToNextLevel(totalXP) != 50 {
		t.Fatalf("XPToNextLevel(%d) = %d; want 50", totalXP, XPToNextLevel(totalXP))
	}
}
