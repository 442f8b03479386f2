// Package progression derives gameplay state from raw counters: levels from
// XP, streak bonuses, goal difficulty and rewards. All functions are pure;
// persistence is the caller's job.
package progression

import "math"

// XPPerLevel is the flat XP cost of every level.
const XPPerLevel = 100

// streakMultiplier compounds per streak day, capped at streakCapDays.
const (
	streakMultiplier = 1.1
	streakCapDays    = 30
)

// GoalType classifies what kind of DeFi behavior a goal commits to.
type GoalType string

const (
	GoalHolding GoalType = "holding"
	GoalDCA     GoalType = "dca"
	GoalStaking GoalType = "staking"
	GoalTrading GoalType = "trading"
)

// Difficulty is the derived tier of a goal.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// Level returns the level for the given cumulative XP. Level 1 starts at 0 XP,
// each level costs XPPerLevel.
func Level(totalXP int) int {
	return totalXP/XPPerLevel + 1
}

// XPToNextLevel returns how much XP is missing until the next level, always in
// [1, XPPerLevel].
func XPToNextLevel(totalXP int) int {
	return Level(totalXP)*XPPerLevel - totalXP
}

// LevelProgressPercent returns progress through the current level as a
// percentage in [0, 100).
func LevelProgressPercent(totalXP int) float64 {
	return float64(totalXP%XPPerLevel) / XPPerLevel * 100
}

// StreakBonus scales baseXP by the streak multiplier. The streak contribution
// is capped at streakCapDays so rewards stay bounded.
func StreakBonus(baseXP, streakDays int) int {
	if streakDays > streakCapDays {
		streakDays = streakCapDays
	}
	return int(math.Floor(float64(baseXP) * math.Pow(streakMultiplier, float64(streakDays))))
}

// ConsistencyScore is the share of created goals that were completed, rounded
// to a 0-100 score. Zero created goals score 0.
func ConsistencyScore(goalsCompleted, goalsCreated int) int {
	if goalsCreated == 0 {
		return 0
	}
	score := int(math.Round(float64(goalsCompleted) / float64(goalsCreated) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClassifyDifficulty scores a goal by type, duration and optional target
// amount, then maps the score to a tier. Same inputs always give the same tier.
func ClassifyDifficulty(goalType GoalType, durationDays int, targetAmount *float64) Difficulty {
	score := 0

	switch goalType {
	case GoalHolding:
		score++
	case GoalDCA, GoalStaking:
		score += 2
	case GoalTrading:
		score += 3
	}

	switch {
	case durationDays >= 90:
		score += 3
	case durationDays >= 30:
		score += 2
	case durationDays >= 7:
		score++
	}

	if targetAmount != nil {
		switch {
		case *targetAmount >= 10:
			score += 2
		case *targetAmount >= 5:
			score++
		}
	}

	switch {
	case score >= 7:
		return DifficultyExtreme
	case score >= 5:
		return DifficultyHard
	case score >= 3:
		return DifficultyMedium
	}
	return DifficultyEasy
}

// GoalXPReward computes the fixed XP reward for a goal: 10 XP per day scaled
// by the difficulty multiplier. The reward is decided once at goal creation.
func GoalXPReward(difficulty Difficulty, durationDays int) int {
	base := float64(durationDays * 10)

	mult := 1.0
	switch difficulty {
	case DifficultyMedium:
		mult = 1.5
	case DifficultyHard:
		mult = 2.0
	case DifficultyExtreme:
		mult = 3.0
	}

	return int(math.Floor(base * mult))
}
