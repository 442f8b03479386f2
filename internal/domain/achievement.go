package domain

import (
	"time"

	"defi_quest/internal/progression"
)

// Achievement - шаблон достижения с типизированным критерием разблокировки
type Achievement struct {
	ID             int64                     `db:"id" json:"id"`
	Title          string                    `db:"title" json:"title"`
	Description    string                    `db:"description" json:"description"`
	Type           string                    `db:"type" json:"type"`     // bronze, silver, gold, platinum
	Rarity         string                    `db:"rarity" json:"rarity"` // common, rare, epic, legendary
	Icon           string                    `db:"icon" json:"icon"`
	XPReward       int                       `db:"xp_reward" json:"xp_reward"`
	CriteriaType   progression.CriteriaType  `db:"criteria_type" json:"criteria_type"`
	CriteriaTarget int                       `db:"criteria_target" json:"criteria_target"`
	IsActive       bool                      `db:"is_active" json:"is_active"`
}

// Rule приводит достижение к виду, который понимает progression.CheckAchievements
func (a *Achievement) Rule() progression.AchievementRule {
	return progression.AchievementRule{
		ID:             a.ID,
		CriteriaType:   a.CriteriaType,
		CriteriaTarget: a.CriteriaTarget,
	}
}

// UserAchievement - факт разовой разблокировки достижения пользователем
type UserAchievement struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	AchievementID int64     `db:"achievement_id" json:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at" json:"unlocked_at"`
}
