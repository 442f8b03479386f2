package domain

import "time"

// QuestType - тип квеста
type QuestType string

const (
	QuestTypeDaily  QuestType = "daily"
	QuestTypeWeekly QuestType = "weekly"
)

// QuestCategory - категория квеста
type QuestCategory string

const (
	CategoryTrading QuestCategory = "trading"
	CategoryStaking QuestCategory = "staking"
	CategoryHolding QuestCategory = "holding"
	CategorySocial  QuestCategory = "social"
	CategoryGeneral QuestCategory = "general"
)

// Quest - шаблон задания (daily или weekly), не принадлежит пользователю
type Quest struct {
	ID          int64         `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	QuestType   QuestType     `db:"quest_type" json:"quest_type"`
	Category    QuestCategory `db:"category" json:"category"`
	Target      int           `db:"target" json:"target"`
	XPReward    int           `db:"xp_reward" json:"xp_reward"`
	Difficulty  string        `db:"difficulty" json:"difficulty"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// UserQuest - прогресс пользователя по заданию за текущий период
type UserQuest struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	QuestID     int64      `db:"quest_id" json:"quest_id"`
	Progress    int        `db:"progress" json:"progress"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	PeriodStart time.Time  `db:"period_start" json:"period_start"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// UserQuestWithDetails - прогресс с деталями квеста (для API ответов)
type UserQuestWithDetails struct {
	UserQuest
	Quest Quest `json:"quest"`
}

// ProgressPercent возвращает прогресс в процентах (0-100)
func (uq *UserQuest) ProgressPercent(target int) int {
	if target <= 0 {
		return 100
	}
	pct := (uq.Progress * 100) / target
	if pct > 100 {
		return 100
	}
	return pct
}
