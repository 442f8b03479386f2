package domain

import (
	"time"

	"defi_quest/internal/progression"
)

// Goal - пользовательское DeFi-обязательство с дедлайном и наградой
type Goal struct {
	ID           int64                  `db:"id" json:"id"`
	UserID       int64                  `db:"user_id" json:"user_id"`
	Title        string                 `db:"title" json:"title"`
	Description  *string                `db:"description" json:"description,omitempty"`
	Type         progression.GoalType   `db:"type" json:"type"`
	StartDate    time.Time              `db:"start_date" json:"start_date"`
	EndDate      time.Time              `db:"end_date" json:"end_date"`
	TargetAmount *float64               `db:"target_amount" json:"target_amount,omitempty"`
	Progress     int                    `db:"progress" json:"progress"` // 0-100
	XPReward     int                    `db:"xp_reward" json:"xp_reward"`
	Completed    bool                   `db:"completed" json:"completed"`
	Difficulty   progression.Difficulty `db:"difficulty" json:"difficulty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
	CompletedAt  *time.Time             `db:"completed_at" json:"completed_at,omitempty"`
}

// DurationDays возвращает длительность цели в днях
func (g *Goal) DurationDays() int {
	return int(g.EndDate.Sub(g.StartDate).Hours() / 24)
}
