package domain

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	WalletAddress    *string   `db:"wallet_address" json:"wallet_address,omitempty"`
	TotalXP          int       `db:"total_xp" json:"total_xp"`
	CurrentStreak    int       `db:"current_streak" json:"current_streak"`
	LongestStreak    int       `db:"longest_streak" json:"longest_streak"`
	Level            int       `db:"level" json:"level"`
	GoalsCompleted   int       `db:"goals_completed" json:"goals_completed"`
	ConsistencyScore int       `db:"consistency_score" json:"consistency_score"`
	JoinDate         time.Time `db:"join_date" json:"join_date"`
	LastActive       time.Time `db:"last_active" json:"last_active"`
	// День последней зачётной активности; логины его не трогают
	LastStreakDay *time.Time `db:"last_streak_day" json:"-"`
}
