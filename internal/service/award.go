package service

import (
	"context"
	"errors"

	"defi_quest/internal/progression"

	"github.com/jackc/pgx/v5"
)

// awardXP прибавляет XP пользователю внутри уже открытой транзакции.
// Уровень всегда выводится из total_xp через progression.Level и никогда
// не меняется независимо. Строка пользователя блокируется FOR UPDATE.
func awardXP(ctx context.Context, tx pgx.Tx, userID int64, delta int) (newTotal, newLevel int, err error) {
	var totalXP int
	err = tx.QueryRow(ctx, `SELECT total_xp FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&totalXP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}

	newTotal = totalXP + delta
	newLevel = progression.Level(newTotal)

	_, err = tx.Exec(ctx,
		`UPDATE users SET total_xp = $1, level = $2 WHERE id = $3`,
		newTotal, newLevel, userID)
	if err != nil {
		return 0, 0, err
	}
	return newTotal, newLevel, nil
}
