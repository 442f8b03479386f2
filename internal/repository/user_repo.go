package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
)

const userColumns = `id, username, password_hash, wallet_address, total_xp, current_streak,
	longest_streak, level, goals_created, goals_completed, consistency_score, join_date,
	last_active, last_streak_day`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var goalsCreated int
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.WalletAddress,
		&u.TotalXP,
		&u.CurrentStreak,
		&u.LongestStreak,
		&u.Level,
		&goalsCreated,
		&u.GoalsCompleted,
		&u.ConsistencyScore,
		&u.JoinDate,
		&u.LastActive,
		&u.LastStreakDay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByWallet(ctx context.Context, address string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE wallet_address = $1`, address))
}

// Create вставляет нового пользователя; уникальность username проверяет БД
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, wallet_address)
		 VALUES ($1, $2, $3)
		 RETURNING id, join_date, last_active`,
		u.Username, u.PasswordHash, u.WalletAddress,
	).Scan(&u.ID, &u.JoinDate, &u.LastActive)
	if err != nil && isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

// GoalCounts возвращает (created, completed) для consistency score
func (r *UserRepository) GoalCounts(ctx context.Context, userID int64) (int, int, error) {
	var created, completed int
	err := r.db.QueryRow(ctx,
		`SELECT goals_created, goals_completed FROM users WHERE id = $1`, userID,
	).Scan(&created, &completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	return created, completed, err
}

func (r *UserRepository) TouchLastActive(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_active = now() WHERE id = $1`, userID)
	return err
}

// LeaderboardEntry - строка таблицы лидеров
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           int64  `json:"user_id"`
	Username         string `json:"username"`
	Level            int    `json:"level"`
	TotalXP          int    `json:"total_xp"`
	LongestStreak    int    `json:"longest_streak"`
	ConsistencyScore int    `json:"consistency_score"`
}

// orderColumn отображает тип лидерборда на сортируемую колонку.
// Белый список: значение попадает в текст запроса.
func orderColumn(lbType string) string {
	switch lbType {
	case "streak":
		return "longest_streak"
	case "consistency":
		return "consistency_score"
	default:
		return "total_xp"
	}
}

// GetTop возвращает первые limit пользователей по выбранной метрике
func (r *UserRepository) GetTop(ctx context.Context, lbType string, limit int) ([]LeaderboardEntry, error) {
	col := orderColumn(lbType)
	rows, err := r.db.Query(ctx,
		`SELECT id, username, level, total_xp, longest_streak, consistency_score
		 FROM users
		 ORDER BY `+col+` DESC, id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Level, &e.TotalXP,
			&e.LongestStreak, &e.ConsistencyScore); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}

// GetUserRank возвращает место пользователя по выбранной метрике
func (r *UserRepository) GetUserRank(ctx context.Context, userID int64, lbType string) (int, error) {
	col := orderColumn(lbType)
	var rank int
	err := r.db.QueryRow(ctx,
		`WITH ranked AS (
			SELECT id, RANK() OVER (ORDER BY `+col+` DESC) AS rank
			FROM users
		)
		SELECT rank FROM ranked WHERE id = $1`, userID,
	).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return rank, err
}
