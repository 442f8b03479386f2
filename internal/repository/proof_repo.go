package repository

import (
	"context"
	"errors"

	"defi_quest/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateProof = errors.New("proof hash already recorded")

type ProofRepository struct {
	db *pgxpool.Pool
}

func NewProofRepository(db *pgxpool.Pool) *ProofRepository {
	return &ProofRepository{db: db}
}

// Create сохраняет запись о пруфе. Verified/VerifiedAt ставятся по вердикту
// релеера до вызова.
func (r *ProofRepository) Create(ctx context.Context, p *domain.ZKProof) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO zk_proofs (user_id, goal_id, proof_hash, proof_type, description, verified, verified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.UserID, p.GoalID, p.ProofHash, p.ProofType, p.Description, p.Verified, p.VerifiedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateProof
	}
	return err
}

// GetByUser возвращает пруфы пользователя, новые первыми
func (r *ProofRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.ZKProof, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, goal_id, proof_hash, proof_type, description, verified, verified_at, created_at
		 FROM zk_proofs
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.ZKProof
	for rows.Next() {
		var p domain.ZKProof
		if err := rows.Scan(&p.ID, &p.UserID, &p.GoalID, &p.ProofHash, &p.ProofType,
			&p.Description, &p.Verified, &p.VerifiedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}
