package domain

import "time"

// ProofType - что именно доказывает ZK-пруф
type ProofType string

const (
	ProofTransaction ProofType = "transaction"
	ProofBalance     ProofType = "balance"
	ProofPosition    ProofType = "position"
)

// ZKProof - запись о прувинге. Поле Verified решает внешний верификатор
// (релеер); сервер его никогда не выставляет сам.
type ZKProof struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	GoalID      *int64     `db:"goal_id" json:"goal_id,omitempty"`
	ProofHash   string     `db:"proof_hash" json:"proof_hash"`
	ProofType   ProofType  `db:"proof_type" json:"proof_type"`
	Description string     `db:"description" json:"description"`
	Verified    bool       `db:"verified" json:"verified"`
	VerifiedAt  *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
