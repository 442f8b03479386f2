package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"defi_quest/internal/domain"
	"defi_quest/internal/relayer"
	"defi_quest/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProofService принимает пруфы, отдаёт их релееру и сохраняет вердикт.
// Поле verified никогда не выставляется локально: недоступный релеер
// означает неподтверждённый пруф.
type ProofService struct {
	db        *pgxpool.Pool
	proofRepo *repository.ProofRepository
	goalRepo  *repository.GoalRepository
	relayer   *relayer.Client
}

func NewProofService(db *pgxpool.Pool, rc *relayer.Client) *ProofService {
	return &ProofService{
		db:        db,
		proofRepo: repository.NewProofRepository(db),
		goalRepo:  repository.NewGoalRepository(db),
		relayer:   rc,
	}
}

// SubmitProofInput - присланный пруф с материалом для релеера
type SubmitProofInput struct {
	GoalID      *int64                `json:"goal_id,omitempty"`
	ProofType   domain.ProofType      `json:"proof_type"`
	Description string                `json:"description"`
	Payload     relayer.VerifyRequest `json:"payload"`
}

// SubmitResult - сохранённый пруф и признак доступности релеера
type SubmitResult struct {
	Proof          *domain.ZKProof `json:"proof"`
	RelayerReached bool            `json:"relayer_reached"`
}

// Submit проверяет пруф через релеер и сохраняет запись. Привязка к цели
// только проверяется на владение; прогресс цели клиент двигает отдельно.
func (s *ProofService) Submit(ctx context.Context, userID int64, in SubmitProofInput) (*SubmitResult, error) {
	switch in.ProofType {
	case domain.ProofTransaction, domain.ProofBalance, domain.ProofPosition:
	default:
		return nil, ErrInvalidInput
	}
	if len(in.Payload.Proof) == 0 {
		return nil, ErrInvalidInput
	}

	if in.GoalID != nil {
		g, err := s.goalRepo.GetByID(ctx, *in.GoalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrGoalNotFound
			}
			return nil, err
		}
		if g.UserID != userID {
			return nil, ErrForbidden
		}
	}

	verified, verifyErr := s.relayer.Verify(ctx, in.Payload)
	reached := verifyErr == nil

	p := &domain.ZKProof{
		UserID:      userID,
		GoalID:      in.GoalID,
		ProofHash:   hashProof(in.Payload.Proof),
		ProofType:   in.ProofType,
		Description: in.Description,
		Verified:    verified,
	}
	if verified {
		now := time.Now()
		p.VerifiedAt = &now
	}

	if err := s.proofRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return &SubmitResult{Proof: p, RelayerReached: reached}, nil
}

// ListProofs возвращает пруфы пользователя
func (s *ProofService) ListProofs(ctx context.Context, userID int64) ([]*domain.ZKProof, error) {
	return s.proofRepo.GetByUser(ctx, userID)
}

// hashProof даёт детерминированный идентификатор пруфа; уникальный индекс
// по нему отсекает повторную отправку того же материала.
func hashProof(proof []byte) string {
	sum := sha256.Sum256(proof)
	return "zk_0x" + hex.EncodeToString(sum[:])
}
