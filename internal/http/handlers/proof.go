package handlers

import (
	"errors"
	"net/http"

	"defi_quest/internal/logger"
	"defi_quest/internal/repository"
	"defi_quest/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitProof принимает ZK-пруф, гоняет его через релеер и сохраняет.
// Недоступный релеер не валит запрос: пруф сохраняется неподтверждённым.
func (h *Handler) SubmitProof(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in service.SubmitProofInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	result, err := h.ProofService.Submit(c.Request.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proof"})
		case errors.Is(err, service.ErrGoalNotFound), errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		case errors.Is(err, repository.ErrDuplicateProof):
			c.JSON(http.StatusConflict, gin.H{"error": "proof already submitted"})
		default:
			logger.Error("submit proof failed", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit proof"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListProofs возвращает пруфы текущего пользователя
func (h *Handler) ListProofs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	proofs, err := h.ProofService.ListProofs(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list proofs failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list proofs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proofs": proofs})
}
