package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"defi_quest/internal/domain"
	"defi_quest/internal/logger"
	"defi_quest/internal/repository"

	"github.com/gin-gonic/gin"
)

type PartnerRequest struct {
	PartnerID int64 `json:"partner_id"`
}

// RequestPartner создаёт заявку на accountability-партнёрство
func (h *Handler) RequestPartner(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PartnerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.PartnerID <= 0 || req.PartnerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid partner id"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.UserRepo.GetByID(ctx, req.PartnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	partner := &domain.AccountabilityPartner{
		UserID:    userID,
		PartnerID: req.PartnerID,
	}
	if err := h.PartnerRepo.Create(ctx, partner); err != nil {
		if errors.Is(err, repository.ErrPartnerExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "partner request already exists"})
			return
		}
		logger.Error("partner request failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"partner": partner})
}

// AcceptPartner принимает заявку; принять может только адресат
func (h *Handler) AcceptPartner(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	partner, err := h.PartnerRepo.Accept(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pending request not found"})
			return
		}
		logger.Error("accept partner failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// ListPartners возвращает партнёрства текущего пользователя
func (h *Handler) ListPartners(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	partners, err := h.PartnerRepo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list partners failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list partners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}
