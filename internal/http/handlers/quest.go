package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"defi_quest/internal/logger"
	"defi_quest/internal/service"

	"github.com/gin-gonic/gin"
)

// ListQuests возвращает активные квесты с прогрессом текущего периода
func (h *Handler) ListQuests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	quests, err := h.QuestService.ListWithProgress(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list quests failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

type QuestProgressRequest struct {
	Increment int `json:"increment"`
}

// QuestProgress продвигает квест; достижение цели начисляет XP
func (h *Handler) QuestProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || questID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}

	var req QuestProgressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Increment <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "increment must be positive"})
		return
	}

	result, err := h.QuestService.IncrementProgress(c.Request.Context(), userID, questID, req.Increment)
	if err != nil {
		h.questError(c, userID, err)
		return
	}

	h.questResponse(c, userID, result)
}

// CompleteQuest завершает квест сразу, без инкрементов
func (h *Handler) CompleteQuest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || questID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}

	result, err := h.QuestService.CompleteQuest(c.Request.Context(), userID, questID)
	if err != nil {
		h.questError(c, userID, err)
		return
	}

	h.questResponse(c, userID, result)
}

func (h *Handler) questResponse(c *gin.Context, userID int64, result *service.QuestResult) {
	resp := gin.H{
		"user_quest": result.UserQuest,
		"quest":      result.Quest,
	}

	if result.XPAwarded > 0 {
		resp["xp_awarded"] = result.XPAwarded
		resp["total_xp"] = result.NewTotalXP

		unlocked, aerr := h.AchievementService.CheckAndUnlock(c.Request.Context(), userID)
		if aerr != nil {
			logger.Warn("achievement check failed", "user_id", userID, "err", aerr)
		}
		resp["new_achievements"] = unlocked
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) questError(c *gin.Context, userID int64, err error) {
	switch {
	case errors.Is(err, service.ErrQuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "quest already completed this period"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		logger.Error("quest operation failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
