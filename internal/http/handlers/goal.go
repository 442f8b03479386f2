package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"defi_quest/internal/logger"
	"defi_quest/internal/progression"
	"defi_quest/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateGoal создаёт цель; сложность и награда фиксируются при создании
func (h *Handler) CreateGoal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in service.CreateGoalInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	goal, err := h.GoalService.CreateGoal(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal"})
			return
		}
		logger.Error("create goal failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create goal"})
		return
	}

	// создание цели может открыть ачивку (First Step и т.п.)
	unlocked, err := h.AchievementService.CheckAndUnlock(c.Request.Context(), userID)
	if err != nil {
		logger.Warn("achievement check failed", "user_id", userID, "err", err)
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal, "new_achievements": unlocked})
}

// ListGoals возвращает цели текущего пользователя
func (h *Handler) ListGoals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goals, err := h.GoalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

type GoalProgressRequest struct {
	Progress int `json:"progress"`
}

// UpdateGoalProgress выставляет прогресс цели; 100 завершает её
func (h *Handler) UpdateGoalProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || goalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req GoalProgressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	goal, err := h.GoalService.UpdateProgress(c.Request.Context(), userID, goalID, req.Progress)
	if err != nil {
		h.goalError(c, userID, err)
		return
	}

	if goal.Completed {
		// достигли 100 - сервис уже провёл транзакцию завершения
		unlocked, aerr := h.AchievementService.CheckAndUnlock(c.Request.Context(), userID)
		if aerr != nil {
			logger.Warn("achievement check failed", "user_id", userID, "err", aerr)
		}
		c.JSON(http.StatusOK, gin.H{"goal": goal, "new_achievements": unlocked})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// CompleteGoal завершает цель напрямую и начисляет XP
func (h *Handler) CompleteGoal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || goalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, newTotalXP, err := h.GoalService.CompleteGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		h.goalError(c, userID, err)
		return
	}

	unlocked, aerr := h.AchievementService.CheckAndUnlock(c.Request.Context(), userID)
	if aerr != nil {
		logger.Warn("achievement check failed", "user_id", userID, "err", aerr)
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":             goal,
		"xp_awarded":       goal.XPReward,
		"total_xp":         newTotalXP,
		"level":            progression.Level(newTotalXP),
		"new_achievements": unlocked,
	})
}

func (h *Handler) goalError(c *gin.Context, userID int64, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound), errors.Is(err, service.ErrForbidden):
		// чужие цели не раскрываем
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "goal already completed"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		logger.Error("goal operation failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
