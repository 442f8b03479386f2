package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"defi_quest/internal/progression"
	"defi_quest/internal/repository"

	"github.com/gin-gonic/gin"
)

// Me возвращает профиль текущего пользователя с производными
// прогрессии (XP до следующего уровня, процент прогресса)
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":             user,
		"xp_to_next_level": progression.XPToNextLevel(user.TotalXP),
		"level_progress":   progression.LevelProgressPercent(user.TotalXP),
	})
}

// GetUser возвращает публичный профиль пользователя по ID
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"username":          user.Username,
		"total_xp":          user.TotalXP,
		"level":             user.Level,
		"current_streak":    user.CurrentStreak,
		"longest_streak":    user.LongestStreak,
		"goals_completed":   user.GoalsCompleted,
		"consistency_score": user.ConsistencyScore,
		"join_date":         user.JoinDate,
	})
}
