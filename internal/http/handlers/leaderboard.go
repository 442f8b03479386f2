package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"defi_quest/internal/logger"
	"defi_quest/internal/service"

	"github.com/gin-gonic/gin"
)

// Leaderboard возвращает топ по xp / streak / consistency
func (h *Handler) Leaderboard(c *gin.Context) {
	lbType := c.DefaultQuery("type", "xp")

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	entries, err := h.LeaderboardService.GetTop(c.Request.Context(), lbType, limit)
	if err != nil {
		logger.Error("leaderboard failed", "type", lbType, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": lbType, "entries": entries})
}

// MyRank возвращает место текущего пользователя в рейтинге
func (h *Handler) MyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lbType := c.DefaultQuery("type", "xp")

	rank, err := h.LeaderboardService.GetRank(c.Request.Context(), userID, lbType)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not ranked"})
			return
		}
		logger.Error("rank lookup failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": lbType, "rank": rank})
}
