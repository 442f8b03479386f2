package handlers

import (
	"net/http"

	"defi_quest/internal/logger"

	"github.com/gin-gonic/gin"
)

// ListAchievements возвращает все активные ачивки
func (h *Handler) ListAchievements(c *gin.Context) {
	achievements, err := h.AchievementService.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("list achievements failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list achievements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// ListMyAchievements возвращает открытые ачивки текущего пользователя
func (h *Handler) ListMyAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	achievements, err := h.AchievementService.ListUnlocked(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list unlocked achievements failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list achievements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// CheckAchievements прогоняет правила и открывает заработанные ачивки
func (h *Handler) CheckAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	unlocked, err := h.AchievementService.CheckAndUnlock(c.Request.Context(), userID)
	if err != nil {
		logger.Error("achievement check failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "achievement check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"new_achievements": unlocked})
}
