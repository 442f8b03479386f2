package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"defi_quest/internal/domain"
	"defi_quest/internal/logger"
	"defi_quest/internal/repository"

	"github.com/gin-gonic/gin"
)

const maxPostLen = 1000

type CreatePostRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// CreatePost публикует запись в ленту
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreatePostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > maxPostLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content must be 1-1000 chars"})
		return
	}

	postType := domain.PostType(req.Type)
	switch postType {
	case domain.PostAchievement, domain.PostGoal, domain.PostMilestone, domain.PostUpdate:
	case "":
		postType = domain.PostUpdate
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post type"})
		return
	}

	post := &domain.SocialPost{
		UserID:  userID,
		Content: content,
		Type:    postType,
	}
	if err := h.SocialRepo.CreatePost(c.Request.Context(), post); err != nil {
		logger.Error("create post failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetFeed возвращает ленту публикаций, новые первыми
func (h *Handler) GetFeed(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		offset = n
	}

	posts, err := h.SocialRepo.GetFeed(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("feed failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type InteractRequest struct {
	Type    string  `json:"type"`
	Content *string `json:"content,omitempty"`
}

// Interact обрабатывает лайк/комментарий/репост публикации
func (h *Handler) Interact(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req InteractRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	interactionType := domain.InteractionType(req.Type)
	switch interactionType {
	case domain.InteractionLike, domain.InteractionShare:
	case domain.InteractionComment:
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "comment requires content"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction type"})
		return
	}

	interaction := &domain.SocialInteraction{
		UserID:  userID,
		PostID:  postID,
		Type:    interactionType,
		Content: req.Content,
	}
	post, err := h.SocialRepo.AddInteraction(c.Request.Context(), interaction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logger.Error("interaction failed", "user_id", userID, "post_id", postID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save interaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post, "interaction": interaction})
}
