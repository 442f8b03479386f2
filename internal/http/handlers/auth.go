package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"defi_quest/internal/domain"
	"defi_quest/internal/logger"
	"defi_quest/internal/repository"
	"defi_quest/internal/service"
	"defi_quest/internal/wallet"

	"github.com/gin-gonic/gin"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup регистрирует пользователя по логину и паролю
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-30 chars (letters, digits, underscore)"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 chars"})
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Level:        1,
	}

	ctx := c.Request.Context()
	if err := h.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		logger.Error("signup: create user failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login проверяет пароль и выдаёт JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		// одинаковый ответ для несуществующего логина и неверного пароля
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !service.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := h.UserRepo.TouchLastActive(ctx, user.ID); err != nil {
		logger.Warn("login: touch last_active failed", "err", err)
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type WalletConnectRequest struct {
	Account wallet.Account      `json:"account"`
	Proof   wallet.ConnectProof `json:"proof"`
}

// WalletConnect логинит (или заводит) пользователя по подписанному
// кошельком пруфу владения адресом
func (h *Handler) WalletConnect(c *gin.Context) {
	var req WalletConnectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if !wallet.ValidateAddress(req.Account.Address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
		return
	}

	if err := wallet.VerifyProof(req.Account, req.Proof, h.WalletDomain); err != nil {
		logger.Warn("wallet connect: proof rejected", "address", req.Account.Address, "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid wallet proof"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByWallet(ctx, req.Account.Address)
	if errors.Is(err, repository.ErrNotFound) {
		// первый вход с этим кошельком - заводим аккаунт
		addr := req.Account.Address
		user = &domain.User{
			Username:      fmt.Sprintf("wallet_%s", addr[2:10]),
			WalletAddress: &addr,
			Level:         1,
		}
		if err := h.UserRepo.Create(ctx, user); err != nil {
			logger.Error("wallet connect: create user failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	} else if err != nil {
		logger.Error("wallet connect: lookup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
