package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"m42hub/internal/dto"
	"m42hub/internal/mapper"
	"m42hub/internal/model"
	"m42hub/internal/pkg"
	"m42hub/internal/service"
)

type AuthUsecase interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*pkg.Pair, error)
	Logout(ctx context.Context, userID uint64) error
	Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error)
}

type AuthHandler struct {
	svc AuthUsecase
	log *zap.Logger
}

func NewAuthHandler(svc AuthUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if errors.Is(err, service.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		return
	}
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.ToUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), req)
	if errors.Is(err, service.ErrBadCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, service.ErrInvalidRefresh) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
