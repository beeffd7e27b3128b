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
	"m42hub/internal/service"
)

type UserUsecase interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id uint64) (*model.User, bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, bool, error)
	EditInfo(ctx context.Context, patch model.UserInfoPatch, userID uint64) (*model.User, bool, error)
	ChangePassword(ctx context.Context, req dto.UserPasswordChangeRequest, userID uint64) (bool, error)
	ChangeProfilePic(ctx context.Context, file service.ImageFile, userID uint64) (*model.User, bool, error)
	ChangeStatus(ctx context.Context, userID uint64, active bool) (*model.User, bool, error)
}

type UserHandler struct {
	svc          UserUsecase
	maxImageSize int64
	log          *zap.Logger
}

func NewUserHandler(svc UserUsecase, maxImageSize int64, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, maxImageSize: maxImageSize, log: log}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, mapper.ToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	u, found, err := h.svc.FindByID(c.Request.Context(), userID)
	h.respondUser(c, u, found, err)
}

func (h *UserHandler) ByUsername(c *gin.Context) {
	u, found, err := h.svc.FindByUsername(c.Request.Context(), c.Param("username"))
	h.respondUser(c, u, found, err)
}

func (h *UserHandler) EditInfo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, found, err := h.svc.EditInfo(c.Request.Context(), mapper.ToUserInfoPatch(req), userID)
	h.respondUser(c, u, found, err)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UserPasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	found, err := h.svc.ChangePassword(c.Request.Context(), req, userID)
	switch {
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case err != nil:
		internalError(c, h.log, err)
	case !found:
		notFound(c)
	default:
		c.JSON(http.StatusOK, gin.H{"msg": "password changed"})
	}
}

func (h *UserHandler) ChangeProfilePic(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "file is required"})
		return
	}
	if h.maxImageSize > 0 && fh.Size > h.maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	u, found, err := h.svc.ChangeProfilePic(c.Request.Context(), service.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, userID)
	h.respondUser(c, u, found, err)
}

func (h *UserHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, found, err := h.svc.ChangeStatus(c.Request.Context(), id, *req.Active)
	h.respondUser(c, u, found, err)
}

func (h *UserHandler) respondUser(c *gin.Context, u *model.User, found bool, err error) {
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToUserResponse(u))
}
