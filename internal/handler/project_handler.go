package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"m42hub/internal/dto"
	"m42hub/internal/mapper"
	"m42hub/internal/model"
)

type ProjectUsecase interface {
	List(ctx context.Context) ([]model.Project, error)
	FindByID(ctx context.Context, id uint64) (*model.Project, bool, error)
	Create(ctx context.Context, req dto.ProjectRequest, managerID uint64) (*model.Project, error)
	Update(ctx context.Context, id uint64, patch model.ProjectPatch) (*model.Project, bool, error)
}

type ProjectHandler struct {
	svc ProjectUsecase
	log *zap.Logger
}

func NewProjectHandler(svc ProjectUsecase, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, log: log}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	out := make([]dto.ProjectListItemResponse, 0, len(projects))
	for i := range projects {
		out = append(out, mapper.ToProjectListResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, found, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToProjectResponse(p))
}

// Create makes the caller the project's founding manager.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req, userID)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.ToProjectResponse(p))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, found, err := h.svc.Update(c.Request.Context(), id, mapper.BuildProjectPatch(req))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToProjectResponse(p))
}
