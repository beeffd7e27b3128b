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

type LookupUsecase[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint64) (*T, bool, error)
	Save(ctx context.Context, v *T) (*T, error)
}

// LookupHandler serves list/get/create for one reference table.
type LookupHandler[T, Req, Resp any] struct {
	svc     LookupUsecase[T]
	toModel func(Req) *T
	toResp  func(*T) Resp
	log     *zap.Logger
}

func NewLookupHandler[T, Req, Resp any](svc LookupUsecase[T], toModel func(Req) *T, toResp func(*T) Resp, log *zap.Logger) *LookupHandler[T, Req, Resp] {
	return &LookupHandler[T, Req, Resp]{svc: svc, toModel: toModel, toResp: toResp, log: log}
}

func (h *LookupHandler[T, Req, Resp]) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	out := make([]Resp, 0, len(list))
	for i := range list {
		out = append(out, h.toResp(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *LookupHandler[T, Req, Resp]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, found, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, h.toResp(v))
}

func (h *LookupHandler[T, Req, Resp]) Create(c *gin.Context) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	v, err := h.svc.Save(c.Request.Context(), h.toModel(req))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResp(v))
}

func NewStatusHandler(svc LookupUsecase[model.Status], log *zap.Logger) *LookupHandler[model.Status, dto.LookupRequest, dto.StatusResponse] {
	return NewLookupHandler(svc, mapper.ToStatus, mapper.ToStatusResponse, log)
}

func NewComplexityHandler(svc LookupUsecase[model.Complexity], log *zap.Logger) *LookupHandler[model.Complexity, dto.LookupRequest, dto.ComplexityResponse] {
	return NewLookupHandler(svc, mapper.ToComplexity, mapper.ToComplexityResponse, log)
}

func NewToolHandler(svc LookupUsecase[model.Tool], log *zap.Logger) *LookupHandler[model.Tool, dto.LookupRequest, dto.ToolResponse] {
	return NewLookupHandler(svc, mapper.ToTool, mapper.ToToolResponse, log)
}

func NewRoleHandler(svc LookupUsecase[model.Role], log *zap.Logger) *LookupHandler[model.Role, dto.LookupRequest, dto.RoleResponse] {
	return NewLookupHandler(svc, mapper.ToRole, mapper.ToRoleResponse, log)
}

type TopicUsecase interface {
	LookupUsecase[model.Topic]
	ChangeColor(ctx context.Context, id uint64, hexColor string) (*model.Topic, bool, error)
}

type TopicHandler struct {
	*LookupHandler[model.Topic, dto.TopicRequest, dto.TopicResponse]
	topics TopicUsecase
}

func NewTopicHandler(svc TopicUsecase, log *zap.Logger) *TopicHandler {
	return &TopicHandler{
		LookupHandler: NewLookupHandler[model.Topic](svc, mapper.ToTopic, mapper.ToTopicResponse, log),
		topics:        svc,
	}
}

func (h *TopicHandler) ChangeColor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ChangeColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, found, err := h.topics.ChangeColor(c.Request.Context(), id, req.HexColor)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToTopicResponse(t))
}

// LookupRoutes is the route set shared by every reference table handler.
type LookupRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
}
