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

type MemberUsecase interface {
	List(ctx context.Context) ([]model.Member, error)
	FindByID(ctx context.Context, id uint64) (*model.Member, bool, error)
	FindByUsername(ctx context.Context, username string) ([]model.MemberProject, error)
	Save(ctx context.Context, m *model.Member) (*model.Member, error)
	Apply(ctx context.Context, req dto.MemberRequest, userID uint64) (*model.Member, error)
	Approve(ctx context.Context, memberID, approverID uint64) (*model.Member, bool, error)
	Reject(ctx context.Context, memberID uint64, feedback string, rejecterID uint64) (*model.Member, bool, error)
}

type MemberHandler struct {
	svc MemberUsecase
	log *zap.Logger
}

func NewMemberHandler(svc MemberUsecase, log *zap.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, log: log}
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, mapper.ToMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, found, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToMemberResponse(m))
}

func (h *MemberHandler) ByUsername(c *gin.Context) {
	list, err := h.svc.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	out := make([]dto.MemberProjectResponse, 0, len(list))
	for i := range list {
		out = append(out, mapper.ToMemberProjectResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a member exactly as described by the body.
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "userId is required"})
		return
	}
	m, err := h.svc.Save(c.Request.Context(), mapper.ToMember(req))
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.ToMemberResponse(m))
}

// Apply submits an application on behalf of the caller.
func (h *MemberHandler) Apply(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.Apply(c.Request.Context(), req, userID)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.ToMemberResponse(m))
}

func (h *MemberHandler) Approve(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, found, err := h.svc.Approve(c.Request.Context(), id, userID)
	h.respondDecision(c, m, found, err)
}

func (h *MemberHandler) Reject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, found, err := h.svc.Reject(c.Request.Context(), id, req.ApplicationFeedback, userID)
	h.respondDecision(c, m, found, err)
}

func (h *MemberHandler) respondDecision(c *gin.Context, m *model.Member, found bool, err error) {
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, mapper.ToMemberResponse(m))
}
