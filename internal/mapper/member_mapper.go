package mapper

import (
	"m42hub/internal/dto"
	"m42hub/internal/model"
)

// ToMember builds a member from an administrative request. Status defaults to pending.
func ToMember(req dto.MemberRequest) *model.Member {
	status := model.MemberStatusPending
	if req.MemberStatusID != nil {
		status = *req.MemberStatusID
	}
	return &model.Member{
		ProjectID:          req.ProjectID,
		UserID:             req.UserID,
		RoleID:             req.RoleID,
		IsManager:          req.IsManager,
		MemberStatusID:     status,
		ApplicationMessage: req.ApplicationMessage,
	}
}

// ToMemberApply builds a self-application for userID. The request cannot
// choose the status, the user or the manager flag.
func ToMemberApply(req dto.MemberRequest, userID uint64) *model.Member {
	return &model.Member{
		ProjectID:          req.ProjectID,
		UserID:             userID,
		RoleID:             req.RoleID,
		IsManager:          false,
		MemberStatusID:     model.MemberStatusPending,
		ApplicationMessage: req.ApplicationMessage,
	}
}

func ToMemberResponse(m *model.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:                  m.ID,
		ProjectID:           m.ProjectID,
		IsManager:           m.IsManager,
		ApplicationMessage:  m.ApplicationMessage,
		ApplicationFeedback: m.ApplicationFeedback,
		ApproverID:          m.ApproverID,
		RejecterID:          m.RejecterID,
		CreatedAt:           m.CreatedAt,
	}
	if m.User != nil {
		u := ToUserSummaryResponse(m.User)
		resp.User = &u
	} else {
		resp.User = &dto.UserSummaryResponse{ID: m.UserID}
	}
	if m.Role != nil {
		r := ToRoleResponse(m.Role)
		resp.Role = &r
	} else {
		resp.Role = &dto.RoleResponse{ID: m.RoleID}
	}
	resp.MemberStatus = toMemberStatusResponse(m)
	return resp
}

func ToMemberProjectResponse(mp *model.MemberProject) dto.MemberProjectResponse {
	m := &mp.Member
	resp := dto.MemberProjectResponse{
		ID:           m.ID,
		IsManager:    m.IsManager,
		MemberStatus: toMemberStatusResponse(m),
	}
	if m.Role != nil {
		r := ToRoleResponse(m.Role)
		resp.Role = &r
	} else {
		resp.Role = &dto.RoleResponse{ID: m.RoleID}
	}
	project := ToProjectListResponse(&mp.Project)
	resp.Project = &project
	return resp
}

func toMemberStatusResponse(m *model.Member) *dto.MemberStatusResponse {
	if m.MemberStatus != nil {
		return &dto.MemberStatusResponse{ID: m.MemberStatus.ID, Name: m.MemberStatus.Name}
	}
	return &dto.MemberStatusResponse{ID: m.MemberStatusID}
}
