package dto

import "time"

type MemberRequest struct {
	ProjectID          uint64  `json:"projectId" binding:"required"`
	UserID             uint64  `json:"userId"`
	RoleID             uint64  `json:"roleId" binding:"required"`
	IsManager          bool    `json:"isManager"`
	MemberStatusID     *uint64 `json:"memberStatusId"`
	ApplicationMessage string  `json:"applicationMessage" binding:"max=2000"`
}

type MemberRejectRequest struct {
	ApplicationFeedback string `json:"applicationFeedback" binding:"required,max=2000"`
}

type MemberStatusResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type MemberResponse struct {
	ID                  uint64                `json:"id"`
	ProjectID           uint64                `json:"projectId"`
	User                *UserSummaryResponse  `json:"user"`
	Role                *RoleResponse         `json:"role"`
	IsManager           bool                  `json:"isManager"`
	MemberStatus        *MemberStatusResponse `json:"memberStatus"`
	ApplicationMessage  string                `json:"applicationMessage"`
	ApplicationFeedback string                `json:"applicationFeedback"`
	ApproverID          *uint64               `json:"approverId"`
	RejecterID          *uint64               `json:"rejecterId"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// MemberProjectResponse is a membership seen from the member's side.
type MemberProjectResponse struct {
	ID           uint64                   `json:"id"`
	Role         *RoleResponse            `json:"role"`
	IsManager    bool                     `json:"isManager"`
	MemberStatus *MemberStatusResponse    `json:"memberStatus"`
	Project      *ProjectListItemResponse `json:"project"`
}
