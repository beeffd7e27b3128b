package dto

import "time"

type ProjectRequest struct {
	Name            string     `json:"name" binding:"required,max=128"`
	Summary         string     `json:"summary" binding:"required,max=512"`
	Description     string     `json:"description"`
	StatusID        uint64     `json:"statusId" binding:"required"`
	ComplexityID    uint64     `json:"complexityId" binding:"required"`
	ImageURL        string     `json:"imageUrl" binding:"omitempty,url"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	ToolIDs         []uint64   `json:"toolIds"`
	TopicIDs        []uint64   `json:"topicIds"`
	UnfilledRoleIDs []uint64   `json:"unfilledRoleIds"`
	ManagerRoleID   uint64     `json:"managerRoleId" binding:"required"`
	Discord         string     `json:"discord"`
	Github          string     `json:"github"`
	ProjectWebsite  string     `json:"projectWebsite"`
}

// ProjectUpdateRequest fields are all optional. A JSON null or a missing key
// leaves the stored value unchanged; an empty array clears the association.
type ProjectUpdateRequest struct {
	Name            *string    `json:"name" binding:"omitempty,max=128"`
	Summary         *string    `json:"summary" binding:"omitempty,max=512"`
	Description     *string    `json:"description"`
	StatusID        *uint64    `json:"statusId"`
	ComplexityID    *uint64    `json:"complexityId"`
	ImageURL        *string    `json:"imageUrl"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	ToolIDs         *[]uint64  `json:"toolIds"`
	TopicIDs        *[]uint64  `json:"topicIds"`
	UnfilledRoleIDs *[]uint64  `json:"unfilledRoleIds"`
	Discord         *string    `json:"discord"`
	Github          *string    `json:"github"`
	ProjectWebsite  *string    `json:"projectWebsite"`
}

type ProjectResponse struct {
	ID             uint64              `json:"id"`
	Name           string              `json:"name"`
	Summary        string              `json:"summary"`
	Description    string              `json:"description"`
	Status         *StatusResponse     `json:"status"`
	ImageURL       string              `json:"imageUrl"`
	Complexity     *ComplexityResponse `json:"complexity"`
	CreationDate   time.Time           `json:"creationDate"`
	StartDate      *time.Time          `json:"startDate"`
	EndDate        *time.Time          `json:"endDate"`
	Tools          []ToolResponse      `json:"tools"`
	Topics         []TopicResponse     `json:"topics"`
	UnfilledRoles  []RoleResponse      `json:"unfilledRoles"`
	Members        []MemberResponse    `json:"members"`
	Discord        string              `json:"discord"`
	Github         string              `json:"github"`
	ProjectWebsite string              `json:"projectWebsite"`
}

type ProjectListItemResponse struct {
	ID                uint64     `json:"id"`
	Name              string     `json:"name"`
	Summary           string     `json:"summary"`
	StatusName        *string    `json:"statusName"`
	ImageURL          string     `json:"imageUrl"`
	ComplexityName    *string    `json:"complexityName"`
	CreationDate      time.Time  `json:"creationDate"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	ToolNames         []string   `json:"toolNames"`
	TopicNames        []string   `json:"topicNames"`
	UnfilledRoleNames []string   `json:"unfilledRoleNames"`
	Manager           *string    `json:"manager"`
	Discord           string     `json:"discord"`
	Github            string     `json:"github"`
	ProjectWebsite    string     `json:"projectWebsite"`
}
