package mapper

import (
	"m42hub/internal/dto"
	"m42hub/internal/model"
)

// BuildProject assembles a new project together with its founding member.
// The manager's role is never advertised as unfilled.
func BuildProject(req dto.ProjectRequest, managerID uint64) *model.Project {
	statusID := req.StatusID
	complexityID := req.ComplexityID

	unfilled := make([]uint64, 0, len(req.UnfilledRoleIDs))
	for _, id := range req.UnfilledRoleIDs {
		if id == req.ManagerRoleID {
			continue
		}
		unfilled = append(unfilled, id)
	}

	project := &model.Project{
		Name:           req.Name,
		Summary:        req.Summary,
		Description:    req.Description,
		StatusID:       &statusID,
		ComplexityID:   &complexityID,
		ImageURL:       req.ImageURL,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Tools:          model.ToolRefs(req.ToolIDs),
		Topics:         model.TopicRefs(req.TopicIDs),
		UnfilledRoles:  model.RoleRefs(unfilled),
		Discord:        req.Discord,
		Github:         req.Github,
		ProjectWebsite: req.ProjectWebsite,
	}

	project.Members = []model.Member{{
		IsManager:      true,
		RoleID:         req.ManagerRoleID,
		UserID:         managerID,
		MemberStatusID: model.MemberStatusPending,
	}}

	return project
}

// BuildProjectPatch copies through only the fields present in req.
func BuildProjectPatch(req dto.ProjectUpdateRequest) model.ProjectPatch {
	patch := model.ProjectPatch{
		Name:           req.Name,
		Summary:        req.Summary,
		Description:    req.Description,
		StatusID:       req.StatusID,
		ComplexityID:   req.ComplexityID,
		ImageURL:       req.ImageURL,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Discord:        req.Discord,
		Github:         req.Github,
		ProjectWebsite: req.ProjectWebsite,
	}
	patch.ToolIDs = presentIDs(req.ToolIDs)
	patch.TopicIDs = presentIDs(req.TopicIDs)
	patch.UnfilledRoleIDs = presentIDs(req.UnfilledRoleIDs)
	return patch
}

// presentIDs keeps the distinction between "absent" (nil) and "clear" (empty, non-nil).
func presentIDs(ids *[]uint64) []uint64 {
	if ids == nil {
		return nil
	}
	out := make([]uint64, len(*ids))
	copy(out, *ids)
	return out
}

func ToProjectResponse(p *model.Project) dto.ProjectResponse {
	var status *dto.StatusResponse
	if p.Status != nil {
		s := ToStatusResponse(p.Status)
		status = &s
	}
	var complexity *dto.ComplexityResponse
	if p.Complexity != nil {
		c := ToComplexityResponse(p.Complexity)
		complexity = &c
	}

	tools := make([]dto.ToolResponse, 0, len(p.Tools))
	for i := range p.Tools {
		tools = append(tools, ToToolResponse(&p.Tools[i]))
	}
	topics := make([]dto.TopicResponse, 0, len(p.Topics))
	for i := range p.Topics {
		topics = append(topics, ToTopicResponse(&p.Topics[i]))
	}
	roles := make([]dto.RoleResponse, 0, len(p.UnfilledRoles))
	for i := range p.UnfilledRoles {
		roles = append(roles, ToRoleResponse(&p.UnfilledRoles[i]))
	}
	members := make([]dto.MemberResponse, 0, len(p.Members))
	for i := range p.Members {
		members = append(members, ToMemberResponse(&p.Members[i]))
	}

	return dto.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Summary:        p.Summary,
		Description:    p.Description,
		Status:         status,
		ImageURL:       p.ImageURL,
		Complexity:     complexity,
		CreationDate:   p.CreatedAt,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Tools:          tools,
		Topics:         topics,
		UnfilledRoles:  roles,
		Members:        members,
		Discord:        p.Discord,
		Github:         p.Github,
		ProjectWebsite: p.ProjectWebsite,
	}
}

func ToProjectListResponse(p *model.Project) dto.ProjectListItemResponse {
	var statusName, complexityName *string
	if p.Status != nil {
		name := p.Status.Name
		statusName = &name
	}
	if p.Complexity != nil {
		name := p.Complexity.Name
		complexityName = &name
	}

	toolNames := make([]string, 0, len(p.Tools))
	for _, t := range p.Tools {
		toolNames = append(toolNames, t.Name)
	}
	topicNames := make([]string, 0, len(p.Topics))
	for _, t := range p.Topics {
		topicNames = append(topicNames, t.Name)
	}
	roleNames := make([]string, 0, len(p.UnfilledRoles))
	for _, r := range p.UnfilledRoles {
		roleNames = append(roleNames, r.Name)
	}

	return dto.ProjectListItemResponse{
		ID:                p.ID,
		Name:              p.Name,
		Summary:           p.Summary,
		StatusName:        statusName,
		ImageURL:          p.ImageURL,
		ComplexityName:    complexityName,
		CreationDate:      p.CreatedAt,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		ToolNames:         toolNames,
		TopicNames:        topicNames,
		UnfilledRoleNames: roleNames,
		Manager:           managerName(p.Members),
		Discord:           p.Discord,
		Github:            p.Github,
		ProjectWebsite:    p.ProjectWebsite,
	}
}

// managerName returns the username of the first manager, or nil.
func managerName(members []model.Member) *string {
	for _, m := range members {
		if !m.IsManager {
			continue
		}
		if m.User == nil {
			return nil
		}
		name := m.User.Username
		return &name
	}
	return nil
}

// ProjectRequestFromResponse rebuilds a creation request from a response,
// keeping every identifier reference. The manager role comes from the first
// manager member, if any.
func ProjectRequestFromResponse(r dto.ProjectResponse) dto.ProjectRequest {
	req := dto.ProjectRequest{
		Name:           r.Name,
		Summary:        r.Summary,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Discord:        r.Discord,
		Github:         r.Github,
		ProjectWebsite: r.ProjectWebsite,
	}
	if r.Status != nil {
		req.StatusID = r.Status.ID
	}
	if r.Complexity != nil {
		req.ComplexityID = r.Complexity.ID
	}
	req.ToolIDs = make([]uint64, 0, len(r.Tools))
	for _, t := range r.Tools {
		req.ToolIDs = append(req.ToolIDs, t.ID)
	}
	req.TopicIDs = make([]uint64, 0, len(r.Topics))
	for _, t := range r.Topics {
		req.TopicIDs = append(req.TopicIDs, t.ID)
	}
	req.UnfilledRoleIDs = make([]uint64, 0, len(r.UnfilledRoles))
	for _, role := range r.UnfilledRoles {
		req.UnfilledRoleIDs = append(req.UnfilledRoleIDs, role.ID)
	}
	for _, m := range r.Members {
		if m.IsManager && m.Role != nil {
			req.ManagerRoleID = m.Role.ID
			break
		}
	}
	return req
}
