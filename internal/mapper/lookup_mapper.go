package mapper

import (
	"m42hub/internal/dto"
	"m42hub/internal/model"
)

func ToStatus(req dto.LookupRequest) *model.Status {
	return &model.Status{Name: req.Name, Description: req.Description}
}

func ToStatusResponse(s *model.Status) dto.StatusResponse {
	return dto.StatusResponse{ID: s.ID, Name: s.Name, Description: s.Description}
}

func ToComplexity(req dto.LookupRequest) *model.Complexity {
	return &model.Complexity{Name: req.Name, Description: req.Description}
}

func ToComplexityResponse(c *model.Complexity) dto.ComplexityResponse {
	return dto.ComplexityResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func ToTool(req dto.LookupRequest) *model.Tool {
	return &model.Tool{Name: req.Name, Description: req.Description}
}

func ToToolResponse(t *model.Tool) dto.ToolResponse {
	return dto.ToolResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

func ToRole(req dto.LookupRequest) *model.Role {
	return &model.Role{Name: req.Name, Description: req.Description}
}

func ToRoleResponse(r *model.Role) dto.RoleResponse {
	return dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}

func ToTopic(req dto.TopicRequest) *model.Topic {
	return &model.Topic{Name: req.Name, HexColor: req.HexColor}
}

func ToTopicResponse(t *model.Topic) dto.TopicResponse {
	return dto.TopicResponse{ID: t.ID, Name: t.Name, HexColor: t.HexColor}
}
