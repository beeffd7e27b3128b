package dto

// LookupRequest creates a Status, Complexity, Tool or Role.
type LookupRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=255"`
}

type StatusResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ComplexityResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoleResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TopicRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	HexColor string `json:"hexColor" binding:"required,hexcolor"`
}

type ChangeColorRequest struct {
	HexColor string `json:"hexColor" binding:"required,hexcolor"`
}

type TopicResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	HexColor string `json:"hexColor"`
}
