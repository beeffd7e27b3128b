package model

type Status struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"size:255"`
}

type Complexity struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"size:255"`
}

type Tool struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"size:255"`
}

type Role struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"size:255"`
}

type Topic struct {
	ID       uint64 `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;size:64;not null"`
	HexColor string `gorm:"size:7;not null;default:'#000000'"`
}

func ToolRefs(ids []uint64) []Tool {
	out := make([]Tool, 0, len(ids))
	for _, id := range ids {
		out = append(out, Tool{ID: id})
	}
	return out
}

func TopicRefs(ids []uint64) []Topic {
	out := make([]Topic, 0, len(ids))
	for _, id := range ids {
		out = append(out, Topic{ID: id})
	}
	return out
}

func RoleRefs(ids []uint64) []Role {
	out := make([]Role, 0, len(ids))
	for _, id := range ids {
		out = append(out, Role{ID: id})
	}
	return out
}
