package model

import "time"

type Project struct {
	ID             uint64 `gorm:"primaryKey"`
	Name           string `gorm:"size:128;not null"`
	Summary        string `gorm:"size:512"`
	Description    string `gorm:"type:text"`
	StatusID       *uint64
	Status         *Status `gorm:"foreignKey:StatusID"`
	ComplexityID   *uint64
	Complexity     *Complexity `gorm:"foreignKey:ComplexityID"`
	ImageURL       string      `gorm:"size:512"`
	StartDate      *time.Time
	EndDate        *time.Time
	Tools          []Tool   `gorm:"many2many:project_tools"`
	Topics         []Topic  `gorm:"many2many:project_topics"`
	UnfilledRoles  []Role   `gorm:"many2many:project_unfilled_roles"`
	Members        []Member `gorm:"foreignKey:ProjectID"`
	Discord        string   `gorm:"size:255"`
	Github         string   `gorm:"size:255"`
	ProjectWebsite string   `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectPatch carries a selective update: nil fields are left untouched,
// non-nil fields replace the stored value. A non-nil empty id slice clears
// the association.
type ProjectPatch struct {
	Name            *string
	Summary         *string
	Description     *string
	StatusID        *uint64
	ComplexityID    *uint64
	ImageURL        *string
	StartDate       *time.Time
	EndDate         *time.Time
	ToolIDs         []uint64
	TopicIDs        []uint64
	UnfilledRoleIDs []uint64
	Discord         *string
	Github          *string
	ProjectWebsite  *string
}

// Columns returns the scalar columns present in the patch, keyed by column name.
func (p ProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Summary != nil {
		cols["summary"] = *p.Summary
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.StatusID != nil {
		cols["status_id"] = *p.StatusID
	}
	if p.ComplexityID != nil {
		cols["complexity_id"] = *p.ComplexityID
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Discord != nil {
		cols["discord"] = *p.Discord
	}
	if p.Github != nil {
		cols["github"] = *p.Github
	}
	if p.ProjectWebsite != nil {
		cols["project_website"] = *p.ProjectWebsite
	}
	return cols
}
