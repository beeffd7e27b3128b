package model

import "time"

type User struct {
	ID              uint64 `gorm:"primaryKey"`
	Username        string `gorm:"uniqueIndex;size:32;not null"`
	Email           string `gorm:"uniqueIndex;size:64;not null"`
	Password        string `gorm:"size:255;not null"`
	FirstName       string `gorm:"size:64"`
	LastName        string `gorm:"size:64"`
	Biography       string `gorm:"type:text"`
	Discord         string `gorm:"size:255"`
	Linkedin        string `gorm:"size:255"`
	Github          string `gorm:"size:255"`
	PersonalWebsite string `gorm:"size:255"`
	ProfilePicURL   string `gorm:"size:512"`
	IsActive        bool   `gorm:"not null;default:true"`
	SystemRoleID    uint64
	SystemRole      *SystemRole `gorm:"foreignKey:SystemRoleID"`
	InterestRoles   []Role      `gorm:"many2many:user_interest_roles"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserInfoPatch is a selective profile update; nil means unchanged.
type UserInfoPatch struct {
	FirstName       *string
	LastName        *string
	Biography       *string
	Discord         *string
	Linkedin        *string
	Github          *string
	PersonalWebsite *string
	InterestRoleIDs []uint64
}

func (p UserInfoPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Biography != nil {
		cols["biography"] = *p.Biography
	}
	if p.Discord != nil {
		cols["discord"] = *p.Discord
	}
	if p.Linkedin != nil {
		cols["linkedin"] = *p.Linkedin
	}
	if p.Github != nil {
		cols["github"] = *p.Github
	}
	if p.PersonalWebsite != nil {
		cols["personal_website"] = *p.PersonalWebsite
	}
	return cols
}

type SystemRole struct {
	ID          uint64       `gorm:"primaryKey"`
	Name        string       `gorm:"uniqueIndex;size:32;not null"`
	Permissions []Permission `gorm:"many2many:system_role_permissions"`
}

type Permission struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

const (
	SystemRoleAdmin = "ADMIN"
	SystemRoleUser  = "USER"
)
