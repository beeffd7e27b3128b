package model

import "time"

// Fixed member status ids, seeded on migrate.
const (
	MemberStatusApproved uint64 = 1
	MemberStatusPending  uint64 = 2
	MemberStatusRejected uint64 = 3
)

type MemberStatus struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"uniqueIndex;size:32;not null"`
}

type Member struct {
	ID                  uint64        `gorm:"primaryKey"`
	ProjectID           uint64        `gorm:"not null;index"`
	UserID              uint64        `gorm:"not null;index"`
	User                *User         `gorm:"foreignKey:UserID"`
	RoleID              uint64        `gorm:"not null"`
	Role                *Role         `gorm:"foreignKey:RoleID"`
	IsManager           bool          `gorm:"not null;default:false"`
	MemberStatusID      uint64        `gorm:"not null;index"`
	MemberStatus        *MemberStatus `gorm:"foreignKey:MemberStatusID"`
	ApplicationMessage  string        `gorm:"type:text"`
	ApplicationFeedback string        `gorm:"type:text"`
	ApproverID          *uint64
	RejecterID          *uint64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MemberProject is a membership joined with the project it belongs to.
type MemberProject struct {
	Member  Member
	Project Project
}

// MemberOutbox records membership events for asynchronous delivery.
type MemberOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventID   string `gorm:"size:36;uniqueIndex;not null"`
	EventType string `gorm:"size:16;not null"` // applied / approved / rejected
	MemberID  uint64 `gorm:"not null;index"`
	ProjectID uint64 `gorm:"not null"`
	UserID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MemberOutbox) TableName() string { return "member_outbox" }

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

const (
	EventApplied  = "applied"
	EventApproved = "approved"
	EventRejected = "rejected"
)
