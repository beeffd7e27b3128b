package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserInfoRequest is a partial profile update; nil fields are left alone.
type UserInfoRequest struct {
	FirstName       *string   `json:"firstName" binding:"omitempty,max=64"`
	LastName        *string   `json:"lastName" binding:"omitempty,max=64"`
	Biography       *string   `json:"biography"`
	Discord         *string   `json:"discord"`
	Linkedin        *string   `json:"linkedin"`
	Github          *string   `json:"github"`
	PersonalWebsite *string   `json:"personalWebsite"`
	InterestRoles   *[]uint64 `json:"interestRoles"`
}

type UserPasswordChangeRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

type UserStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type UserSummaryResponse struct {
	ID            uint64 `json:"id"`
	Username      string `json:"username"`
	ProfilePicURL string `json:"profilePicUrl"`
}

type UserResponse struct {
	ID              uint64         `json:"id"`
	Username        string         `json:"username"`
	Email           string         `json:"email"`
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Biography       string         `json:"biography"`
	Discord         string         `json:"discord"`
	Linkedin        string         `json:"linkedin"`
	Github          string         `json:"github"`
	PersonalWebsite string         `json:"personalWebsite"`
	ProfilePicURL   string         `json:"profilePicUrl"`
	IsActive        bool           `json:"isActive"`
	SystemRole      *string        `json:"systemRole"`
	InterestRoles   []RoleResponse `json:"interestRoles"`
	CreatedAt       time.Time      `json:"createdAt"`
}
