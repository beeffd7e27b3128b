package mapper

import (
	"strings"

	"m42hub/internal/dto"
	"m42hub/internal/model"
)

// ToUser maps a registration request. The password is still plain text here.
func ToUser(req dto.RegisterRequest) *model.User {
	return &model.User{
		Username: strings.ToLower(req.Username),
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
		IsActive: true,
	}
}

func ToUserInfoPatch(req dto.UserInfoRequest) model.UserInfoPatch {
	return model.UserInfoPatch{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Biography:       req.Biography,
		Discord:         req.Discord,
		Linkedin:        req.Linkedin,
		Github:          req.Github,
		PersonalWebsite: req.PersonalWebsite,
		InterestRoleIDs: presentIDs(req.InterestRoles),
	}
}

func ToUserSummaryResponse(u *model.User) dto.UserSummaryResponse {
	return dto.UserSummaryResponse{ID: u.ID, Username: u.Username, ProfilePicURL: u.ProfilePicURL}
}

func ToUserResponse(u *model.User) dto.UserResponse {
	var systemRole *string
	if u.SystemRole != nil {
		name := u.SystemRole.Name
		systemRole = &name
	}
	roles := make([]dto.RoleResponse, 0, len(u.InterestRoles))
	for i := range u.InterestRoles {
		roles = append(roles, ToRoleResponse(&u.InterestRoles[i]))
	}
	return dto.UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Biography:       u.Biography,
		Discord:         u.Discord,
		Linkedin:        u.Linkedin,
		Github:          u.Github,
		PersonalWebsite: u.PersonalWebsite,
		ProfilePicURL:   u.ProfilePicURL,
		IsActive:        u.IsActive,
		SystemRole:      systemRole,
		InterestRoles:   roles,
		CreatedAt:       u.CreatedAt,
	}
}
