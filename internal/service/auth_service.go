package service

import (
	"context"
	"fmt"

	"m42hub/internal/dto"
	"m42hub/internal/mapper"
	"m42hub/internal/model"
	"m42hub/internal/pkg"
)

type AuthService struct {
	users  UserStore
	roles  SystemRoleStore
	hasher PasswordHasher
	tokens TokenStore
	issuer TokenIssuer
}

func NewAuthService(users UserStore, roles SystemRoleStore, hasher PasswordHasher, tokens TokenStore, issuer TokenIssuer) *AuthService {
	return &AuthService{users: users, roles: roles, hasher: hasher, tokens: tokens, issuer: issuer}
}

// Register creates an active account with the USER system role.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	user := mapper.ToUser(req)

	for _, login := range []string{user.Username, user.Email} {
		_, taken, err := s.users.FindByLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUserExists
		}
	}

	role, found, err := s.roles.FindByName(ctx, model.SystemRoleUser)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrDefaultRoleUnset
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	user.SystemRoleID = role.ID

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.SystemRole = role
	return user, nil
}

// Authenticate checks a username (or email) and password. Unknown users,
// inactive accounts and wrong passwords all yield ErrBadCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, found, err := s.users.FindByLogin(ctx, username)
	if err != nil {
		return nil, err
	}
	if !found || !user.IsActive || !s.hasher.Compare(user.Password, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// Login authenticates and registers the new access token as the only active session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*pkg.Pair, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	return s.tokens.Delete(ctx, userID)
}

// Refresh exchanges the refresh token of the live session for a new pair
// using the user's current role. The old refresh token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	live, err := s.tokens.MatchRefresh(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrInvalidRefresh
	}
	user, found, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !found || !user.IsActive {
		return nil, ErrInvalidRefresh
	}
	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *model.User) (*pkg.Pair, error) {
	role := ""
	if user.SystemRole != nil {
		role = user.SystemRole.Name
	}
	pair, err := s.issuer.GeneratePair(user.ID, user.Username, role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.tokens.Save(ctx, user.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}
