package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"m42hub/internal/dto"
	"m42hub/internal/model"
)

// ImageFile is an uploaded image waiting to be stored.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UserService struct {
	tx       Transactor
	users    UserStore
	roles    RoleResolver
	auth     Authenticator
	hasher   PasswordHasher
	tokens   TokenStore
	uploader ImageUploader
	log      *zap.Logger
}

func NewUserService(tx Transactor, users UserStore, roles RoleResolver, auth Authenticator,
	hasher PasswordHasher, tokens TokenStore, uploader ImageUploader, log *zap.Logger) *UserService {
	return &UserService{
		tx:       tx,
		users:    users,
		roles:    roles,
		auth:     auth,
		hasher:   hasher,
		tokens:   tokens,
		uploader: uploader,
		log:      log,
	}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id uint64) (*model.User, bool, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, bool, error) {
	return s.users.FindByUsername(ctx, username)
}

// EditInfo merges the present profile fields. Interest roles, when present,
// replace the current set; ids that match no role are dropped.
func (s *UserService) EditInfo(ctx context.Context, patch model.UserInfoPatch, userID uint64) (*model.User, bool, error) {
	var found bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, ok, err := s.users.FindByID(ctx, userID)
		if err != nil || !ok {
			return err
		}
		found = true

		var roleIDs []uint64
		if patch.InterestRoleIDs != nil {
			roleIDs, err = s.resolveRoles(ctx, userID, patch.InterestRoleIDs)
			if err != nil {
				return err
			}
		}
		return s.users.UpdateInfo(ctx, userID, patch, roleIDs)
	})
	if err != nil || !found {
		return nil, false, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) resolveRoles(ctx context.Context, userID uint64, ids []uint64) ([]uint64, error) {
	roles, err := s.roles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve interest roles: %w", err)
	}
	known := make(map[uint64]struct{}, len(roles))
	resolved := make([]uint64, 0, len(roles))
	for _, r := range roles {
		known[r.ID] = struct{}{}
		resolved = append(resolved, r.ID)
	}
	var dropped []uint64
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		s.log.Warn("dropping unknown interest roles",
			zap.Uint64("user_id", userID), zap.Uint64s("role_ids", dropped))
	}
	return resolved, nil
}

// ChangePassword re-authenticates with the old password before storing the
// new hash. Wrong credentials return ErrBadCredentials and change nothing.
func (s *UserService) ChangePassword(ctx context.Context, req dto.UserPasswordChangeRequest, userID uint64) (bool, error) {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil || !found {
		return false, err
	}
	if _, err := s.auth.Authenticate(ctx, user.Username, req.OldPassword); err != nil {
		return true, err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return true, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return true, fmt.Errorf("update password: %w", err)
	}
	s.revoke(ctx, userID)
	return true, nil
}

// ChangeProfilePic uploads the image and stores the returned URL.
func (s *UserService) ChangeProfilePic(ctx context.Context, file ImageFile, userID uint64) (*model.User, bool, error) {
	_, found, err := s.users.FindByID(ctx, userID)
	if err != nil || !found {
		return nil, false, err
	}
	url, err := s.uploader.Upload(ctx, file.Name, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, true, fmt.Errorf("upload profile picture: %w", err)
	}
	if err := s.users.UpdateProfilePic(ctx, userID, url); err != nil {
		return nil, true, err
	}
	return s.users.FindByID(ctx, userID)
}

// ChangeStatus activates or deactivates an account. Deactivation ends the
// active session.
func (s *UserService) ChangeStatus(ctx context.Context, userID uint64, active bool) (*model.User, bool, error) {
	_, found, err := s.users.FindByID(ctx, userID)
	if err != nil || !found {
		return nil, false, err
	}
	if err := s.users.UpdateActive(ctx, userID, active); err != nil {
		return nil, true, err
	}
	if !active {
		s.revoke(ctx, userID)
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) revoke(ctx context.Context, userID uint64) {
	if err := s.tokens.Delete(ctx, userID); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("revoke session failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
}
