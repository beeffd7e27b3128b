package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) withRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("SystemRole").Preload("InterestRoles")
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return conn(ctx, r.DB).Omit("SystemRole", "InterestRoles").Create(user).Error
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, bool, error) {
	var user model.User
	err := r.withRefs(conn(ctx, r.DB)).Where("username = ?", strings.ToLower(username)).First(&user).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// FindByLogin matches either username or email.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, bool, error) {
	var user model.User
	login = strings.ToLower(login)
	err := r.withRefs(conn(ctx, r.DB)).Where("username = ? OR email = ?", login, login).First(&user).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, bool, error) {
	var user model.User
	err := r.withRefs(forUpdate(ctx, conn(ctx, r.DB))).First(&user, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var list []model.User
	err := r.withRefs(conn(ctx, r.DB)).Order("id asc").Find(&list).Error
	return list, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, hash string) error {
	return conn(ctx, r.DB).Model(&model.User{}).Where("id = ?", userID).Update("password", hash).Error
}

func (r *UserRepository) UpdateProfilePic(ctx context.Context, userID uint64, url string) error {
	return conn(ctx, r.DB).Model(&model.User{}).Where("id = ?", userID).Update("profile_pic_url", url).Error
}

func (r *UserRepository) UpdateActive(ctx context.Context, userID uint64, active bool) error {
	return conn(ctx, r.DB).Model(&model.User{}).Where("id = ?", userID).Update("is_active", active).Error
}

// UpdateInfo writes the present profile columns and, when roleIDs is non-nil,
// replaces the interest roles with exactly those ids.
func (r *UserRepository) UpdateInfo(ctx context.Context, userID uint64, patch model.UserInfoPatch, roleIDs []uint64) error {
	db := conn(ctx, r.DB)
	if cols := patch.Columns(); len(cols) > 0 {
		if err := db.Model(&model.User{}).Where("id = ?", userID).Updates(cols).Error; err != nil {
			return err
		}
	}
	if roleIDs != nil {
		return replaceJoin(db, "user_interest_roles", "user_id", userID, "role_id", roleIDs)
	}
	return nil
}
