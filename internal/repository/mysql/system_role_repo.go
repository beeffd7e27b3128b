package mysql

import (
	"context"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

type SystemRoleRepository struct {
	DB *gorm.DB
}

func (r *SystemRoleRepository) FindByName(ctx context.Context, name string) (*model.SystemRole, bool, error) {
	var role model.SystemRole
	err := conn(ctx, r.DB).Where("name = ?", name).First(&role).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &role, true, nil
}

// ListWithPermissions returns every system role with its granted permissions.
func (r *SystemRoleRepository) ListWithPermissions(ctx context.Context) ([]model.SystemRole, error) {
	var roles []model.SystemRole
	err := conn(ctx, r.DB).Preload("Permissions").Order("id asc").Find(&roles).Error
	return roles, err
}
