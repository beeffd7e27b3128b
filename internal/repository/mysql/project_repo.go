package mysql

import (
	"context"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func (r *ProjectRepository) detail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Status").
		Preload("Complexity").
		Preload("Tools").
		Preload("Topics").
		Preload("UnfilledRoles").
		Preload("Members").
		Preload("Members.User").
		Preload("Members.Role").
		Preload("Members.MemberStatus")
}

// Create inserts the project row and its tool/topic/role references. Members
// are inserted separately by the caller within the same transaction.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return conn(ctx, r.DB).
		Omit("Members", "Tools.*", "Topics.*", "UnfilledRoles.*").
		Create(p).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint64) (*model.Project, bool, error) {
	var p model.Project
	err := r.detail(conn(ctx, r.DB)).First(&p, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// FindByIDForUpdate loads the bare project row, locking it inside a transaction.
func (r *ProjectRepository) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Project, bool, error) {
	var p model.Project
	err := forUpdate(ctx, conn(ctx, r.DB)).First(&p, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var list []model.Project
	err := conn(ctx, r.DB).
		Preload("Status").
		Preload("Complexity").
		Preload("Tools").
		Preload("Topics").
		Preload("UnfilledRoles").
		Preload("Members", "is_manager = ?", true).
		Preload("Members.User").
		Order("id desc").
		Find(&list).Error
	return list, err
}

// FindByIDs loads list-shaped projects for the given ids.
func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []uint64) ([]model.Project, error) {
	var list []model.Project
	if len(ids) == 0 {
		return list, nil
	}
	err := conn(ctx, r.DB).
		Preload("Status").
		Preload("Complexity").
		Preload("Tools").
		Preload("Topics").
		Preload("UnfilledRoles").
		Preload("Members", "is_manager = ?", true).
		Preload("Members.User").
		Where("id IN ?", ids).
		Find(&list).Error
	return list, err
}

// ApplyPatch writes the present scalar columns and replaces the supplied
// associations. Absent fields are not touched.
func (r *ProjectRepository) ApplyPatch(ctx context.Context, id uint64, patch model.ProjectPatch) error {
	db := conn(ctx, r.DB)
	if cols := patch.Columns(); len(cols) > 0 {
		if err := db.Model(&model.Project{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
	}
	if patch.ToolIDs != nil {
		if err := replaceJoin(db, "project_tools", "project_id", id, "tool_id", patch.ToolIDs); err != nil {
			return err
		}
	}
	if patch.TopicIDs != nil {
		if err := replaceJoin(db, "project_topics", "project_id", id, "topic_id", patch.TopicIDs); err != nil {
			return err
		}
	}
	if patch.UnfilledRoleIDs != nil {
		if err := replaceJoin(db, "project_unfilled_roles", "project_id", id, "role_id", patch.UnfilledRoleIDs); err != nil {
			return err
		}
	}
	return nil
}
