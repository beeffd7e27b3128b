package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"m42hub/internal/model"
)

type MemberRepository struct {
	DB *gorm.DB
}

func (r *MemberRepository) withRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Role").Preload("MemberStatus")
}

func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	return conn(ctx, r.DB).Omit("User", "Role", "MemberStatus").Create(m).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint64) (*model.Member, bool, error) {
	var m model.Member
	err := r.withRefs(conn(ctx, r.DB)).First(&m, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

// FindByIDForUpdate loads the bare member row, locking it inside a transaction.
func (r *MemberRepository) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Member, bool, error) {
	var m model.Member
	err := forUpdate(ctx, conn(ctx, r.DB)).First(&m, id).Error
	if notFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	var list []model.Member
	err := r.withRefs(conn(ctx, r.DB)).Order("id asc").Find(&list).Error
	return list, err
}

// ListByUsername returns every membership of the user with that username.
func (r *MemberRepository) ListByUsername(ctx context.Context, username string) ([]model.Member, error) {
	var list []model.Member
	err := r.withRefs(conn(ctx, r.DB)).
		Joins("JOIN users ON users.id = members.user_id").
		Where("users.username = ?", strings.ToLower(username)).
		Order("members.id asc").
		Find(&list).Error
	return list, err
}

// UpdateDecision persists the status, feedback and approver/rejecter of m.
func (r *MemberRepository) UpdateDecision(ctx context.Context, m *model.Member) error {
	return conn(ctx, r.DB).Model(&model.Member{}).Where("id = ?", m.ID).
		Updates(map[string]any{
			"member_status_id":     m.MemberStatusID,
			"application_feedback": m.ApplicationFeedback,
			"approver_id":          m.ApproverID,
			"rejecter_id":          m.RejecterID,
		}).Error
}
