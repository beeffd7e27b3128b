package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"m42hub/internal/model"
)

type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// InitDB opens the MySQL connection pool and pings it once.
func InitDB(opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(opts.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Permission{},
		&model.SystemRole{},
		&model.Role{},
		&model.User{},
		&model.Status{},
		&model.Complexity{},
		&model.Tool{},
		&model.Topic{},
		&model.MemberStatus{},
		&model.Project{},
		&model.Member{},
		&model.MemberOutbox{},
	)
}

// DefaultPermissions are granted to the USER system role on seed.
var DefaultPermissions = []string{
	"project:create",
	"member:create",
}

// AllPermissions is every permission string checked by the router.
var AllPermissions = []string{
	"project:create", "project:update",
	"status:create", "complexity:create", "tool:create", "role:create",
	"topic:create", "topic:change_color",
	"member:get_all", "member:get_by_id", "member:get_by_username",
	"member:create", "member:approve", "member:reject",
	"user:get_all", "user:change_status",
}

// Seed inserts the fixed lookup rows. It is idempotent.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statuses := []model.MemberStatus{
			{ID: model.MemberStatusApproved, Name: "approved"},
			{ID: model.MemberStatusPending, Name: "pending"},
			{ID: model.MemberStatusRejected, Name: "rejected"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
			return err
		}

		perms := make([]model.Permission, 0, len(AllPermissions))
		for _, name := range AllPermissions {
			perms = append(perms, model.Permission{Name: name})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&perms).Error; err != nil {
			return err
		}

		if err := ensureSystemRole(tx, model.SystemRoleAdmin, nil); err != nil {
			return err
		}
		return ensureSystemRole(tx, model.SystemRoleUser, DefaultPermissions)
	})
}

func ensureSystemRole(tx *gorm.DB, name string, permissions []string) error {
	role := model.SystemRole{Name: name}
	if err := tx.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
		return err
	}
	if len(permissions) == 0 {
		return nil
	}
	var perms []model.Permission
	if err := tx.Where("name IN ?", permissions).Find(&perms).Error; err != nil {
		return err
	}
	ids := make([]uint64, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID)
	}
	return replaceJoin(tx, "system_role_permissions", "system_role_id", role.ID, "permission_id", ids)
}

// replaceJoin rewrites the rows of a many2many join table for one owner.
func replaceJoin(tx *gorm.DB, table, ownerCol string, ownerID uint64, refCol string, refIDs []uint64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerCol+" = ?", ownerID).Error; err != nil {
		return err
	}
	if len(refIDs) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(refIDs))
	seen := make(map[uint64]struct{}, len(refIDs))
	for _, id := range refIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, map[string]any{ownerCol: ownerID, refCol: id})
	}
	return tx.Table(table).Create(rows).Error
}

// notFound reports whether err is a missing-row error.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
