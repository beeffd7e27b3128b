package service

import (
	"context"
	"io"

	"m42hub/internal/model"
	"m42hub/internal/pkg"
)

// Transactor runs fn inside one transaction; stores called with the derived
// context join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id uint64) (*model.Project, bool, error)
	FindByIDForUpdate(ctx context.Context, id uint64) (*model.Project, bool, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ApplyPatch(ctx context.Context, id uint64, patch model.ProjectPatch) error
}

type MemberStore interface {
	Create(ctx context.Context, m *model.Member) error
	FindByID(ctx context.Context, id uint64) (*model.Member, bool, error)
	FindByIDForUpdate(ctx context.Context, id uint64) (*model.Member, bool, error)
	List(ctx context.Context) ([]model.Member, error)
	ListByUsername(ctx context.Context, username string) ([]model.Member, error)
	UpdateDecision(ctx context.Context, m *model.Member) error
}

type OutboxStore interface {
	Insert(ctx context.Context, ob *model.MemberOutbox) error
	ListPending(ctx context.Context, batchSize, maxRetry int) ([]model.MemberOutbox, error)
	MarkFailed(ctx context.Context, id uint64) error
	MarkSent(ctx context.Context, id uint64) error
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, bool, error)
	FindByLogin(ctx context.Context, login string) (*model.User, bool, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, userID uint64, hash string) error
	UpdateProfilePic(ctx context.Context, userID uint64, url string) error
	UpdateActive(ctx context.Context, userID uint64, active bool) error
	UpdateInfo(ctx context.Context, userID uint64, patch model.UserInfoPatch, roleIDs []uint64) error
}

type SystemRoleStore interface {
	FindByName(ctx context.Context, name string) (*model.SystemRole, bool, error)
}

type RoleResolver interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]model.Role, error)
}

type LookupStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint64) (*T, bool, error)
	Create(ctx context.Context, v *T) error
}

type TopicStore interface {
	LookupStore[model.Topic]
	UpdateColor(ctx context.Context, id uint64, hexColor string) (*model.Topic, bool, error)
}

// TokenStore holds the one active session per user: its access token and
// the refresh token issued with it.
type TokenStore interface {
	Save(ctx context.Context, userID uint64, accessToken, refreshToken string) error
	Get(ctx context.Context, userID uint64) (string, error)
	MatchRefresh(ctx context.Context, userID uint64, refreshToken string) (bool, error)
	Extend(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	GeneratePair(userID uint64, username, role string) (*pkg.Pair, error)
	ParseRefresh(token string) (*pkg.Claims, error)
}

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}
