package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"m42hub/internal/dto"
	"m42hub/internal/model"
)

func newAuthFixture(users *fakeUsers) (*AuthService, *fakeTokens) {
	roles := fakeSystemRoles{roles: map[string]*model.SystemRole{
		model.SystemRoleUser: {ID: 2, Name: model.SystemRoleUser},
	}}
	tokens := newFakeTokens()
	return NewAuthService(users, roles, &plainHasher{}, tokens, &fakeIssuer{}), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc, tokens := newAuthFixture(users)

	u, err := svc.Register(ctx, dto.RegisterRequest{Username: "Alice", Email: "A@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, uint64(2), u.SystemRoleID)
	assert.Equal(t, "hashed:password1", users.rows[u.ID].Password)

	users.rows[u.ID].SystemRole = &model.SystemRole{ID: 2, Name: model.SystemRoleUser}
	pair, err := svc.Login(ctx, dto.LoginRequest{Username: "ALICE", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "access-alice-USER", pair.AccessToken)

	stored, err := tokens.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, stored)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", Email: "a@x.io"})
	svc, _ := newAuthFixture(users)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "bob", Email: "A@X.io", Password: "password1"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_Authenticate(t *testing.T) {
	users := newFakeUsers(
		&model.User{ID: 1, Username: "alice", Password: "hashed:pw", IsActive: true},
		&model.User{ID: 2, Username: "bob", Password: "hashed:pw", IsActive: false},
	)
	svc, _ := newAuthFixture(users)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)

	_, err = svc.Authenticate(ctx, "alice", "nope")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Authenticate(ctx, "bob", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Authenticate(ctx, "carol", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", Password: "hashed:pw", IsActive: true})
	svc, tokens := newAuthFixture(users)

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, "refresh-alice")
	require.NoError(t, err)
	assert.Equal(t, "refresh-alice", pair.RefreshToken)
	stored, err := tokens.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, stored)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_RefreshWithoutSession(t *testing.T) {
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", IsActive: true})
	svc, tokens := newAuthFixture(users)

	_, err := svc.Refresh(context.Background(), "refresh-alice")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
	_, err = tokens.Get(context.Background(), 1)
	assert.Error(t, err, "a rejected refresh must not open a session")
}

func TestAuthService_RefreshRejectsReplacedToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", IsActive: true})
	svc, tokens := newAuthFixture(users)
	require.NoError(t, tokens.Save(ctx, 1, "access-new", "refresh-newer-login"))

	_, err := svc.Refresh(ctx, "refresh-alice")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_LogoutRevokesRefresh(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", Password: "hashed:pw", IsActive: true})
	svc, _ := newAuthFixture(users)

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, 1))

	_, err = svc.Refresh(ctx, "refresh-alice")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_PasswordChangeEndsRefresh(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(&model.User{ID: 1, Username: "alice", Password: "hashed:old-password", IsActive: true})
	auth, tokens := newAuthFixture(users)
	userSvc := NewUserService(&fakeTx{}, users, fakeRoles{}, auth, &plainHasher{}, tokens, &fakeUploader{}, zap.NewNop())

	pair, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "old-password"})
	require.NoError(t, err)

	found, err := userSvc.ChangePassword(ctx, dto.UserPasswordChangeRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	}, 1)
	require.NoError(t, err)
	require.True(t, found)

	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
	_, err = tokens.Get(ctx, 1)
	assert.Error(t, err)
}
