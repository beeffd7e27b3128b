package service

import "errors"

var (
	ErrBadCredentials   = errors.New("bad credentials")
	ErrUserExists       = errors.New("username or email already taken")
	ErrInvalidRefresh   = errors.New("invalid refresh token")
	ErrDefaultRoleUnset = errors.New("default system role missing, run seed")
)
