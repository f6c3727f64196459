package domain

import (
	"context"
	"errors"
)

type Service interface {
	// HasRole reports whether the user holds the given role. Unknown
	// users simply have no roles.
	HasRole(ctx context.Context, userID, role string) (bool, error)
	Grant(ctx context.Context, userID, role string) (UserRole, error)
	Revoke(ctx context.Context, userID, role string) error
	ListRoles(ctx context.Context, userID string) ([]UserRole, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidRole = errors.New("invalid_role")
	ErrNotFound    = errors.New("not_found")
)
