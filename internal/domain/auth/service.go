package auth

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context) (user.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (user.User, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	// EnsureAdmin creates the bootstrap admin account when no user owns email yet.
	EnsureAdmin(ctx context.Context, email, password string) error
}
