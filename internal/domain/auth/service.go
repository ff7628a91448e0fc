package auth

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (Session, user.User, error)
	Signup(ctx context.Context, req SignupRequest) (user.User, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a live session by id.
	Authenticate(ctx context.Context, sessionID string) (Session, error)
	CurrentUser(ctx context.Context, s Session) (user.User, error)
}
