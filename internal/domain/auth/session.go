package auth

import (
	"context"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// Session is the caller identity passed explicitly to every operation that
// needs it. Several sessions may be live at once.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	EmployeeID string    `json:"employeeId"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	IssuedAt   time.Time `json:"issuedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (s Session) IsAdmin() bool {
	return s.Role == user.RoleAdmin
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Can checks the role permission table for this session.
func (s Session) Can(p user.Permission) bool {
	return user.HasPermission(s.Role, p)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
