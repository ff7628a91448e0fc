package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const employeeIDAttempts = 3

type AuthServiceImpl struct {
	user.UserRepository
	sessions   auth.SessionRepository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(userRepository user.UserRepository, sessionRepository auth.SessionRepository, sessionTTL time.Duration) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		sessions:       sessionRepository,
		sessionTTL:     sessionTTL,
		bcryptCost:     bcrypt.DefaultCost,
		now:            time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.Session, user.User, error) {
	if err := req.Validate(); err != nil {
		return auth.Session{}, user.User{}, err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.Session{}, user.User{}, auth.ErrInvalidCredentials
		}
		return auth.Session{}, user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.Session{}, user.User{}, auth.ErrInvalidCredentials
	}

	if !u.CanLogin() {
		return auth.Session{}, user.User{}, auth.ErrAccountNotApproved
	}

	now := a.now()
	session := auth.Session{
		ID:         uuid.Must(uuid.NewV7()).String(),
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       u.Role,
		IssuedAt:   now,
		ExpiresAt:  now.Add(a.sessionTTL),
	}
	if err := a.sessions.Save(ctx, session); err != nil {
		return auth.Session{}, user.User{}, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("user logged in", "user_id", u.ID, "employee_id", u.EmployeeID, "role", u.Role)
	return session, u, nil
}

// Signup implements auth.AuthService.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	_, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return user.User{}, auth.ErrEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	firstName, lastName := req.Names()
	now := a.now()
	newUser := user.User{
		ID:              uuid.Must(uuid.NewV7()).String(),
		Email:           strings.TrimSpace(req.Email),
		PasswordHash:    hash,
		Role:            user.RoleEmployee,
		FirstName:       firstName,
		LastName:        lastName,
		Department:      req.Department,
		Designation:     req.Designation,
		Phone:           req.Phone,
		JoinDate:        now.Format(time.DateOnly),
		Salary:          user.StartingSalary,
		AccountApproved: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Two signups can race for the same employee code; the loser retries with the next one.
	for attempt := 0; attempt < employeeIDAttempts; attempt++ {
		newUser.EmployeeID, err = a.UserRepository.NextEmployeeID(ctx)
		if err != nil {
			return user.User{}, fmt.Errorf("failed to allocate employee id: %w", err)
		}

		created, err := a.UserRepository.Create(ctx, newUser)
		switch {
		case err == nil:
			slog.Info("account registered", "user_id", created.ID, "employee_id", created.EmployeeID)
			return created, nil
		case errors.Is(err, user.ErrUserEmailExists):
			return user.User{}, auth.ErrEmailExists
		case errors.Is(err, user.ErrEmployeeIDExists):
			continue
		default:
			return user.User{}, fmt.Errorf("failed to create user: %w", err)
		}
	}
	return user.User{}, fmt.Errorf("failed to create user: %w", user.ErrEmployeeIDExists)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := a.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, sessionID string) (auth.Session, error) {
	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(a.now()) {
		_ = a.sessions.Delete(ctx, sessionID)
		return auth.Session{}, auth.ErrSessionNotFound
	}

	u, err := a.CurrentUser(ctx, session)
	if err != nil {
		return auth.Session{}, err
	}

	// Role and employee code follow the stored user, not the login snapshot.
	session.Role = u.Role
	session.EmployeeID = u.EmployeeID
	session.Email = u.Email
	return session, nil
}

// CurrentUser implements auth.AuthService.
func (a *AuthServiceImpl) CurrentUser(ctx context.Context, s auth.Session) (user.User, error) {
	u, err := a.UserRepository.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrSessionNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
