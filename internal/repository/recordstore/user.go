package recordstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

const employeeCodePrefix = "EMP"

type userRepositoryImpl struct {
	store record.Store
}

func NewUserRepository(store record.Store) user.UserRepository {
	return &userRepositoryImpl{store: store}
}

func setUserVersion(u *user.User, v int64) { u.Version = v }

func (r *userRepositoryImpl) all(ctx context.Context) ([]user.User, error) {
	docs, err := r.store.List(ctx, record.Users)
	if err != nil {
		return nil, err
	}
	return decodeAll(record.Users, docs, setUserVersion)
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
		if existing.EmployeeID == newUser.EmployeeID {
			return user.User{}, user.ErrEmployeeIDExists
		}
	}

	doc, err := encode(newUser.ID, 0, newUser)
	if err != nil {
		return user.User{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Users, doc)
	if err != nil {
		if errors.Is(err, record.ErrDuplicateID) {
			return user.User{}, user.ErrEmployeeIDExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	newUser.Version = stored.Version
	return newUser, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	doc, err := encode(u.ID, u.Version, u)
	if err != nil {
		return user.User{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Users, doc)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	u.Version = stored.Version
	return u, nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, record.Users, id); err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	doc, err := r.store.Find(ctx, record.Users, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return decode(record.Users, doc, setUserVersion)
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, func(u user.User) bool {
		return strings.EqualFold(u.Email, strings.TrimSpace(email))
	})
}

func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.findOne(ctx, func(u user.User) bool { return u.EmployeeID == employeeID })
}

func (r *userRepositoryImpl) findOne(ctx context.Context, match func(user.User) bool) (user.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Department != "" && u.Department != filter.Department {
			continue
		}
		if filter.Approved != nil && u.AccountApproved != *filter.Approved {
			continue
		}
		if !u.Matches(filter.Search) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// NextEmployeeID returns EMP followed by one more than the highest numeric
// suffix in use, zero padded to three digits.
func (r *userRepositoryImpl) NextEmployeeID(ctx context.Context) (string, error) {
	users, err := r.all(ctx)
	if err != nil {
		return "", err
	}
	highest := 0
	for _, u := range users {
		n, err := strconv.Atoi(strings.TrimPrefix(u.EmployeeID, employeeCodePrefix))
		if err != nil || !strings.HasPrefix(u.EmployeeID, employeeCodePrefix) {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", employeeCodePrefix, highest+1), nil
}
