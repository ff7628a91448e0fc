package user

import "context"

type ListFilter struct {
	Search     string
	Department string
	Role       Role
	Approved   *bool
}

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	// Update writes u if u.Version still matches the stored version.
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	NextEmployeeID(ctx context.Context) (string, error)
}
