package user

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	FullName        string  `json:"full_name"`
	Department      string  `json:"department,omitempty"`
	Designation     string  `json:"designation,omitempty"`
	JoinDate        string  `json:"join_date,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Address         string  `json:"address,omitempty"`
	Salary          int64   `json:"salary"`
	AccountApproved bool    `json:"account_approved"`
	ProfilePicture  *string `json:"profile_picture,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		EmployeeID:      u.EmployeeID,
		Email:           u.Email,
		Role:            string(u.Role),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Department:      u.Department,
		Designation:     u.Designation,
		JoinDate:        u.JoinDate,
		Phone:           u.Phone,
		Address:         u.Address,
		Salary:          u.Salary,
		AccountApproved: u.AccountApproved,
		ProfilePicture:  u.ProfilePicture,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.Format(time.RFC3339),
	}
}

func NewUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// TeamMemberResponse is the colleague view of a user. It leaves out contact
// and pay fields.
type TeamMemberResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Department     string  `json:"department,omitempty"`
	Designation    string  `json:"designation,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

func NewTeamMemberResponses(users []User) []TeamMemberResponse {
	out := make([]TeamMemberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, TeamMemberResponse{
			ID:             u.ID,
			EmployeeID:     u.EmployeeID,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			FullName:       u.FullName(),
			Department:     u.Department,
			Designation:    u.Designation,
			ProfilePicture: u.ProfilePicture,
		})
	}
	return out
}

// UpdateProfileRequest carries the fields an employee may edit on their own
// record. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitnil,notblank,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitnil,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitnil,max=20"`
	Address   *string `json:"address,omitempty" validate:"omitnil,max=255"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateSalaryRequest struct {
	Salary int64 `json:"salary" validate:"gt=0"`
}

func (r *UpdateSalaryRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ListEmployeesRequest struct {
	Search     string `json:"search"`
	Department string `json:"department"`
}
