package auth

import (
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"notblank"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

// SignupRequest accepts either a single name or first/last name parts. Role
// is read for compatibility with older clients but never honoured: every
// signup becomes an unapproved employee.
type SignupRequest struct {
	Name        string `json:"name,omitempty"`
	FirstName   string `json:"first_name,omitempty" validate:"max=100"`
	LastName    string `json:"last_name,omitempty" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Role        string `json:"role,omitempty"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
	Phone       string `json:"phone,omitempty" validate:"max=20"`
}

func (r *SignupRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) && validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.Department != "" && !validator.IsInSlice(r.Department, user.Departments) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "unknown department",
		})
	}
	if r.Designation != "" && !validator.IsInSlice(r.Designation, user.Designations) {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "unknown designation",
		})
	}
	return errs.Err()
}

// Names resolves the first and last name from whichever fields were sent.
func (r *SignupRequest) Names() (string, string) {
	if !validator.IsEmpty(r.FirstName) {
		return r.FirstName, r.LastName
	}
	return user.SplitName(r.Name)
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   int64             `json:"expires_at"`
	User        user.UserResponse `json:"user"`
}
