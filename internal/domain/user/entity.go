package user

import (
	"sort"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// StartingSalary is assigned to every self-registered account.
const StartingSalary int64 = 50000

var Departments = []string{
	"Software Developer",
	"QA and Testing",
	"Product Manager",
	"IT Operations",
	"Cybersecurity Engineer",
}

var Designations = []string{
	"Junior",
	"Senior",
	"Head of Department",
}

// User is the identity and employment record. EmployeeID (the employee code)
// is what attendance, leave, salary and payroll records point at.
type User struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"passwordHash"`
	Role            Role      `json:"role"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Department      string    `json:"department,omitempty"`
	Designation     string    `json:"designation,omitempty"`
	JoinDate        string    `json:"joinDate,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Address         string    `json:"address,omitempty"`
	Salary          int64     `json:"salary"`
	AccountApproved bool      `json:"accountApproved"`
	ProfilePicture  *string   `json:"profilePicture,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Version int64 `json:"-"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin checks if user is an HR administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin reports whether the account passed the approval gate.
// Admin accounts never wait for approval.
func (u *User) CanLogin() bool {
	return u.IsAdmin() || u.AccountApproved
}

// Matches reports whether search is a case-insensitive substring of the
// employee code or either name part.
func (u *User) Matches(search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.EmployeeID), search) ||
		strings.Contains(strings.ToLower(u.FirstName), search) ||
		strings.Contains(strings.ToLower(u.LastName), search)
}

// DepartmentCount is the headcount of one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// CountByDepartment tallies users per department, ordered by department
// name. Users without a department are counted under "Unassigned".
func CountByDepartment(users []User) []DepartmentCount {
	counts := make(map[string]int)
	for _, u := range users {
		dept := u.Department
		if dept == "" {
			dept = "Unassigned"
		}
		counts[dept]++
	}
	out := make([]DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		out = append(out, DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// SplitName splits a single display name into first and last parts.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
