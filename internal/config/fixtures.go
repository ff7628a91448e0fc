package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixtures is the demo data loaded into an empty store at startup.
type Fixtures struct {
	Users []FixtureUser `yaml:"users"`
	// AttendanceDays is how many past calendar days of attendance to
	// generate for each approved employee. Weekends are skipped.
	AttendanceDays int `yaml:"attendance_days"`
}

type FixtureUser struct {
	EmployeeID  string `yaml:"employee_id"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	Role        string `yaml:"role"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Department  string `yaml:"department"`
	Designation string `yaml:"designation"`
	JoinDate    string `yaml:"join_date"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
	Salary      int64  `yaml:"salary"`
	Approved    bool   `yaml:"approved"`
}

// LoadFixtures reads a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read file %s: %w", path, err)
	}

	var f Fixtures
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("fixtures: parse yaml: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	if f.AttendanceDays < 0 || f.AttendanceDays > 366 {
		return fmt.Errorf("fixtures: attendance_days must be between 0 and 366")
	}

	emails := make(map[string]struct{}, len(f.Users))
	codes := make(map[string]struct{}, len(f.Users))
	for i, u := range f.Users {
		if u.EmployeeID == "" || u.Email == "" || u.Password == "" {
			return fmt.Errorf("fixtures: users[%d]: employee_id, email and password must be set", i)
		}
		if u.Role != "admin" && u.Role != "employee" {
			return fmt.Errorf("fixtures: users[%d]: role must be admin or employee", i)
		}
		email := strings.ToLower(u.Email)
		if _, dup := emails[email]; dup {
			return fmt.Errorf("fixtures: users[%d]: duplicate email %s", i, u.Email)
		}
		if _, dup := codes[u.EmployeeID]; dup {
			return fmt.Errorf("fixtures: users[%d]: duplicate employee_id %s", i, u.EmployeeID)
		}
		emails[email] = struct{}{}
		codes[u.EmployeeID] = struct{}{}
	}
	return nil
}
