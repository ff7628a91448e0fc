package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "admin@dayflow.com"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDateAndMonth(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Errorf("IsValidDate(2025-03-10) = false, want true")
	}
	if _, ok := IsValidDate("2025-02-30"); ok {
		t.Errorf("IsValidDate(2025-02-30) = true, want false")
	}
	if _, ok := IsValidMonth("2025-03"); !ok {
		t.Errorf("IsValidMonth(2025-03) = false, want true")
	}
	if _, ok := IsValidMonth("2025-13"); ok {
		t.Errorf("IsValidMonth(2025-13) = true, want false")
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	cases := map[string]bool{
		"EMP001":  true,
		"EMP1024": true,
		"emp001":  false,
		"EMP01":   false,
		"":        false,
	}
	for code, want := range cases {
		if got := IsValidEmployeeCode(code); got != want {
			t.Errorf("IsValidEmployeeCode(%q) = %v, want %v", code, got, want)
		}
	}
}

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Start string `json:"start_date" validate:"date"`
	Month string `json:"month" validate:"month"`
	Kind  string `json:"kind" validate:"oneof=a b"`
	Hours int    `json:"hours" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	ok := sample{Name: "Ann", Email: "ann@dayflow.com", Start: "2025-03-10", Month: "2025-03", Kind: "a"}
	if errs := Struct(ok); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	bad := sample{Name: "  ", Email: "nope", Start: "10/03/2025", Month: "March", Kind: "c", Hours: -1}
	errs := Struct(bad).ToMap()
	want := map[string]string{
		"name":       "name is required",
		"email":      "invalid email format",
		"start_date": "must be a date in YYYY-MM-DD format",
		"month":      "must be a month in YYYY-MM format",
		"kind":       "must be one of: a b",
		"hours":      "must be at least 0",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("Struct(bad)[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidationErrorsErr(t *testing.T) {
	var none ValidationErrors
	if none.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() should be nil")
	}
	some := ValidationErrors{{Field: "a", Message: "b"}}
	if some.Err() == nil || some.Error() != "a: b" {
		t.Errorf("ValidationErrors.Err() = %v, want a: b", some.Err())
	}
}
