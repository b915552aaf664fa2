package candidate

import (
	"reflect"
	"strings"
	"testing"
)

func validProfile() Profile {
	return Profile{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+1 555 123 4567",
		ExperienceYears: 5,
		DesiredPosition: "Backend Engineer",
		Location:        "London",
		TechStack:       []string{"Python", "PostgreSQL"},
	}
}

func TestValidateAcceptsCompleteProfile(t *testing.T) {
	if err := validProfile().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(p *Profile)
		problem string
	}{
		{
			name:    "short name",
			mutate:  func(p *Profile) { p.FullName = "A" },
			problem: "full name",
		},
		{
			name:    "bad email",
			mutate:  func(p *Profile) { p.Email = "not-an-email" },
			problem: "email",
		},
		{
			name:    "bad phone",
			mutate:  func(p *Profile) { p.Phone = "123" },
			problem: "phone",
		},
		{
			name:    "negative experience",
			mutate:  func(p *Profile) { p.ExperienceYears = -1 },
			problem: "experience",
		},
		{
			name:    "short position",
			mutate:  func(p *Profile) { p.DesiredPosition = "x" },
			problem: "desired position",
		},
		{
			name:    "short location",
			mutate:  func(p *Profile) { p.Location = " " },
			problem: "location",
		},
		{
			name:    "empty tech stack",
			mutate:  func(p *Profile) { p.TechStack = nil },
			problem: "tech stack",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := validProfile()
			tc.mutate(&profile)

			err := profile.Validate()
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.problem) {
				t.Fatalf("expected error mentioning %q, got: %v", tc.problem, err)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	err := Profile{}.Validate()
	if err == nil {
		t.Fatalf("expected an error")
	}

	for _, problem := range []string{"full name", "email", "phone", "tech stack"} {
		if !strings.Contains(err.Error(), problem) {
			t.Fatalf("expected joined error to mention %q, got: %v", problem, err)
		}
	}
}

func TestParseTechStack(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "simple", input: "Python, Go", expected: []string{"Python", "Go"}},
		{name: "messy spacing", input: "  Python ,,  Go  ,", expected: []string{"Python", "Go"}},
		{name: "single", input: "Rust", expected: []string{"Rust"}},
		{name: "empty", input: " , , ", expected: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTechStack(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestValidatePhoneFormats(t *testing.T) {
	valid := []string{"+1 555 123 4567", "(030) 1234567", "5551234567", "555-123-4567"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Fatalf("expected %q to be valid: %v", phone, err)
		}
	}

	invalid := []string{"", "12345", "call me maybe", "+1 555 123 4567 890 123"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Fatalf("expected %q to be rejected", phone)
		}
	}
}
