package candidate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// phonePattern accepts 10-15 digits with optional spaces, hyphens,
	// parentheses and a leading plus.
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Profile is the immutable candidate record captured once at session start.
type Profile struct {
	FullName        string   `json:"full_name" mapstructure:"full-name"`
	Email           string   `json:"email" mapstructure:"email"`
	Phone           string   `json:"phone_number" mapstructure:"phone"`
	ExperienceYears int      `json:"experience" mapstructure:"experience"`
	DesiredPosition string   `json:"desired_position" mapstructure:"desired-position"`
	Location        string   `json:"current_location" mapstructure:"location"`
	TechStack       []string `json:"tech_stack" mapstructure:"tech-stack"`
}

// Validate checks the whole profile and returns every problem found, joined
// into a single error.
func (p Profile) Validate() error {
	var problems []error

	if err := ValidateName(p.FullName); err != nil {
		problems = append(problems, err)
	}
	if err := ValidateEmail(p.Email); err != nil {
		problems = append(problems, err)
	}
	if err := ValidatePhone(p.Phone); err != nil {
		problems = append(problems, err)
	}
	if p.ExperienceYears < 0 {
		problems = append(problems, errors.New("years of experience cannot be negative"))
	}
	if len(strings.TrimSpace(p.DesiredPosition)) < 2 {
		problems = append(problems, errors.New("desired position must be at least 2 characters"))
	}
	if len(strings.TrimSpace(p.Location)) < 2 {
		problems = append(problems, errors.New("location must be at least 2 characters"))
	}
	if len(p.TechStack) == 0 {
		problems = append(problems, errors.New("tech stack cannot be empty"))
	}

	return errors.Join(problems...)
}

// ValidateName rejects names shorter than 2 characters.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return errors.New("full name must be at least 2 characters")
	}
	return nil
}

// ValidateEmail checks the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address: %q", strings.TrimSpace(email))
	}
	return nil
}

// ValidatePhone checks the phone number format.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return errors.New("invalid phone number format")
	}
	return nil
}

// ParseTechStack splits a comma-separated declaration into a normalized list,
// dropping empty entries.
func ParseTechStack(raw string) []string {
	parts := strings.Split(raw, ",")

	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if tech := strings.TrimSpace(part); tech != "" {
			stack = append(stack, tech)
		}
	}

	return stack
}
