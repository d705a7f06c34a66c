package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

var e164 = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

// PhoneNumber is a subscriber number in E.164 form.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates and normalizes a phone number. Spaces and dashes are stripped.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return PhoneNumber{}, fmt.Errorf("phone number is required")
	}
	if !e164.MatchString(cleaned) {
		return PhoneNumber{}, fmt.Errorf("phone number %q is not in E.164 format", raw)
	}
	return PhoneNumber{value: cleaned}, nil
}

// String returns the E.164 representation.
func (p PhoneNumber) String() string {
	return p.value
}

// Masked hides all but the last four digits, for logs.
func (p PhoneNumber) Masked() string {
	if len(p.value) <= 4 {
		return p.value
	}
	return strings.Repeat("*", len(p.value)-4) + p.value[len(p.value)-4:]
}

// IsZero returns true if the number has not been set.
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}
