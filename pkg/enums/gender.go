package enums

import (
	"fmt"
	"strings"
)

// Gender represents the optional gender attribute on a user record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender. Input is lowercased first.
func ParseGender(value string) (Gender, error) {
	normalized := Gender(strings.ToLower(value))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// GenderValues lists the accepted wire values, for validation messages.
func GenderValues() []string {
	out := make([]string, 0, len(validGenders))
	for _, g := range validGenders {
		out = append(out, string(g))
	}
	return out
}
