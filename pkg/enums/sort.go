package enums

import (
	"fmt"
	"strings"
)

// SortField enumerates the columns the user list endpoint may be ordered by.
// The wire values match the JSON field names, not the column names.
type SortField string

const (
	SortFieldFullName  SortField = "fullName"
	SortFieldEmail     SortField = "email"
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldUpdatedAt SortField = "updatedAt"
)

var validSortFields = []SortField{
	SortFieldFullName,
	SortFieldEmail,
	SortFieldCreatedAt,
	SortFieldUpdatedAt,
}

// String implements fmt.Stringer.
func (f SortField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known SortField.
func (f SortField) IsValid() bool {
	for _, candidate := range validSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseSortField converts raw input into a SortField. Matching is exact:
// the wire values are camelCase and case matters.
func ParseSortField(value string) (SortField, error) {
	for _, candidate := range validSortFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q", value)
}

// SortFieldValues lists the accepted wire values, for validation messages.
func SortFieldValues() []string {
	out := make([]string, 0, len(validSortFields))
	for _, f := range validSortFields {
		out = append(out, string(f))
	}
	return out
}

// SortOrder is the direction applied to a SortField.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

var validSortOrders = []SortOrder{
	SortOrderAsc,
	SortOrderDesc,
}

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}

// IsValid reports whether the value is a known SortOrder.
func (o SortOrder) IsValid() bool {
	for _, candidate := range validSortOrders {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseSortOrder converts raw input into a SortOrder. Input is lowercased first.
func ParseSortOrder(value string) (SortOrder, error) {
	normalized := SortOrder(strings.ToLower(value))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}

// SortOrderValues lists the accepted wire values, for validation messages.
func SortOrderValues() []string {
	out := make([]string, 0, len(validSortOrders))
	for _, o := range validSortOrders {
		out = append(out, string(o))
	}
	return out
}
