package validators

import (
	"strconv"
	"strings"

	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
)

// ParseIDParam converts a path identifier into a positive integer ID.
func ParseIDParam(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 1 {
		return 0, pkgerrors.Validation([]pkgerrors.FieldError{
			{Field: "id", Message: "ID must be a positive integer"},
		})
	}
	return uint(value), nil
}
