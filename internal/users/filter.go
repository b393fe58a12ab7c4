package users

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/userdesk/userdesk-backend/pkg/enums"
	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
	"github.com/userdesk/userdesk-backend/pkg/pagination"
)

// ListFilter is the validated, normalized form of the list query parameters.
// It is produced once per request by ParseListFilter and consumed by the
// repository's list query.
type ListFilter struct {
	Page           int
	Limit          int
	Search         string
	Gender         *enums.Gender
	IncludeDeleted bool
	SortBy         enums.SortField
	SortOrder      enums.SortOrder
}

// ParseListFilter validates raw query parameters into a ListFilter. Every rule
// is evaluated and all field errors are collected before failing; a non-nil
// error is always CodeValidation carrying the ordered field error list.
func ParseListFilter(query url.Values) (ListFilter, error) {
	var fieldErrs []pkgerrors.FieldError

	page := parsePositiveInt(query.Get("page"), pagination.DefaultPage)
	if query.Get("page") != "" && page < 1 {
		fieldErrs = append(fieldErrs, pkgerrors.FieldError{
			Field:   "page",
			Message: "Page must be a positive integer",
		})
	}

	limit := parsePositiveInt(query.Get("limit"), pagination.DefaultLimit)
	if query.Get("limit") != "" && limit < 1 {
		fieldErrs = append(fieldErrs, pkgerrors.FieldError{
			Field:   "limit",
			Message: "Limit must be a positive integer",
		})
	}
	limit = pagination.ClampLimit(limit)

	var gender *enums.Gender
	if raw := query.Get("gender"); raw != "" {
		parsed, err := enums.ParseGender(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, pkgerrors.FieldError{
				Field:   "gender",
				Message: fmt.Sprintf("Gender must be one of: %s", strings.Join(enums.GenderValues(), ", ")),
			})
		} else {
			gender = &parsed
		}
	}

	sortBy := enums.SortFieldCreatedAt
	if raw := query.Get("sortBy"); raw != "" {
		parsed, err := enums.ParseSortField(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, pkgerrors.FieldError{
				Field:   "sortBy",
				Message: fmt.Sprintf("sortBy must be one of: %s", strings.Join(enums.SortFieldValues(), ", ")),
			})
		} else {
			sortBy = parsed
		}
	}

	sortOrder := enums.SortOrderDesc
	if raw := query.Get("sortOrder"); raw != "" {
		parsed, err := enums.ParseSortOrder(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, pkgerrors.FieldError{
				Field:   "sortOrder",
				Message: fmt.Sprintf("sortOrder must be one of: %s", strings.Join(enums.SortOrderValues(), ", ")),
			})
		} else {
			sortOrder = parsed
		}
	}

	if len(fieldErrs) > 0 {
		return ListFilter{}, pkgerrors.Validation(fieldErrs)
	}

	return ListFilter{
		Page:           page,
		Limit:          limit,
		Search:         strings.TrimSpace(query.Get("search")),
		Gender:         gender,
		IncludeDeleted: parseBool(query.Get("includeDeleted")),
		SortBy:         sortBy,
		SortOrder:      sortOrder,
	}, nil
}

// parsePositiveInt keeps the fallback for absent or unparsable input; a value
// that parses but is out of range is returned as-is so the caller can reject it
// instead of silently falling back.
func parsePositiveInt(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// sortColumns whitelists the ORDER BY targets; sort input never reaches SQL
// verbatim.
var sortColumns = map[enums.SortField]string{
	enums.SortFieldFullName:  "full_name",
	enums.SortFieldEmail:     "email",
	enums.SortFieldCreatedAt: "created_at",
	enums.SortFieldUpdatedAt: "updated_at",
}

// scope translates the filter's predicate into query conditions: visibility,
// gender, and search ANDed together. Search matches fullName or email with the
// store's native contains semantics; no case normalization is applied here.
func (f ListFilter) scope() func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !f.IncludeDeleted {
			tx = tx.Where("is_deleted = ?", false)
		}
		if f.Gender != nil {
			tx = tx.Where("gender = ?", *f.Gender)
		}
		if f.Search != "" {
			pattern := "%" + escapeLike(f.Search) + "%"
			// ESCAPE is spelled out because SQLite has no default escape char.
			tx = tx.Where(`full_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`, pattern, pattern)
		}
		return tx
	}
}

// orderClause builds the single ORDER BY directive. No secondary tie-break
// column is applied; ties keep store-native order.
func (f ListFilter) orderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[enums.SortFieldCreatedAt]
	}
	return column + " " + string(f.SortOrder)
}

// offset derives the pagination window start.
func (f ListFilter) offset() int {
	return pagination.Offset(f.Page, f.Limit)
}

func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	return strings.ReplaceAll(value, "_", `\_`)
}
