package users

import (
	"net/url"
	"testing"

	"github.com/userdesk/userdesk-backend/pkg/enums"
	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	return values
}

func fieldErrors(t *testing.T, err error) []pkgerrors.FieldError {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := typed.Details().([]pkgerrors.FieldError)
	if !ok {
		t.Fatalf("expected field error details, got %T", typed.Details())
	}
	return fields
}

func TestParseListFilterDefaults(t *testing.T) {
	filter, err := ParseListFilter(parseQuery(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Page != 1 || filter.Limit != 10 {
		t.Fatalf("unexpected window defaults: page=%d limit=%d", filter.Page, filter.Limit)
	}
	if filter.SortBy != enums.SortFieldCreatedAt || filter.SortOrder != enums.SortOrderDesc {
		t.Fatalf("unexpected sort defaults: %s %s", filter.SortBy, filter.SortOrder)
	}
	if filter.IncludeDeleted {
		t.Fatalf("includeDeleted should default to false")
	}
	if filter.Search != "" || filter.Gender != nil {
		t.Fatalf("search/gender should be absent by default")
	}
}

func TestParseListFilterUnparsableFallsBack(t *testing.T) {
	filter, err := ParseListFilter(parseQuery(t, "page=abc&limit=xyz"))
	if err != nil {
		t.Fatalf("unparsable values should fall back, got %v", err)
	}
	if filter.Page != 1 || filter.Limit != 10 {
		t.Fatalf("expected defaults, got page=%d limit=%d", filter.Page, filter.Limit)
	}

	// Trailing garbage is unparsable too, not a prefix parse.
	filter, err = ParseListFilter(parseQuery(t, "page=5abc&limit=3xyz"))
	if err != nil {
		t.Fatalf("trailing garbage should fall back, got %v", err)
	}
	if filter.Page != 1 || filter.Limit != 10 {
		t.Fatalf("expected defaults, got page=%d limit=%d", filter.Page, filter.Limit)
	}
}

func TestParseListFilterExplicitZeroPageIsError(t *testing.T) {
	for _, raw := range []string{"page=0", "page=-1"} {
		_, err := ParseListFilter(parseQuery(t, raw))
		fields := fieldErrors(t, err)
		if len(fields) != 1 || fields[0].Field != "page" {
			t.Fatalf("%s: expected single page error, got %+v", raw, fields)
		}
		if fields[0].Message != "Page must be a positive integer" {
			t.Fatalf("unexpected message %q", fields[0].Message)
		}
	}
}

func TestParseListFilterLimitClampedSilently(t *testing.T) {
	filter, err := ParseListFilter(parseQuery(t, "limit=1000"))
	if err != nil {
		t.Fatalf("oversized limit should not error, got %v", err)
	}
	if filter.Limit != 100 {
		t.Fatalf("expected clamp to 100, got %d", filter.Limit)
	}
}

func TestParseListFilterCollectsAllErrors(t *testing.T) {
	_, err := ParseListFilter(parseQuery(t, "page=0&limit=-5&gender=robot&sortBy=age&sortOrder=up"))
	fields := fieldErrors(t, err)
	if len(fields) != 5 {
		t.Fatalf("expected 5 field errors, got %d: %+v", len(fields), fields)
	}
	order := []string{"page", "limit", "gender", "sortBy", "sortOrder"}
	for i, field := range order {
		if fields[i].Field != field {
			t.Fatalf("expected error %d for %s, got %s", i, field, fields[i].Field)
		}
	}
}

func TestParseListFilterGenderNormalized(t *testing.T) {
	filter, err := ParseListFilter(parseQuery(t, "gender=FEMALE"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Gender == nil || *filter.Gender != enums.GenderFemale {
		t.Fatalf("expected normalized female, got %v", filter.Gender)
	}
}

func TestParseListFilterIncludeDeletedNeverErrors(t *testing.T) {
	tests := map[string]bool{
		"includeDeleted=true":  true,
		"includeDeleted=TRUE":  true,
		"includeDeleted=1":     false,
		"includeDeleted=yes":   false,
		"includeDeleted=false": false,
		"":                     false,
	}
	for raw, want := range tests {
		filter, err := ParseListFilter(parseQuery(t, raw))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if filter.IncludeDeleted != want {
			t.Fatalf("%s: expected includeDeleted=%v", raw, want)
		}
	}
}

func TestParseListFilterSearchTrimmed(t *testing.T) {
	filter, err := ParseListFilter(parseQuery(t, "search=++john++"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Search != "john" {
		t.Fatalf("expected trimmed search, got %q", filter.Search)
	}

	filter, err = ParseListFilter(parseQuery(t, "search=+++"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Search != "" {
		t.Fatalf("whitespace-only search should become absent, got %q", filter.Search)
	}
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	tests := []struct {
		sortBy enums.SortField
		order  enums.SortOrder
		want   string
	}{
		{enums.SortFieldFullName, enums.SortOrderAsc, "full_name asc"},
		{enums.SortFieldEmail, enums.SortOrderDesc, "email desc"},
		{enums.SortFieldCreatedAt, enums.SortOrderDesc, "created_at desc"},
		{enums.SortFieldUpdatedAt, enums.SortOrderAsc, "updated_at asc"},
	}
	for _, tt := range tests {
		f := ListFilter{SortBy: tt.sortBy, SortOrder: tt.order}
		if got := f.orderClause(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestOffsetWindow(t *testing.T) {
	f := ListFilter{Page: 2, Limit: 5}
	if got := f.offset(); got != 5 {
		t.Fatalf("expected offset 5, got %d", got)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike("50%_off\\"); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape result %q", got)
	}
}
