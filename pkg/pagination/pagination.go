package pagination

const (
	// DefaultPage is the page used when the query string omits one.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// PageInfo is the pagination metadata attached to every list response.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageInfo derives page metadata from the requested window and total count.
// A total of zero yields zero pages.
func NewPageInfo(page, limit int, total int64) PageInfo {
	info := PageInfo{
		Page:  page,
		Limit: limit,
		Total: total,
	}
	if limit > 0 {
		info.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return info
}

// ClampLimit applies the configured maximum. Values above MaxLimit are
// silently reduced; values below 1 are the validator's problem, not ours.
func ClampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset converts a 1-based page and limit into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
