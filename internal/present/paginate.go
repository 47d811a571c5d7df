package present

import "time"

// Pagination defaults of the jobs list.
const (
	PageSize      = 10
	LoadMoreDelay = 300 * time.Millisecond
)

// Page is the visible prefix of a list.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// Paginate returns the first displayCount items and whether more remain.
// A negative displayCount shows nothing.
func Paginate[T any](items []T, displayCount int) Page[T] {
	if displayCount < 0 {
		displayCount = 0
	}
	n := min(displayCount, len(items))
	return Page[T]{Items: items[:n:n], HasMore: displayCount < len(items)}
}
