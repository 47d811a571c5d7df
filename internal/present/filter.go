package present

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobpilot/internal/types"
)

// StatusFilter is either FilterAll or one application status.
type StatusFilter string

// FilterAll keeps every application.
const FilterAll StatusFilter = "ALL"

// IsAll reports whether f keeps every application. The zero value counts as ALL.
func (f StatusFilter) IsAll() bool {
	return f == FilterAll || f == ""
}

// Filters returns ALL followed by every status, the order of the filter tabs.
func Filters() []StatusFilter {
	out := []StatusFilter{FilterAll}
	for _, s := range types.AllStatuses() {
		out = append(out, StatusFilter(s))
	}
	return out
}

// ParseFilter accepts "all" or a status in any letter case.
func ParseFilter(s string) (StatusFilter, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, string(FilterAll)) {
		return FilterAll, nil
	}
	status, err := types.ParseStatus(trimmed)
	if err != nil {
		return "", fmt.Errorf("unknown filter %q: %w", s, err)
	}
	return StatusFilter(status), nil
}

// FilterByStatus returns the applications matching f, preserving order.
// The result is a new slice; apps is not modified.
func FilterByStatus(apps []types.Application, f StatusFilter) []types.Application {
	out := make([]types.Application, 0, len(apps))
	for _, app := range apps {
		if f.IsAll() || app.Status == types.ApplicationStatus(f) {
			out = append(out, app)
		}
	}
	return out
}

// CountByStatus tallies applications per status. Every known status is present, possibly zero.
func CountByStatus(apps []types.Application) map[types.ApplicationStatus]int {
	counts := make(map[types.ApplicationStatus]int, len(types.AllStatuses()))
	for _, s := range types.AllStatuses() {
		counts[s] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}

// RecentApplications returns the first n applications, the dashboard's "recent" list.
// n <= 0 uses DefaultRecentCount.
func RecentApplications(apps []types.Application, n int) []types.Application {
	if n <= 0 {
		n = DefaultRecentCount
	}
	if len(apps) < n {
		n = len(apps)
	}
	out := make([]types.Application, n)
	copy(out, apps[:n])
	return out
}

// DefaultRecentCount is how many applications the dashboard lists.
const DefaultRecentCount = 5
