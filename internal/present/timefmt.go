package present

import (
	"fmt"
	"time"
)

// DateLayout is how absolute dates are printed.
const DateLayout = "Jan 2, 2006"

// FormatDate prints t as "Jan 2, 2006". The zero time prints as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatTimeAgo describes t relative to now. Anything a week or older falls back to FormatDate.
func FormatTimeAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return FormatDate(t)
	}
}
