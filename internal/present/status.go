package present

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/jobpilot/internal/types"
)

// Presentation is how a status badge looks.
type Presentation struct {
	Icon       string
	ColorClass string
	ANSI       string
	Label      string
}

var statusPresentations = map[types.ApplicationStatus]Presentation{
	types.StatusOffer: {
		Icon:       "CheckCircle2",
		ColorClass: "bg-emerald-500/10 text-emerald-400 border-emerald-500/20",
		ANSI:       ansiGreen,
	},
	types.StatusInterview: {
		Icon:       "Calendar",
		ColorClass: "bg-violet-500/10 text-violet-400 border-violet-500/20",
		ANSI:       ansiMagenta,
	},
	types.StatusApplied: {
		Icon:       "Clock",
		ColorClass: "bg-blue-500/10 text-blue-400 border-blue-500/20",
		ANSI:       ansiBlue,
	},
	types.StatusRejected: {
		Icon:       "XCircle",
		ColorClass: "bg-red-500/10 text-red-400 border-red-500/20",
		ANSI:       ansiRed,
	},
	types.StatusSaved: {
		Icon:       "FileText",
		ColorClass: "bg-white/5 text-white/60 border-white/10",
		ANSI:       ansiDim,
	},
}

// StatusPresentation returns the badge for status. Unknown statuses get the SAVED look.
func StatusPresentation(status types.ApplicationStatus) Presentation {
	p, ok := statusPresentations[status]
	if !ok {
		p = statusPresentations[types.StatusSaved]
	}
	p.Label = StatusLabel(string(status))
	return p
}

// StatusLabel upper-cases the first character and lower-cases the rest: "INTERVIEW" -> "Interview".
func StatusLabel(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// FilterLabel is the tab caption for a filter: "All" or the status label.
func FilterLabel(f StatusFilter) string {
	if f.IsAll() {
		return "All"
	}
	return StatusLabel(string(f))
}
