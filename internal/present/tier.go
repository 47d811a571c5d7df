// Package present holds the pure rules that turn domain data into what a view shows:
// score tiers, status labels and colors, keyword reconciliation, filtering,
// pagination and relative dates. Nothing here performs I/O.
package present

// Tier is the qualitative band of a 0-100 match score.
type Tier int

// Score tiers, best first.
const (
	TierExcellent Tier = iota
	TierGood
	TierFair
	TierPoor
)

// Tier thresholds (inclusive lower bounds).
const (
	ExcellentThreshold = 85
	GoodThreshold      = 70
	FairThreshold      = 50
)

// ScoreTier maps a score to its tier. Out-of-range scores fall into the nearest band.
func ScoreTier(score int) Tier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	case score >= FairThreshold:
		return TierFair
	default:
		return TierPoor
	}
}

type tierStyle struct {
	name       string
	label      string
	text       string
	background string
	gradient   string
	ansi       string
}

var tierStyles = map[Tier]tierStyle{
	TierExcellent: {
		name:       "EXCELLENT",
		label:      "Excellent Match",
		text:       "text-emerald-400",
		background: "bg-emerald-500/10 border-emerald-500/20",
		gradient:   "from-emerald-500 to-emerald-400",
		ansi:       ansiGreen,
	},
	TierGood: {
		name:       "GOOD",
		label:      "Good Match",
		text:       "text-violet-400",
		background: "bg-violet-500/10 border-violet-500/20",
		gradient:   "from-violet-500 to-fuchsia-400",
		ansi:       ansiMagenta,
	},
	TierFair: {
		name:       "FAIR",
		label:      "Fair Match",
		text:       "text-amber-400",
		background: "bg-amber-500/10 border-amber-500/20",
		gradient:   "from-amber-500 to-amber-400",
		ansi:       ansiYellow,
	},
	TierPoor: {
		name:       "POOR",
		label:      "Needs Improvement",
		text:       "text-red-400",
		background: "bg-red-500/10 border-red-500/20",
		gradient:   "from-red-500 to-red-400",
		ansi:       ansiRed,
	},
}

func (t Tier) style() tierStyle {
	if s, ok := tierStyles[t]; ok {
		return s
	}
	return tierStyles[TierPoor]
}

// String returns the tier name, e.g. "EXCELLENT".
func (t Tier) String() string { return t.style().name }

// Label is the human caption shown next to a score.
func (t Tier) Label() string { return t.style().label }

// TextColor is the text color class of the tier.
func (t Tier) TextColor() string { return t.style().text }

// Background is the background and border class of the tier.
func (t Tier) Background() string { return t.style().background }

// Gradient is the progress-bar gradient class of the tier.
func (t Tier) Gradient() string { return t.style().gradient }

// ANSI is the terminal color escape for the tier.
func (t Tier) ANSI() string { return t.style().ansi }

// Terminal escapes used by the CLI renderer.
const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiDim     = "\x1b[2m"
)

// Colorize wraps s in the escape code when color is enabled.
func Colorize(s, escape string, enabled bool) string {
	if !enabled || escape == "" {
		return s
	}
	return escape + s + ansiReset
}
