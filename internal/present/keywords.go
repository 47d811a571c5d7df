package present

// KeywordMatch is one required keyword and whether the résumé contains it.
type KeywordMatch struct {
	Keyword string
	Matched bool
}

// ReconcileKeywords marks each required keyword as matched when it appears in found.
// Comparison is exact and case-sensitive; output order follows required.
func ReconcileKeywords(found, required []string) []KeywordMatch {
	set := make(map[string]struct{}, len(found))
	for _, k := range found {
		set[k] = struct{}{}
	}
	out := make([]KeywordMatch, 0, len(required))
	for _, k := range required {
		_, ok := set[k]
		out = append(out, KeywordMatch{Keyword: k, Matched: ok})
	}
	return out
}
