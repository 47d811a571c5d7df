//nolint:revive // types is a standard Go package name pattern
package types

// JobMatchAnalysis is the backend's assessment of the user's résumé against a job description.
// It is never persisted client-side.
type JobMatchAnalysis struct {
	OverallScore     int              `json:"overallScore"`
	MatchSummary     string           `json:"matchSummary"`
	SkillsMatch      SkillsMatch      `json:"skillsMatch"`
	KeywordsAnalysis KeywordsAnalysis `json:"keywordsAnalysis"`
	Recommendations  []string         `json:"recommendations"`
}

// SkillsMatch splits the job's skills into those on the résumé and those missing.
type SkillsMatch struct {
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	MatchPercentage int      `json:"matchPercentage"`
}

// KeywordsAnalysis lists the job's required keywords and those found on the résumé.
type KeywordsAnalysis struct {
	Found           []string `json:"found"`
	Required        []string `json:"required"`
	MatchPercentage int      `json:"matchPercentage"`
}
