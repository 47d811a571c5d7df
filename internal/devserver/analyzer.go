package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/prompts"
	"github.com/jonathan/jobpilot/internal/schemas"
	"github.com/jonathan/jobpilot/internal/types"
)

// maxSkillRecommendations caps the "add evidence of X" suggestions.
const maxSkillRecommendations = 3

// Analyzer scores a résumé against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resume types.Resume, description string) (types.JobMatchAnalysis, error)
}

// KeywordAnalyzer scores by the share of recognized skills in the description that the résumé mentions.
type KeywordAnalyzer struct{}

// Analyze implements Analyzer. It never fails.
func (a KeywordAnalyzer) Analyze(_ context.Context, resume types.Resume, description string) (types.JobMatchAnalysis, error) {
	return a.Match(resume, description), nil
}

// Match builds the keyword analysis of resume against description.
func (KeywordAnalyzer) Match(resume types.Resume, description string) types.JobMatchAnalysis {
	required := ExtractSkills(description)
	have := resumeSkills(resume)

	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, skill := range required {
		if have[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	pct := percent(len(matched), len(required))

	return types.JobMatchAnalysis{
		OverallScore: pct,
		MatchSummary: keywordSummary(len(matched), len(required), pct),
		SkillsMatch: types.SkillsMatch{
			Matched:         matched,
			Missing:         missing,
			MatchPercentage: pct,
		},
		KeywordsAnalysis: types.KeywordsAnalysis{
			Found:           append([]string(nil), matched...),
			Required:        required,
			MatchPercentage: pct,
		},
		Recommendations: recommendations(matched, missing),
	}
}

// Score returns only the overall score.
func (a KeywordAnalyzer) Score(resume types.Resume, description string) int {
	return a.Match(resume, description).OverallScore
}

func resumeSkills(resume types.Resume) map[string]bool {
	have := make(map[string]bool)
	for _, s := range resume.Skills {
		have[NormalizeSkillName(s)] = true
	}
	for _, s := range ExtractSkills(resume.Text) {
		have[s] = true
	}
	return have
}

// percent rounds to the nearest integer; an empty whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return (part*100 + whole/2) / whole
}

func keywordSummary(matched, total, pct int) string {
	if total == 0 {
		return message("keyword-summary-empty", nil)
	}
	return message("keyword-summary", map[string]string{
		"Matched": strconv.Itoa(matched),
		"Total":   strconv.Itoa(total),
		"Percent": strconv.Itoa(pct),
	})
}

func recommendations(matched, missing []string) []string {
	out := make([]string, 0, maxSkillRecommendations+1)
	for i, skill := range missing {
		if i == maxSkillRecommendations {
			break
		}
		out = append(out, message("missing-skill", map[string]string{"Skill": skill}))
	}
	if len(matched) > 0 {
		out = append(out, message("strong-match", map[string]string{"Skill": matched[0]}))
	}
	return out
}

// message renders an analysis template. The templates are embedded, so a lookup failure is a build defect.
func message(key string, data map[string]string) string {
	return prompts.Format(prompts.MustGet(prompts.AnalysisFile, key), data)
}

// LLMAnalyzer asks a generative model for the analysis and validates the reply.
// When the model fails and Fallback is set, the fallback's analysis is returned instead.
type LLMAnalyzer struct {
	Client   llm.Client
	Tier     llm.ModelTier
	Fallback Analyzer
	Log      logrus.FieldLogger
}

// Analyze implements Analyzer.
func (a *LLMAnalyzer) Analyze(ctx context.Context, resume types.Resume, description string) (types.JobMatchAnalysis, error) {
	analysis, err := a.generate(ctx, resume, description)
	if err == nil {
		return analysis, nil
	}
	if a.Fallback == nil {
		return types.JobMatchAnalysis{}, err
	}
	logger.OrDiscard(a.Log).WithError(err).Warn("model analysis failed, using keyword analysis")
	return a.Fallback.Analyze(ctx, resume, description)
}

func (a *LLMAnalyzer) generate(ctx context.Context, resume types.Resume, description string) (types.JobMatchAnalysis, error) {
	instructions, err := prompts.Get(prompts.AnalysisFile, "job-match")
	if err != nil {
		return types.JobMatchAnalysis{}, err
	}

	resumeText := resume.Text
	if len(resume.Skills) > 0 {
		resumeText += "\n\nSkills: " + strings.Join(resume.Skills, ", ")
	}
	prompt := llm.BuildExtractionPrompt(llm.JobMatchSchema(instructions),
		llm.Section{Label: "Resume", Text: resumeText},
		llm.Section{Label: "Job description", Text: description},
	)

	tier := a.Tier
	if tier == "" {
		tier = llm.TierStandard
	}
	response, err := a.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return types.JobMatchAnalysis{}, fmt.Errorf("LLM call failed: %w", err)
	}
	return parseAnalysis(response)
}

// parseAnalysis validates a model reply and restores the found-within-required invariant.
func parseAnalysis(response string) (types.JobMatchAnalysis, error) {
	payload := []byte(llm.CleanJSONBlock(response))
	if err := schemas.ValidateAnalysis(payload); err != nil {
		return types.JobMatchAnalysis{}, fmt.Errorf("model returned an invalid analysis: %w", err)
	}

	var analysis types.JobMatchAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return types.JobMatchAnalysis{}, fmt.Errorf("JSON parse error: %w", err)
	}

	required := make(map[string]bool, len(analysis.KeywordsAnalysis.Required))
	for _, k := range analysis.KeywordsAnalysis.Required {
		required[k] = true
	}
	found := analysis.KeywordsAnalysis.Found[:0]
	for _, k := range analysis.KeywordsAnalysis.Found {
		if required[k] {
			found = append(found, k)
		}
	}
	analysis.KeywordsAnalysis.Found = found
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	return analysis, nil
}
