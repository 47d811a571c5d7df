package pages

import (
	"context"

	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/services"
	"github.com/jonathan/jobpilot/internal/types"
)

// ScoreBlock is a percentage with its tier.
type ScoreBlock struct {
	Value int
	Tier  present.Tier
}

// SkillsBlock lists matched and missing skills.
type SkillsBlock struct {
	ScoreBlock
	Matched []string
	Missing []string
}

// KeywordsBlock lists each required keyword and whether it was found.
type KeywordsBlock struct {
	ScoreBlock
	Keywords []present.KeywordMatch
}

// AnalysisResult is the five-block result view.
type AnalysisResult struct {
	Overall         ScoreBlock
	Summary         string
	Skills          SkillsBlock
	Keywords        KeywordsBlock
	Recommendations []string
	// CanSave is the save-as-application prompt; it needs a résumé to attach.
	CanSave bool
}

// NewAnalysisResult derives the result view from an analysis.
func NewAnalysisResult(a types.JobMatchAnalysis, hasResume bool) AnalysisResult {
	block := func(v int) ScoreBlock { return ScoreBlock{Value: v, Tier: present.ScoreTier(v)} }
	return AnalysisResult{
		Overall: block(a.OverallScore),
		Summary: a.MatchSummary,
		Skills: SkillsBlock{
			ScoreBlock: block(a.SkillsMatch.MatchPercentage),
			Matched:    a.SkillsMatch.Matched,
			Missing:    a.SkillsMatch.Missing,
		},
		Keywords: KeywordsBlock{
			ScoreBlock: block(a.KeywordsAnalysis.MatchPercentage),
			Keywords:   present.ReconcileKeywords(a.KeywordsAnalysis.Found, a.KeywordsAnalysis.Required),
		},
		Recommendations: a.Recommendations,
		CanSave:         hasResume,
	}
}

// AnalyzeView is a snapshot of the analyze screen.
type AnalyzeView struct {
	Status      Status
	NeedsResume bool
	Resume      *types.Resume
	Analyzing   bool
	Error       string
	Result      *AnalysisResult
	Saved       *types.Application
}

// Analyze compares a pasted job description to the user's résumé.
type Analyze struct {
	lifecycle
	deps Deps

	status    Status
	resume    *types.Resume
	analyzing bool
	errMsg    string
	result    *AnalysisResult
	saved     *types.Application
}

// NewAnalyze creates an Analyze controller.
func NewAnalyze(deps Deps) *Analyze {
	return &Analyze{deps: deps.withDefaults()}
}

// Mount guards the session and loads the résumé that gates the form.
func (a *Analyze) Mount(parent context.Context) error {
	if err := Guard(a.deps.Store, a.deps.Navigator); err != nil {
		return err
	}
	ctx := a.mount(parent)
	a.update(ctx, func() { a.status = Loading() })

	env := a.deps.Services.Resume.GetResume(ctx)

	a.update(ctx, func() {
		switch {
		case env.HasData():
			a.resume = env.Data
			a.status = Ready()
		case notFound(env):
			a.resume = nil
			a.status = Ready()
		default:
			a.status = Failed(env.MessageOr("Failed to load resume"))
		}
	})
	return nil
}

// Submit validates description and runs the analysis. The previous result is
// cleared once the description passes validation.
func (a *Analyze) Submit(description string) error {
	ctx, err := a.active()
	if err != nil {
		return err
	}

	var hasResume bool
	a.withLock(func() { hasResume = a.resume != nil })
	if !hasResume {
		return ErrResumeRequired
	}

	if msg := services.ValidateDescription(description); msg != "" {
		a.update(ctx, func() { a.errMsg = msg })
		return &Failure{Message: msg, Local: true}
	}

	a.update(ctx, func() {
		a.analyzing = true
		a.errMsg = ""
		a.result = nil
		a.saved = nil
	})

	env := a.deps.Services.Jobs.AnalyzeJobMatch(ctx, description)

	var failure error
	a.update(ctx, func() {
		a.analyzing = false
		if !env.HasData() {
			a.errMsg = env.MessageOr("Failed to analyze job match")
			failure = &Failure{Message: a.errMsg, Local: env.IsLocal()}
			return
		}
		result := NewAnalysisResult(*env.Data, a.resume != nil)
		a.result = &result
	})
	return failure
}

// SaveAsApplication records the analysed posting as an application for job.
func (a *Analyze) SaveAsApplication(job types.Job) error {
	ctx, err := a.active()
	if err != nil {
		return err
	}

	var (
		resume *types.Resume
		result *AnalysisResult
	)
	a.withLock(func() { resume, result = a.resume, a.result })
	if resume == nil {
		return ErrResumeRequired
	}
	if result == nil {
		return &Failure{Message: "Run an analysis first", Local: true}
	}

	env := a.deps.Services.Applications.CreateApplication(ctx, types.NewApplicationInput(job, *resume))

	var failure error
	a.update(ctx, func() {
		if !env.HasData() {
			a.errMsg = env.MessageOr("Failed to save application")
			failure = &Failure{Message: a.errMsg, Local: env.IsLocal()}
			return
		}
		a.saved = env.Data
	})
	return failure
}

// View returns a snapshot of the screen.
func (a *Analyze) View() AnalyzeView {
	var v AnalyzeView
	a.withLock(func() {
		v = AnalyzeView{
			Status:      a.status,
			NeedsResume: a.status.Phase == PhaseReady && a.resume == nil,
			Resume:      a.resume,
			Analyzing:   a.analyzing,
			Error:       a.errMsg,
			Result:      a.result,
			Saved:       a.saved,
		}
	})
	return v
}
