package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/fetch"
	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/types"
)

var (
	analyzeText       string
	analyzeTextFile   string
	analyzeURL        string
	analyzeSaveJobID  string
	analyzeUseBrowser bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze how well a job description matches your resume",
	Long: "Analyze a job description against your resume. Provide the description with exactly one of " +
		"--text, --text-file or --url. With --save-job-id the analyzed job is saved as an application.",
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeTextFile, "text-file", "t", "", "Path to text file containing the job description")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "URL to fetch the job posting from")
	analyzeCmd.Flags().StringVar(&analyzeSaveJobID, "save-job-id", "", "Save the result as an application for this job")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Render the posting in headless Chrome when the page has little text")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	sources := 0
	for _, s := range []string{analyzeText, analyzeTextFile, analyzeURL} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("provide exactly one of --text, --text-file or --url")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewAnalyze(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	switch v := page.View(); {
	case v.Status.Phase == pages.PhaseError:
		return errors.New(v.Status.Err)
	case v.NeedsResume:
		a.printer.PrintAnalysis(v)
		return pages.ErrResumeRequired
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	description, err := a.jobDescription(ctx, cmd)
	if err != nil {
		return err
	}
	if err := page.Submit(description); err != nil {
		return err
	}

	if analyzeSaveJobID != "" {
		job, err := a.lookupJob(ctx, analyzeSaveJobID)
		if err != nil {
			return err
		}
		if err := page.SaveAsApplication(job); err != nil {
			return err
		}
	}

	a.printer.PrintAnalysis(page.View())
	return nil
}

// jobDescription reads the description from whichever source flag was given.
func (a *app) jobDescription(ctx context.Context, cmd *cobra.Command) (string, error) {
	switch {
	case analyzeText != "":
		return analyzeText, nil
	case analyzeTextFile != "":
		data, err := os.ReadFile(analyzeTextFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", analyzeTextFile, err)
		}
		return string(data), nil
	}

	useBrowser := a.cfg.UseBrowser
	if cmd.Flags().Changed("use-browser") {
		useBrowser = analyzeUseBrowser
	}
	opts := fetch.DefaultOptions()
	opts.Logger = a.log
	opts.UseBrowser = useBrowser

	desc, err := fetch.JobDescription(ctx, analyzeURL, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	a.log.WithFields(logrus.Fields{
		"url":      desc.URL,
		"platform": desc.Platform,
		"rendered": desc.Rendered,
		"chars":    len(desc.Text),
	}).Debug("fetched job description")
	return strings.TrimSpace(desc.Text), nil
}

// lookupJob finds a job by ID in the full job list.
func (a *app) lookupJob(ctx context.Context, id string) (types.Job, error) {
	env := a.svc.Jobs.GetJobs(ctx, types.JobFilters{})
	if !env.Success {
		return types.Job{}, errors.New(env.MessageOr("Failed to load jobs"))
	}
	var jobs []types.Job
	if env.Data != nil {
		jobs = *env.Data
	}
	job, ok := findJob(jobs, id)
	if !ok {
		return types.Job{}, fmt.Errorf("job %s not found", id)
	}
	return job, nil
}
