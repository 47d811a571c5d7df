package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/types"
)

var (
	jobsKeyword  string
	jobsLocation string
	jobsCompany  string
	jobsPages    int

	newJob types.CreateJobInput
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job postings, ranked by match when you have a resume",
	Long: "List job postings. With a resume on file the list is ranked by match score; " +
		"any of --keyword, --location or --company switches to a filtered search.",
	RunE: runJobs,
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job with your current resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsApply,
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a job posting manually",
	RunE:  runJobsCreate,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsKeyword, "keyword", "k", "", "Match title or description")
	jobsCmd.Flags().StringVarP(&jobsLocation, "location", "l", "", "Match location")
	jobsCmd.Flags().StringVarP(&jobsCompany, "company", "c", "", "Match company")
	jobsCmd.Flags().IntVar(&jobsPages, "pages", 1, "Number of pages to show")

	jobsCreateCmd.Flags().StringVar(&newJob.Title, "title", "", "Job title (required)")
	jobsCreateCmd.Flags().StringVar(&newJob.Company, "company", "", "Company (required)")
	jobsCreateCmd.Flags().StringVar(&newJob.Location, "location", "", "Location")
	jobsCreateCmd.Flags().StringVar(&newJob.Description, "description", "", "Job description (required)")
	jobsCreateCmd.Flags().StringVar(&newJob.ApplyURL, "apply-url", "", "Where to apply (required)")

	jobsCmd.AddCommand(jobsApplyCmd, jobsCreateCmd)
	rootCmd.AddCommand(jobsCmd)
}

func jobFilters() types.JobFilters {
	return types.JobFilters{Keyword: jobsKeyword, Location: jobsLocation, Company: jobsCompany}
}

func runJobs(cmd *cobra.Command, _ []string) error {
	if jobsPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewJobs(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	if filters := jobFilters(); !filters.IsEmpty() {
		var failure *pages.Failure
		if err := page.Search(filters); err != nil && !errors.As(err, &failure) {
			return err
		}
	}
	for i := 1; i < jobsPages; i++ {
		if err := page.LoadMore(); err != nil {
			return err
		}
	}

	a.printer.PrintJobs(page.View())
	return nil
}

func runJobsApply(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewJobs(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	if v := page.View(); v.Status.Phase == pages.PhaseError {
		return errors.New(v.Status.Err)
	}

	job, ok := findJob(page.Jobs(), args[0])
	if !ok {
		return fmt.Errorf("job %s not found", args[0])
	}
	if err := page.Apply(job); err != nil {
		return err
	}
	a.printer.PrintMessage(fmt.Sprintf("Applied to %s at %s", job.Title, job.Company))
	return nil
}

func findJob(jobs []types.Job, id string) (types.Job, bool) {
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return types.Job{}, false
}

func runJobsCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := pages.Guard(a.store, a.deps.Navigator); err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	env := a.svc.Jobs.CreateJob(ctx, newJob)
	if !env.HasData() {
		return errors.New(env.MessageOr("Failed to create job"))
	}
	a.printer.PrintMessage(fmt.Sprintf("Created job %s (%s at %s)", env.Data.ID, env.Data.Title, env.Data.Company))
	return nil
}
