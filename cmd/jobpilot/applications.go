package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/types"
)

var applicationsStatus string

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List your applications",
	RunE:    runApplications,
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <application-id> <status>",
	Short: "Move an application to SAVED, APPLIED, INTERVIEW, REJECTED or OFFER",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetStatus,
}

func init() {
	applicationsCmd.Flags().StringVarP(&applicationsStatus, "status", "s", "all", "Only show this status (all, saved, applied, interview, rejected, offer)")

	applicationsCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func runApplications(cmd *cobra.Command, _ []string) error {
	filter, err := present.ParseFilter(applicationsStatus)
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewApplications(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	page.SetFilter(filter)
	a.printer.PrintApplications(page.View())
	return nil
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	status, err := types.ParseStatus(args[1])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewApplications(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	if v := page.View(); v.Status.Phase == pages.PhaseError {
		return errors.New(v.Status.Err)
	}
	if err := page.UpdateStatus(args[0], status); err != nil {
		return err
	}
	a.printer.PrintMessage(fmt.Sprintf("Application %s is now %s", args[0], present.StatusLabel(string(status))))
	return nil
}
