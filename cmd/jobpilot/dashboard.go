package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/pages"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"home"},
	Short:   "Show application stats, recent applications and your resume",
	RunE:    runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewDashboard(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	a.printer.PrintDashboard(page.View())
	return nil
}
