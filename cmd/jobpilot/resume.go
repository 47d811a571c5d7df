package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/pages"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show your current resume",
	RunE:  runResume,
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF resume, replacing the current one",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeUpload,
}

func init() {
	resumeCmd.AddCommand(resumeUploadCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewResume(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	a.printer.PrintResume(page.View())
	return nil
}

func runResumeUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page := pages.NewResume(a.deps)
	unmount, err := mount(cmd, page)
	if err != nil {
		return err
	}
	defer unmount()

	if err := page.Upload(pages.SourcePicker, filepath.Base(path), content); err != nil {
		return err
	}
	a.printer.PrintResume(page.View())
	return nil
}
