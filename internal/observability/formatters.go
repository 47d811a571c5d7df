// Package observability renders page controller views for the terminal.
package observability

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Printer writes boxed, optionally colored views.
type Printer struct {
	out   io.Writer
	color bool
	now   func() time.Time
}

// NewPrinter creates a new Printer that writes to the given writer.
// color enables ANSI escapes for tiers and status badges.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color, now: time.Now}
}

// visibleWidth counts runes, ignoring ANSI escapes.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// truncate shortens s to width runes with a trailing "...". Escapes are dropped from truncated lines.
func truncate(s string, width int) string {
	if visibleWidth(s) <= width {
		return s
	}
	plain := []rune(ansiPattern.ReplaceAllString(s, ""))
	return string(plain[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func (p *Printer) paint(s, escape string) string {
	return present.Colorize(s, escape, p.color)
}

func (p *Printer) score(v int) string {
	tier := present.ScoreTier(v)
	return p.paint(fmt.Sprintf("%d%% %s", v, tier.Label()), tier.ANSI())
}

func (p *Printer) badge(status types.ApplicationStatus) string {
	pres := present.StatusPresentation(status)
	return p.paint("["+pres.Label+"]", pres.ANSI)
}

// PrintError writes a one-line failure message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintError(message string) {
	fmt.Fprintln(p.out, p.paint("✗ "+message, present.TierPoor.ANSI()))
}

// PrintMessage writes a one-line success message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(message string) {
	fmt.Fprintln(p.out, p.paint("✓ "+message, present.TierExcellent.ANSI()))
}

// printStatus renders a non-ready status and reports whether the caller should stop.
func (p *Printer) printStatus(s pages.Status) bool {
	switch s.Phase {
	case pages.PhaseError:
		p.PrintError(s.Err)
		return true
	case pages.PhaseLoading, pages.PhaseIdle:
		p.PrintMessage("Loading...")
		return true
	}
	return false
}

// PrintProfile outputs the signed-in user and when the access token expires.
func (p *Printer) PrintProfile(user *types.User, expires time.Time) {
	if user == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", user.Name))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", user.Email))
	if !expires.IsZero() {
		sb.WriteString(fmt.Sprintf("Token:  expires %s", expires.Local().Format("Jan 2 15:04")))
	}
	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs the stat cards, recent applications and résumé summary.
func (p *Printer) PrintDashboard(v pages.DashboardView) {
	if p.printStatus(v.Status) {
		return
	}

	var sb strings.Builder
	if v.User != nil {
		sb.WriteString(fmt.Sprintf("Welcome back, %s\n\n", v.User.Name))
	}
	for _, card := range v.Cards {
		sb.WriteString(fmt.Sprintf("%-20s %s\n", card.Label, card.Value))
	}

	sb.WriteString("\nRecent applications:\n")
	if len(v.Recent) == 0 {
		sb.WriteString("  No applications yet\n")
	}
	now := p.now()
	for _, app := range v.Recent {
		sb.WriteString(fmt.Sprintf("  %s %s at %s (%s)\n", p.badge(app.Status), app.JobTitle, app.Company,
			present.FormatTimeAgo(now, app.CreatedAt)))
	}

	sb.WriteString("\nResume: ")
	if v.Resume == nil {
		sb.WriteString("none uploaded (jobpilot resume upload <file.pdf>)")
	} else {
		sb.WriteString(fmt.Sprintf("%s, %d skills, updated %s", v.Resume.Name, len(v.Resume.Skills), present.FormatDate(v.Resume.UpdatedAt)))
	}
	if v.UploadError != "" {
		sb.WriteString("\n" + p.paint(v.UploadError, present.TierPoor.ANSI()))
	}

	p.printBox("DASHBOARD", sb.String())
}

// PrintJobs outputs the visible page of jobs with match scores when ranked.
func (p *Printer) PrintJobs(v pages.JobsView) {
	if p.printStatus(v.Status) {
		return
	}

	var sb strings.Builder
	switch {
	case v.Ranked:
		sb.WriteString("Ranked by match with your resume\n\n")
	case v.Resume == nil:
		sb.WriteString("Upload a resume to see match scores\n\n")
	}
	if !v.Filters.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Filters: %s\n\n", v.Filters.Query().Encode()))
	}
	if len(v.Page.Items) == 0 {
		sb.WriteString("No jobs found")
	}

	for i, job := range v.Page.Items {
		line := fmt.Sprintf("%s  %s", job.Title, job.Company)
		if job.Location != "" {
			line += " · " + job.Location
		}
		sb.WriteString(line + "\n")
		sb.WriteString("    id " + job.ID)
		var meta []string
		if job.HasMatchScore() {
			meta = append(meta, "match "+p.score(*job.MatchScore))
		}
		if v.Applied[job.ID] {
			meta = append(meta, p.paint("applied", present.TierExcellent.ANSI()))
		}
		if len(meta) > 0 {
			sb.WriteString("\n    " + strings.Join(meta, "  "))
		}
		if i < len(v.Page.Items)-1 {
			sb.WriteString("\n")
		}
	}

	if v.Page.HasMore {
		sb.WriteString(fmt.Sprintf("\n\nShowing %d of %d (use --pages to see more)", len(v.Page.Items), v.Total))
	}
	if v.ActionError != "" {
		sb.WriteString("\n\n" + p.paint(v.ActionError, present.TierPoor.ANSI()))
	}

	p.printBox(fmt.Sprintf("JOBS (%d)", v.Total), sb.String())
}

// PrintApplications outputs the filter tabs with counts and the filtered list.
func (p *Printer) PrintApplications(v pages.ApplicationsView) {
	if p.printStatus(v.Status) {
		return
	}

	tabs := make([]string, 0, len(present.Filters()))
	for _, f := range present.Filters() {
		count := v.Total
		if !f.IsAll() {
			count = v.Counts[types.ApplicationStatus(f)]
		}
		tab := fmt.Sprintf("%s %d", present.FilterLabel(f), count)
		if f == v.Filter || (f.IsAll() && v.Filter.IsAll()) {
			tab = "[" + tab + "]"
		}
		tabs = append(tabs, tab)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(tabs, "  ") + "\n\n")
	if len(v.Items) == 0 {
		sb.WriteString("No applications")
	}
	for i, app := range v.Items {
		sb.WriteString(fmt.Sprintf("%s %s at %s\n", p.badge(app.Status), app.JobTitle, app.Company))
		sb.WriteString(fmt.Sprintf("    id %s\n", app.ID))
		sb.WriteString(fmt.Sprintf("    match %s  applied %s", p.score(app.MatchScore), present.FormatDate(app.CreatedAt)))
		if i < len(v.Items)-1 {
			sb.WriteString("\n")
		}
	}
	if v.Error != "" {
		sb.WriteString("\n\n" + p.paint(v.Error, present.TierPoor.ANSI()))
	}

	p.printBox("APPLICATIONS", sb.String())
}

// PrintAnalysis outputs the five result blocks of a job match analysis.
func (p *Printer) PrintAnalysis(v pages.AnalyzeView) {
	if p.printStatus(v.Status) {
		return
	}
	if v.NeedsResume {
		p.PrintError("Upload a resume before analyzing a job (jobpilot resume upload <file.pdf>)")
		return
	}
	if v.Error != "" {
		p.PrintError(v.Error)
	}
	r := v.Result
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall match: %s\n", p.score(r.Overall.Value)))
	if r.Summary != "" {
		sb.WriteString(r.Summary + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nSkills %s\n", p.score(r.Skills.Value)))
	sb.WriteString("  Matched: " + joinOrNone(r.Skills.Matched) + "\n")
	sb.WriteString("  Missing: " + joinOrNone(r.Skills.Missing) + "\n")

	sb.WriteString(fmt.Sprintf("\nKeywords %s\n", p.score(r.Keywords.Value)))
	marks := make([]string, 0, len(r.Keywords.Keywords))
	for _, k := range r.Keywords.Keywords {
		if k.Matched {
			marks = append(marks, p.paint("✓"+k.Keyword, present.TierExcellent.ANSI()))
		} else {
			marks = append(marks, "✗"+k.Keyword)
		}
	}
	for _, line := range wrap(marks, boxWidth-6) {
		sb.WriteString("  " + line + "\n")
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			for i, line := range wrap(strings.Fields(rec), boxWidth-8) {
				prefix := "  • "
				if i > 0 {
					prefix = "    "
				}
				sb.WriteString(prefix + line + "\n")
			}
		}
	}

	switch {
	case v.Saved != nil:
		sb.WriteString(fmt.Sprintf("\nSaved as application %s", v.Saved.ID))
	case r.CanSave:
		sb.WriteString("\nSave it with --save-job-id <job-id>")
	}

	p.printBox("JOB MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs the current résumé and any transient upload messages.
func (p *Printer) PrintResume(v pages.ResumeView) {
	if v.Error != "" {
		p.PrintError(v.Error)
	}
	if v.Success != "" {
		p.PrintMessage(v.Success)
	}
	if p.printStatus(v.Status) {
		return
	}
	if v.Resume == nil {
		p.printBox("RESUME", "No resume uploaded yet")
		return
	}

	r := v.Resume
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.Name))
	if r.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", r.Email))
	}
	sb.WriteString(fmt.Sprintf("Updated:  %s\n", present.FormatDate(r.UpdatedAt)))
	if len(r.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		for _, line := range wrap(r.Skills, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}
	if len(r.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(r.Experience), maxItemsToShow)
		for _, e := range r.Experience[:count] {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", e.Position, e.Company, e.Duration))
		}
		if len(r.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Experience)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// wrap joins words with spaces into lines no wider than width.
func wrap(words []string, width int) []string {
	var lines []string
	var line string
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case visibleWidth(line)+1+visibleWidth(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
