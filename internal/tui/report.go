package tui

import (
	"fmt"
	"io"

	"github.com/CosmoTheDev/eventsync/internal/audit"
)

// RenderAuditReport writes a human-readable audit report to w. Projects
// without issues are listed only when verbose is set.
func RenderAuditReport(w io.Writer, r audit.Report, verbose bool) {
	fmt.Fprintln(w, Title("Package audit"))
	fmt.Fprintln(w)

	failing := 0
	for _, p := range r.Projects {
		if len(p.Issues) > 0 {
			failing++
		}
		if len(p.Issues) == 0 && len(p.Errors) == 0 {
			if verbose {
				fmt.Fprintf(w, "%s %s\n", OK("✓"), projectStyle.Render(p.Project.Name))
			}
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", Fail("✗"), projectStyle.Render(p.Project.Name), Dim(p.Project.Folder))
		for _, is := range p.Issues {
			fmt.Fprintf(w, "    %s %s\n", Dim("["+is.Rule+"]"), issueStyle.Render(is.Content))
		}
		for _, err := range p.Errors {
			fmt.Fprintf(w, "    %s\n", errorStyle.Render(err.Error()))
		}
	}

	fmt.Fprintln(w)
	n := r.IssueCount()
	switch {
	case n == 0 && !r.HasErrors():
		fmt.Fprintln(w, OK(fmt.Sprintf("All %d package(s) passed.", len(r.Projects))))
	case n == 0:
		fmt.Fprintln(w, Fail("Some rules could not run."))
	default:
		fmt.Fprintln(w, Warn(fmt.Sprintf("%d issue(s) found in %d of %d package(s).", n, failing, len(r.Projects))))
	}
}
