// Package report renders an audit report for human review: a Markdown
// summary for the reporting API and an HTML conversion of it for the UI.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wudi/deckkit/model"
)

// Markdown renders the report as a Markdown document. Output is
// deterministic for a given report: issues appear grouped by severity,
// preserving their order within each group.
func Markdown(rep *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Accessibility Report\n\n")
	fmt.Fprintf(&b, "Job: `%s`\n\n", rep.JobID)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Score | %.1f / 100 |\n", rep.Score)
	fmt.Fprintf(&b, "| PDF/UA ready | %s |\n", yesNo(rep.PDFUAReady))
	fmt.Fprintf(&b, "| Slides | %d |\n", rep.TotalSlides)
	fmt.Fprintf(&b, "| Elements | %d |\n", rep.TotalElements)
	fmt.Fprintf(&b, "| Images | %d |\n", rep.TotalImages)
	fmt.Fprintf(&b, "| Images with alt text | %d |\n\n", rep.ImagesWithAltText)

	writeSeverity(&b, rep.Issues, model.SeverityError, "Errors")
	writeSeverity(&b, rep.Issues, model.SeverityWarning, "Warnings")
	writeSeverity(&b, rep.Issues, model.SeverityInfo, "Hints")

	if len(rep.Issues) == 0 {
		fmt.Fprintf(&b, "No accessibility issues found.\n")
	}

	return b.String()
}

func writeSeverity(b *strings.Builder, issues []model.Issue, severity model.Severity, heading string) {
	var matched []model.Issue
	for _, issue := range issues {
		if issue.Severity == severity {
			matched = append(matched, issue)
		}
	}
	if len(matched) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s (%d)\n\n", heading, len(matched))
	for _, issue := range matched {
		fmt.Fprintf(b, "- %s: %s", location(issue), issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(b, " (%s)", issue.Suggestion)
		}
		fmt.Fprintf(b, "\n")
	}
	fmt.Fprintf(b, "\n")
}

func location(issue model.Issue) string {
	if issue.SlideNumber == 0 {
		return "Document"
	}
	if issue.ElementID != "" {
		return fmt.Sprintf("Slide %d (%s)", issue.SlideNumber, issue.ElementID)
	}
	return fmt.Sprintf("Slide %d", issue.SlideNumber)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// ToHTML converts the Markdown rendering of the report to HTML. The GFM
// extension is needed for the summary table.
func ToHTML(rep *model.Report) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(rep)), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}
