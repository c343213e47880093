package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single summary line.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%d files checked", stats.FilesProcessed))

	if stats.DiagnosticsTotal > 0 {
		issues := fmt.Sprintf("%d issues", stats.DiagnosticsTotal)
		if stats.DiagnosticsBySeverity["error"] > 0 {
			parts = append(parts, s.Failure.Render(issues))
		} else {
			parts = append(parts, s.Warning.Render(issues))
		}
	} else {
		parts = append(parts, s.Success.Render("no issues"))
	}

	if stats.DiagnosticsSuppressed > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d suppressed", stats.DiagnosticsSuppressed)))
	}
	if stats.FilesModified > 0 {
		parts = append(parts, fmt.Sprintf("%d files rewritten", stats.FilesModified))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}
	if stats.RuleFailures > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d rule failures", stats.RuleFailures)))
	}

	return s.SummaryTitle.Render("Summary: ") + strings.Join(parts, ", ") + "\n"
}
