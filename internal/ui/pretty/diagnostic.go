package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *gate.Diagnostic) string {
	var builder strings.Builder

	location := s.FilePath.Render(diag.FilePath)
	if diag.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, diag.Line)
	}

	severity := s.FormatSeverity(diag.Severity)
	ruleDisplay := s.RuleID.Render("(" + diag.RuleID + ")")

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	))

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
