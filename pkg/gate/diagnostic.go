package gate

import "github.com/yaklabco/postlint/pkg/config"

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a warning diagnostic for the given rule.
func NewDiagnostic(ruleID, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:   ruleID,
			Message:  message,
			Severity: config.SeverityWarning,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithLine sets the 1-based line number.
func (b *DiagnosticBuilder) WithLine(line int) *DiagnosticBuilder {
	b.diag.Line = line
	return b
}

// WithSuppressKey sets the exact suppression key and the standard hint.
func (b *DiagnosticBuilder) WithSuppressKey(key string) *DiagnosticBuilder {
	b.diag.SuppressKey = key
	b.diag.Suggestion = SuppressHint(key)
	return b
}

// WithSuggestion overrides the suggestion text.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
