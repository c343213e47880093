package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// TrailingWhitespaceRule reports lines that end in whitespace.
// Quote lines are exempt: a trailing double space inside a quote is a
// legitimate Markdown hard line break.
type TrailingWhitespaceRule struct {
	gate.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: gate.NewBaseRule(
			"whitespaces-at-end",
			"Lines should not end in whitespace",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *TrailingWhitespaceRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckWhitespacesAtEnd
}

// Apply counts lines with trailing whitespace.
func (r *TrailingWhitespaceRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	found := 0
	for _, line := range ctx.Lines() {
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		if line != strings.TrimRight(line, " \t") {
			found++
		}
	}

	if found == 0 {
		return gate.Outcome{}, nil
	}

	msg := fmt.Sprintf("Found %d lines with whitespaces at the end", found)
	if found == 1 {
		msg = "Found 1 line with whitespaces at the end"
	}

	diag := gate.NewDiagnostic(r.ID(), msg).
		WithSuppressKey(gate.SuppressKey("whitespaces_at_end")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// RemoveTrailingWhitespaceRule strips trailing whitespace from every line
// except quote lines, and guarantees a trailing newline. It is idempotent:
// applied to its own output it makes no further change.
type RemoveTrailingWhitespaceRule struct {
	gate.BaseRule
}

// NewRemoveTrailingWhitespaceRule creates a new whitespace fix rule.
func NewRemoveTrailingWhitespaceRule() *RemoveTrailingWhitespaceRule {
	return &RemoveTrailingWhitespaceRule{
		BaseRule: gate.NewBaseRule(
			"remove-whitespaces-at-end",
			"Remove whitespace at the end of lines",
			true,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *RemoveTrailingWhitespaceRule) Enabled(cfg *config.Config) bool {
	return cfg.DoRemoveWhitespacesAtEnd
}

// Apply rewrites the content with trailing whitespace removed.
func (r *RemoveTrailingWhitespaceRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	key := gate.SuppressKey("do_remove_whitespaces_at_end")
	if ctx.Meta.Suppressed(key) {
		// The suppression flag disables the rewrite itself, not just a
		// diagnostic, so it is honored here instead of in the engine.
		return gate.Outcome{Content: ctx.Content}, nil
	}

	lines := ctx.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, ">") {
			out[i] = line
			continue
		}
		out[i] = strings.TrimRight(line, " \t")
	}

	rewritten := strings.Join(out, "\n") + "\n"
	if rewritten == ctx.Content {
		return gate.Outcome{Content: ctx.Content}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Removing whitespaces at end of lines").
		WithSuppressKey(key).
		Build()
	return gate.Outcome{
		Content:     rewritten,
		Diagnostics: []gate.Diagnostic{diag},
	}, nil
}
