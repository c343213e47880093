package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// MissingCursiveRule checks that configured words only appear in cursive
// (emphasis) form. A configured word found as a bare token, without its
// surrounding asterisks, is reported.
type MissingCursiveRule struct {
	gate.BaseRule
}

// NewMissingCursiveRule creates a new cursive formatting rule.
func NewMissingCursiveRule() *MissingCursiveRule {
	return &MissingCursiveRule{
		BaseRule: gate.NewBaseRule(
			"missing-cursive",
			"Configured words must be written in cursive",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *MissingCursiveRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckMissingCursive
}

// Apply tokenizes the body, skipping headlines, quotes, and image lines, and
// looks for bare occurrences of configured words. Tokens keep their emphasis
// markers, so '*word*' does not match a configured 'word'.
func (r *MissingCursiveRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var kept []string
	for _, line := range ctx.BodyLines() {
		if strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, ">") ||
			strings.HasPrefix(line, "!") {
			continue
		}
		kept = append(kept, line)
	}
	tokens := gate.RawTokens(strings.Join(kept, "\n"))

	var diags []gate.Diagnostic
	for _, word := range ctx.Config.MissingCursive {
		if _, ok := tokens[word]; !ok {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("Found non-cursive token: %s", word)).
			WithSuppressKey(gate.SuppressKey("missing_cursive", word)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// IIAmRule checks for lowercase 'i' and "i'm" in running text. Both findings
// carry separate suppression keys.
type IIAmRule struct {
	gate.BaseRule
}

// NewIIAmRule creates a new lowercase pronoun rule.
func NewIIAmRule() *IIAmRule {
	return &IIAmRule{
		BaseRule: gate.NewBaseRule(
			"i-i-am",
			"The pronoun 'I' must be capitalized",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *IIAmRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckIIAm
}

// Apply searches the body, with newlines flattened to spaces, for the
// standalone lowercase forms.
func (r *IIAmRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	body := strings.ReplaceAll(ctx.Body(), "\n", " ")

	var diags []gate.Diagnostic
	if strings.Contains(body, " i ") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found lowercase 'i' in text").
			WithSuppressKey(gate.SuppressKey("i_in_text")).
			Build())
	}
	if strings.Contains(body, " i'm ") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found lowercase 'i'm' in text").
			WithSuppressKey(gate.SuppressKey("i_am_in_text")).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// DassRule checks for the outdated German spelling 'daß'.
type DassRule struct {
	gate.BaseRule
}

// NewDassRule creates a new German spelling rule.
func NewDassRule() *DassRule {
	return &DassRule{
		BaseRule: gate.NewBaseRule(
			"dass",
			"The outdated German spelling 'daß' must not be used",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *DassRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckDass
}

// Apply searches the body for the spelling.
func (r *DassRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if !strings.Contains(ctx.Body(), "daß") {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found 'daß' in text").
		WithSuppressKey(gate.SuppressKey("dass")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// ForbiddenWordsRule checks for words that must not appear in a posting.
// Matching is a case-sensitive substring search, each word with its own
// suppression key.
type ForbiddenWordsRule struct {
	gate.BaseRule
}

// NewForbiddenWordsRule creates a new forbidden word rule.
func NewForbiddenWordsRule() *ForbiddenWordsRule {
	return &ForbiddenWordsRule{
		BaseRule: gate.NewBaseRule(
			"forbidden-words",
			"Configured words must not appear in the posting",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ForbiddenWordsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckForbiddenWords
}

// Apply searches the body for every configured word.
func (r *ForbiddenWordsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	body := ctx.Body()

	var diags []gate.Diagnostic
	for _, word := range ctx.Config.ForbiddenWords {
		if !strings.Contains(body, word) {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("Found forbidden word: %s", word)).
			WithSuppressKey(gate.SuppressKey("forbidden_words", word)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// FixmeRule checks for leftover FIXME markers, case-insensitively.
type FixmeRule struct {
	gate.BaseRule
}

// NewFixmeRule creates a new FIXME marker rule.
func NewFixmeRule() *FixmeRule {
	return &FixmeRule{
		BaseRule: gate.NewBaseRule(
			"fixme",
			"FIXME markers must not survive in published postings",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *FixmeRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckFixme
}

// Apply searches the lowercased body for the marker.
func (r *FixmeRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if !strings.Contains(strings.ToLower(ctx.Body()), "fixme") {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found FIXME in text!").
		WithSuppressKey(gate.SuppressKey("fixme")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// DoubleBracketsRule checks for doubled parentheses outside code blocks,
// which usually indicate a broken shortcode or link. Opening and closing
// pairs carry separate suppression keys.
type DoubleBracketsRule struct {
	gate.BaseRule
}

// NewDoubleBracketsRule creates a new doubled parentheses rule.
func NewDoubleBracketsRule() *DoubleBracketsRule {
	return &DoubleBracketsRule{
		BaseRule: gate.NewBaseRule(
			"double-brackets",
			"Doubled parentheses must not appear outside code blocks",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *DoubleBracketsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckDoubleBrackets
}

// Apply searches the body with code blocks removed.
func (r *DoubleBracketsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	body := strings.Join(gate.WithoutCodeBlocks(ctx.BodyLines()), "")

	var diags []gate.Diagnostic
	if strings.Contains(body, "((") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found opening double brackets!").
			WithSuppressKey(gate.SuppressKey("double_brackets_opening")).
			Build())
	}
	if strings.Contains(body, "))") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found closing double brackets!").
			WithSuppressKey(gate.SuppressKey("double_brackets_closing")).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}
