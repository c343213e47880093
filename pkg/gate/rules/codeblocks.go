package rules

import (
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// CodeBlocksRule checks fenced code blocks. Every block must specify a
// syntax highlighting language, so opening fences (``` plus a language) and
// bare closing fences must pair up. Info strings are also validated against
// the known language aliases.
type CodeBlocksRule struct {
	gate.BaseRule
}

// NewCodeBlocksRule creates a new fenced code block rule.
func NewCodeBlocksRule() *CodeBlocksRule {
	return &CodeBlocksRule{
		BaseRule: gate.NewBaseRule(
			"code-blocks",
			"Fenced code blocks must specify a syntax highlighting language",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *CodeBlocksRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckCodeBlocks
}

// Apply counts opening and closing fences and validates the language names.
func (r *CodeBlocksRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	opening := 0
	closing := 0
	var diags []gate.Diagnostic

	for i, line := range ctx.BodyLines() {
		switch {
		case line == "```":
			closing++
		case strings.HasPrefix(line, "```") && len(line) > 3:
			opening++
			if lang, ok := fenceLanguage(line); ok {
				if _, known := enry.GetLanguageByAlias(lang); !known {
					diags = append(diags, gate.NewDiagnostic(r.ID(),
						fmt.Sprintf("Unknown code block language: %s", lang)).
						WithLine(ctx.BodyOffset()+i+1).
						WithSuppressKey(gate.SuppressKey("code_block_language")).
						WithSuggestion("Language list: https://gohugo.io/content-management/syntax-highlighting/").
						Build())
				}
			}
		}
	}

	if opening != closing {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found unmatching fenced code blocks").
			WithSuppressKey(gate.SuppressKey("unmatching_code_blocks")).
			WithSuggestion("Language list: https://gohugo.io/content-management/syntax-highlighting/").
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// fenceLanguage extracts the language name from an opening fence. Hugo
// highlight options in braces are not a language and yield ok=false.
func fenceLanguage(line string) (lang string, ok bool) {
	info := strings.TrimLeft(line, "`")
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", false
	}
	lang = strings.TrimSuffix(fields[0], ",")
	if lang == "" || strings.HasPrefix(lang, "{") {
		return "", false
	}
	return lang, true
}

// PsqlCodeBlocksRule checks for 'psql' code blocks. The highlighter has no
// psql lexer; 'postgresql' is the one to use.
type PsqlCodeBlocksRule struct {
	gate.BaseRule
}

// NewPsqlCodeBlocksRule creates a new psql code block rule.
func NewPsqlCodeBlocksRule() *PsqlCodeBlocksRule {
	return &PsqlCodeBlocksRule{
		BaseRule: gate.NewBaseRule(
			"psql-code-blocks",
			"Code blocks should use 'postgresql' instead of 'psql'",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *PsqlCodeBlocksRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckPsqlCodeBlocks
}

// Apply looks for psql opening fences.
func (r *PsqlCodeBlocksRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	for _, line := range ctx.BodyLines() {
		if line == "```psql" || line == "````psql" {
			diag := gate.NewDiagnostic(r.ID(), "Found 'psql' code blocks, use 'postgresql' instead").
				WithSuppressKey(gate.SuppressKey("psql_code")).
				Build()
			return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
		}
	}
	return gate.Outcome{}, nil
}

// EmptyLineAfterListRule checks that lists are followed by a blank line.
type EmptyLineAfterListRule struct {
	gate.BaseRule
}

// NewEmptyLineAfterListRule creates a new list spacing rule.
func NewEmptyLineAfterListRule() *EmptyLineAfterListRule {
	return &EmptyLineAfterListRule{
		BaseRule: gate.NewBaseRule(
			"empty-line-after-list",
			"Lists should be followed by an empty line",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *EmptyLineAfterListRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckEmptyLineAfterList
}

// Apply scans the body for list items followed directly by non-list text.
// Fenced code blocks are skipped.
func (r *EmptyLineAfterListRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var diags []gate.Diagnostic
	key := gate.SuppressKey("empty_line_after_list")

	lastWasList := false
	inFence := false
	offset := ctx.BodyOffset()

	for i, line := range ctx.BodyLines() {
		if gate.IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		switch {
		case line == "":
			lastWasList = false
		case !gate.IsListLine(line) && lastWasList:
			diags = append(diags, gate.NewDiagnostic(r.ID(), "Missing empty line after list").
				WithLine(offset+i+1).
				WithSuppressKey(key).
				Build())
		}

		if gate.IsListLine(line) {
			lastWasList = true
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// EmptyLineAfterCodeRule checks that closing code fences are followed by a
// blank line.
type EmptyLineAfterCodeRule struct {
	gate.BaseRule
}

// NewEmptyLineAfterCodeRule creates a new code block spacing rule.
func NewEmptyLineAfterCodeRule() *EmptyLineAfterCodeRule {
	return &EmptyLineAfterCodeRule{
		BaseRule: gate.NewBaseRule(
			"empty-line-after-code",
			"Code blocks should be followed by an empty line",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *EmptyLineAfterCodeRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckEmptyLineAfterCode
}

// Apply scans for text directly after a closing fence.
func (r *EmptyLineAfterCodeRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var diags []gate.Diagnostic
	key := gate.SuppressKey("empty_line_after_code")

	inFence := false
	lastClosedFence := false
	offset := ctx.BodyOffset()

	for i, line := range ctx.BodyLines() {
		if lastClosedFence && line != "" {
			diags = append(diags, gate.NewDiagnostic(r.ID(), "Missing empty line after code block").
				WithLine(offset+i+1).
				WithSuppressKey(key).
				Build())
		}

		if strings.HasPrefix(line, "```") && !inFence {
			inFence = true
			continue
		}
		if line == "```" && inFence {
			inFence = false
			lastClosedFence = true
			continue
		}

		lastClosedFence = false
	}

	return gate.Outcome{Diagnostics: diags}, nil
}
