package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// MoreSeparatorRule checks that the body contains a <!--more--> preview
// separator.
type MoreSeparatorRule struct {
	gate.BaseRule
}

// NewMoreSeparatorRule creates a new preview separator rule.
func NewMoreSeparatorRule() *MoreSeparatorRule {
	return &MoreSeparatorRule{
		BaseRule: gate.NewBaseRule(
			"more-separator",
			"Postings should contain a '<!--more-->' preview separator",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *MoreSeparatorRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckFindMoreSeparator
}

// Apply checks for the separator in the body.
func (r *MoreSeparatorRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if strings.Contains(ctx.Body(), "<!--more-->") {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Missing '<!--more-->' separator in Markdown").
		WithSuppressKey(gate.SuppressKey("more_separator")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// HeadlineLevelRule reports headlines of a given level. Deeply nested
// headlines are usually a sign the posting should be restructured.
type HeadlineLevelRule struct {
	gate.BaseRule
	level int
}

// NewHeadlineLevelRule creates a rule flagging headlines of the given level.
// Only levels 3, 4, and 5 are configurable.
func NewHeadlineLevelRule(level int) *HeadlineLevelRule {
	return &HeadlineLevelRule{
		BaseRule: gate.NewBaseRule(
			fmt.Sprintf("headline-%d", level),
			fmt.Sprintf("Level %d headlines should not be used", level),
			false,
		),
		level: level,
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *HeadlineLevelRule) Enabled(cfg *config.Config) bool {
	switch r.level {
	case 3:
		return cfg.CheckFind3Headline
	case 4:
		return cfg.CheckFind4Headline
	case 5:
		return cfg.CheckFind5Headline
	default:
		return false
	}
}

// Apply looks for a headline marker of the configured level.
func (r *HeadlineLevelRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	marker := strings.Repeat("#", r.level) + " "

	for i, line := range ctx.Lines() {
		if strings.HasPrefix(line, marker) {
			diag := gate.NewDiagnostic(r.ID(), fmt.Sprintf("Headline %d in Markdown", r.level)).
				WithLine(i + 1).
				WithSuppressKey(gate.SuppressKey(fmt.Sprintf("headline%d", r.level))).
				Build()
			return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
		}
	}

	return gate.Outcome{}, nil
}

// EmptyLineAfterHeaderRule checks that headings are followed by a blank line.
// Fenced code blocks are skipped; a '#' inside code is not a heading.
type EmptyLineAfterHeaderRule struct {
	gate.BaseRule
}

// NewEmptyLineAfterHeaderRule creates a new heading spacing rule.
func NewEmptyLineAfterHeaderRule() *EmptyLineAfterHeaderRule {
	return &EmptyLineAfterHeaderRule{
		BaseRule: gate.NewBaseRule(
			"empty-line-after-header",
			"Headings should be followed by an empty line",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *EmptyLineAfterHeaderRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckEmptyLineAfterHeader
}

// Apply scans the body for headings followed directly by text.
func (r *EmptyLineAfterHeaderRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var diags []gate.Diagnostic
	key := gate.SuppressKey("empty_line_after_header")

	lastWasHeading := false
	lastHeading := ""
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
			lastWasHeading = false
			lastHeading = ""
		case !strings.HasPrefix(line, "#") && lastWasHeading:
			diag := gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Missing empty line after header: %s", lastHeading)).
				WithLine(offset + i + 1).
				WithSuppressKey(key).
				Build()
			diags = append(diags, diag)
			lastWasHeading = false
			lastHeading = ""
		}

		if strings.HasPrefix(line, "#") {
			lastWasHeading = true
			lastHeading = line
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}
