package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// MissingTagsRule checks that postings mentioning a configured word carry the
// tag mapped to that word.
type MissingTagsRule struct {
	gate.BaseRule
}

// NewMissingTagsRule creates a new word-to-tag mapping rule.
func NewMissingTagsRule() *MissingTagsRule {
	return &MissingTagsRule{
		BaseRule: gate.NewBaseRule(
			"missing-tags",
			"Postings mentioning a configured word must carry its mapped tag",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *MissingTagsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckMissingTags
}

// Apply looks for configured words in the body, both as substrings of the
// running text and as stripped tokens, and requires the mapped tag.
func (r *MissingTagsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if diag, ok := tagListProblem(r.ID(), ctx.Meta.HasTags, ctx.Meta.TagsMalformed); !ok {
		return gate.Outcome{Diagnostics: diag}, nil
	}

	bodyText := strings.ReplaceAll(ctx.Content, "\n", " ")
	tokens := gate.Tokens(ctx.Body())

	var diags []gate.Diagnostic
	for _, mt := range ctx.Config.MissingTags {
		if ctx.Meta.HasTag(mt.Tag) {
			continue
		}
		_, inTokens := tokens[strings.ToLower(mt.Word)]
		if !inTokens && !strings.Contains(bodyText, mt.Word) {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("'%s' tag is missing", mt.Tag)).
			WithSuppressKey(gate.SuppressKey("missing_tags", mt.Tag)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// MissingWordsAsTagsRule checks that configured words appearing in the body
// are also set as tags, using the word itself as the tag.
type MissingWordsAsTagsRule struct {
	gate.BaseRule
}

// NewMissingWordsAsTagsRule creates a new word-as-tag rule.
func NewMissingWordsAsTagsRule() *MissingWordsAsTagsRule {
	return &MissingWordsAsTagsRule{
		BaseRule: gate.NewBaseRule(
			"missing-words-as-tags",
			"Configured words appearing in the posting must also be tags",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *MissingWordsAsTagsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckMissingWordsAsTags
}

// Apply matches configured words against the body tokens.
func (r *MissingWordsAsTagsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if diag, ok := tagListProblem(r.ID(), ctx.Meta.HasTags, ctx.Meta.TagsMalformed); !ok {
		return gate.Outcome{Diagnostics: diag}, nil
	}

	tokens := gate.Tokens(ctx.Body())

	var diags []gate.Diagnostic
	for _, word := range ctx.Config.MissingWords {
		word = strings.ToLower(word)
		if _, ok := tokens[word]; !ok {
			continue
		}
		if ctx.Meta.HasTag(word) {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("'%s' tag is missing", word)).
			WithSuppressKey(gate.SuppressKey("missing_words", word)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// tagFormatPattern matches any character not allowed in a tag or category.
// Values must be lowercase and URL-safe without escaping.
var tagFormatPattern = regexp.MustCompile(`[^a-z0-9\-._äöüß]`)

// TagFormatRule enforces the uniform tag format. Violations are errors and
// cannot be suppressed; disable the check instead.
type TagFormatRule struct {
	gate.BaseRule
}

// NewTagFormatRule creates a new tag format rule.
func NewTagFormatRule() *TagFormatRule {
	return &TagFormatRule{
		BaseRule: gate.NewBaseRule(
			"tag-format",
			"Tags must be lowercase and URL-safe",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *TagFormatRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckLowercaseTags
}

// Apply validates every tag against the format pattern.
func (r *TagFormatRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if diag, ok := tagListProblem(r.ID(), ctx.Meta.HasTags, ctx.Meta.TagsMalformed); !ok {
		return gate.Outcome{Diagnostics: diag}, nil
	}

	var diags []gate.Diagnostic
	for _, tag := range ctx.Meta.Tags {
		if tagFormatPattern.MatchString(tag) {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Invalid tag: %s", tag)).
				WithSeverity(config.SeverityError).
				Build())
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// CategoryFormatRule enforces the uniform category format, like TagFormatRule.
type CategoryFormatRule struct {
	gate.BaseRule
}

// NewCategoryFormatRule creates a new category format rule.
func NewCategoryFormatRule() *CategoryFormatRule {
	return &CategoryFormatRule{
		BaseRule: gate.NewBaseRule(
			"category-format",
			"Categories must be lowercase and URL-safe",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *CategoryFormatRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckLowercaseCategories
}

// Apply validates every category against the format pattern.
func (r *CategoryFormatRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if ctx.Meta.CategoriesMalformed {
		diag := gate.NewDiagnostic(r.ID(), "Categories is not a list").Build()
		return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
	}
	if !ctx.Meta.HasCategories {
		diag := gate.NewDiagnostic(r.ID(), "No categories found").Build()
		return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
	}

	var diags []gate.Diagnostic
	for _, category := range ctx.Meta.Categories {
		if tagFormatPattern.MatchString(category) {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Invalid category: %s", category)).
				WithSeverity(config.SeverityError).
				Build())
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// ChangemeRule flags the 'changeme' placeholder left over from archetypes.
type ChangemeRule struct {
	gate.BaseRule
}

// NewChangemeRule creates a new placeholder rule.
func NewChangemeRule() *ChangemeRule {
	return &ChangemeRule{
		BaseRule: gate.NewBaseRule(
			"changeme",
			"The 'changeme' placeholder must not survive in tags or categories",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ChangemeRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckChangeme
}

// Apply looks for the placeholder in both tag lists.
func (r *ChangemeRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var diags []gate.Diagnostic

	if ctx.Meta.HasTag("changeme") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found 'changeme' tag!").
			WithSuppressKey(gate.SuppressKey("changeme_tag")).
			Build())
	}
	if ctx.Meta.HasCategory("changeme") {
		diags = append(diags, gate.NewDiagnostic(r.ID(), "Found 'changeme' category!").
			WithSuppressKey(gate.SuppressKey("changeme_category")).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// OneWayTagsRule checks directed tag implications: whenever Tag1 is set,
// Tag2 must be set as well.
type OneWayTagsRule struct {
	gate.BaseRule
}

// NewOneWayTagsRule creates a new directed tag implication rule.
func NewOneWayTagsRule() *OneWayTagsRule {
	return &OneWayTagsRule{
		BaseRule: gate.NewBaseRule(
			"tags-one-way",
			"Configured tags imply other tags in one direction",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *OneWayTagsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckMissingOtherOneWay
}

// Apply checks every configured pair in its declared direction.
func (r *OneWayTagsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if diag, ok := tagListProblem(r.ID(), ctx.Meta.HasTags, ctx.Meta.TagsMalformed); !ok {
		return gate.Outcome{Diagnostics: diag}, nil
	}

	var diags []gate.Diagnostic
	for _, pair := range ctx.Config.MissingOtherOneWay {
		if !ctx.Meta.HasTag(pair.Tag1) || ctx.Meta.HasTag(pair.Tag2) {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("Found '%s' tag but '%s' tag is missing", pair.Tag1, pair.Tag2)).
			WithSuppressKey(gate.SuppressKey("missing_other_tags_one_way", pair.Tag1, pair.Tag2)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// BothWaysTagsRule checks undirected tag pairings: each tag of a configured
// pair implies the other. Both directions share a single suppression key,
// derived from the pair's declaration order regardless of which tag was found.
type BothWaysTagsRule struct {
	gate.BaseRule
}

// NewBothWaysTagsRule creates a new undirected tag pairing rule.
func NewBothWaysTagsRule() *BothWaysTagsRule {
	return &BothWaysTagsRule{
		BaseRule: gate.NewBaseRule(
			"tags-both-ways",
			"Configured tag pairs imply each other",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *BothWaysTagsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckMissingOtherBothWays
}

// Apply checks every configured pair in both directions.
func (r *BothWaysTagsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if diag, ok := tagListProblem(r.ID(), ctx.Meta.HasTags, ctx.Meta.TagsMalformed); !ok {
		return gate.Outcome{Diagnostics: diag}, nil
	}

	var diags []gate.Diagnostic
	for _, pair := range ctx.Config.MissingOtherBothWays {
		key := gate.SuppressKey("missing_other_tags_both_ways", pair.Tag1, pair.Tag2)

		if ctx.Meta.HasTag(pair.Tag1) && !ctx.Meta.HasTag(pair.Tag2) {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Found '%s' tag but '%s' tag is missing", pair.Tag1, pair.Tag2)).
				WithSuppressKey(key).
				Build())
		}
		if ctx.Meta.HasTag(pair.Tag2) && !ctx.Meta.HasTag(pair.Tag1) {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Found '%s' tag but '%s' tag is missing", pair.Tag2, pair.Tag1)).
				WithSuppressKey(key).
				Build())
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// tagListProblem reports tag list availability for rules that need the tags
// list. ok is false when the rule cannot proceed; diags then carries the
// reason, which cannot be suppressed.
func tagListProblem(ruleID string, hasTags, malformed bool) (diags []gate.Diagnostic, ok bool) {
	switch {
	case malformed:
		return []gate.Diagnostic{
			gate.NewDiagnostic(ruleID, "Tags is not a list").Build(),
		}, false
	case !hasTags:
		return []gate.Diagnostic{
			gate.NewDiagnostic(ruleID, "No tags found").Build(),
		}, false
	}
	return nil, true
}
