// Package gate provides the rule engine, diagnostics, and suppression
// resolution for postlint.
package gate

import (
	"github.com/yaklabco/postlint/pkg/config"
)

// Diagnostic represents a single finding for one document.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// Message is the human-readable description of the finding.
	Message string

	// Line is the 1-based line number in the content as passed to the rule,
	// or 0 when the finding has no meaningful position. Line numbers refer
	// to the content after upstream mutating rules have run, not to the
	// original file.
	Line int

	// Severity is warning or error. Only surviving error-severity
	// diagnostics fail the run.
	Severity config.Severity

	// SuppressKey is the exact suppression flag that silences this
	// diagnostic when declared in the document's frontmatter. Empty means
	// the diagnostic cannot be suppressed.
	SuppressKey string

	// Suggestion is an optional hint, usually naming the suppression flag.
	Suggestion string

	// FilePath is the path of the document, filled in by the engine.
	FilePath string
}

// Outcome is what a rule returns from one invocation.
type Outcome struct {
	// Content is the (possibly rewritten) document content. It is honored
	// only for rules whose Mutates() is true; read-only rules may leave it
	// empty.
	Content string

	// Diagnostics are the rule's findings, unfiltered. The engine applies
	// suppression resolution so that rule authors cannot forget it.
	Diagnostics []Diagnostic
}

// Rule is one independent detection or detection+rewrite unit.
//
// Rules must:
//   - Decide from the configuration alone whether they are enabled.
//   - Compute the exact suppression key for each finding.
//   - Never re-parse frontmatter; the engine supplies the one Metadata
//     parsed from the pre-run content.
//
// Mutating rules must additionally be idempotent: applying a rule to its own
// output yields no further change.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "whitespaces-at-end").
	ID() string

	// Description returns a short description of what the rule checks.
	Description() string

	// Mutates reports whether the rule rewrites content.
	Mutates() bool

	// Enabled reports whether the configuration switches this rule on.
	Enabled(cfg *config.Config) bool

	// Apply executes the rule against the given context.
	// It returns an error only for internal failures, never for findings.
	Apply(ctx *RuleContext) (Outcome, error)
}

// BaseRule provides the identity part of the Rule interface.
// Embed it and implement Enabled and Apply (and override Mutates for fixes).
type BaseRule struct {
	id      string
	desc    string
	mutates bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, desc string, mutates bool) BaseRule {
	return BaseRule{id: id, desc: desc, mutates: mutates}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Description returns a short description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Mutates reports whether the rule rewrites content.
func (r *BaseRule) Mutates() bool {
	return r.mutates
}
