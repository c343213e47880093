package gate

import (
	"context"
	"fmt"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
)

// FileResult is the aggregate outcome of running the rule battery over one
// document.
type FileResult struct {
	// Path is the document's file path.
	Path string

	// Content is the final content after all mutating rules ran.
	Content string

	// Diagnostics are the surviving findings in emission order: rule
	// registration order, then each rule's internal order.
	Diagnostics []Diagnostic

	// Changed is true iff Content differs byte-for-byte from the content
	// the engine started with.
	Changed bool

	// SuppressedCount is the number of findings dropped by suppression flags.
	SuppressedCount int

	// RuleErrors maps rule IDs to internal rule failures. Rule failures do
	// not abort the pipeline.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics survived suppression.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasErrors returns true if any error-severity diagnostic survived
// suppression. The process exit status is derived from this.
func (fr *FileResult) HasErrors() bool {
	for _, d := range fr.Diagnostics {
		if d.Severity == config.SeverityError {
			return true
		}
	}
	return false
}

// ExitStatus derives the per-document exit status: 0 when no error-severity
// diagnostic survived, 1 otherwise.
func (fr *FileResult) ExitStatus() int {
	if fr.HasErrors() {
		return 1
	}
	return 0
}

// Engine threads document content through the configured rule battery.
type Engine struct {
	// Registry holds the rule battery in execution order.
	Registry *Registry
}

// NewEngine creates an Engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// CheckContent runs the full battery over one document.
//
// The metadata is parsed exactly once, from the content as given; every rule
// sees this original metadata even after upstream mutating rules rewrote the
// content. A *frontmatter.ParseError aborts the document before any rule
// runs.
func (e *Engine) CheckContent(
	ctx context.Context,
	path string,
	content string,
	cfg *config.Config,
) (*FileResult, error) {
	meta, err := frontmatter.Parse(content, path)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:       path,
		RuleErrors: make(map[string]error),
	}

	current := content

	for _, rule := range e.Registry.Enabled(cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, current, meta, cfg, path)

		outcome, err := rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rule.ID()] = err
			continue
		}

		if rule.Mutates() && outcome.Content != current {
			current = outcome.Content
			result.Changed = true
		}

		// Suppression is resolved here, not in the rules, so that rule
		// authors cannot forget the check.
		for _, diag := range outcome.Diagnostics {
			if diag.SuppressKey != "" && meta.Suppressed(diag.SuppressKey) {
				result.SuppressedCount++
				continue
			}
			if diag.FilePath == "" {
				diag.FilePath = path
			}
			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}

	result.Content = current
	return result, nil
}
