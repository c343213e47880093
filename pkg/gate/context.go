package gate

import (
	"context"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
)

// RuleContext provides everything a rule needs for one invocation.
//
// Content is the current content of the document: the output of the previous
// rule in the pipeline, not necessarily the original file. Meta is always
// the Metadata parsed from the original, pre-mutation content.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Content is the full document content as threaded through the pipeline.
	Content string

	// Meta is the original document metadata, parsed once before any rule ran.
	Meta *frontmatter.Metadata

	// Config is the immutable run configuration.
	Config *config.Config

	// Path is the document's file path.
	Path string

	body       string
	bodySplit  bool
	lines      []string
	linesSplit bool
}

// NewRuleContext creates a RuleContext for one rule invocation.
func NewRuleContext(
	ctx context.Context,
	content string,
	meta *frontmatter.Metadata,
	cfg *config.Config,
	path string,
) *RuleContext {
	return &RuleContext{
		Ctx:     ctx,
		Content: content,
		Meta:    meta,
		Config:  cfg,
		Path:    path,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Body returns the Markdown body of the current content, without the
// frontmatter block. When the current content no longer splits cleanly
// (an upstream rule rewrote header-like text), the full content is returned
// so detection still sees everything.
func (rc *RuleContext) Body() string {
	if !rc.bodySplit {
		_, body, err := frontmatter.Split(rc.Content)
		if err != nil {
			body = rc.Content
		}
		rc.body = body
		rc.bodySplit = true
	}
	return rc.body
}

// Lines returns the current content split into lines.
func (rc *RuleContext) Lines() []string {
	if !rc.linesSplit {
		rc.lines = SplitLines(rc.Content)
		rc.linesSplit = true
	}
	return rc.lines
}

// BodyLines returns the body split into lines.
func (rc *RuleContext) BodyLines() []string {
	return SplitLines(rc.Body())
}

// BodyOffset returns the number of lines preceding the body in the current
// content. Adding it to a zero-based body line index yields a zero-based file
// line index.
func (rc *RuleContext) BodyOffset() int {
	return len(rc.Lines()) - len(rc.BodyLines())
}
