package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
	"github.com/yaklabco/postlint/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrReadFailure indicates the document could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates the rewrite could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing one document end to end.
type PipelineResult struct {
	// FileResult holds the engine outcome. Nil when metadata parsing failed.
	*FileResult

	// Path is the processed document path.
	Path string

	// MetadataError is set when the frontmatter could not be parsed.
	// No rules ran and no rewrite occurred.
	MetadataError error

	// Skipped is true if the rewrite was skipped (concurrent modification).
	Skipped bool

	// SkipReason explains why the rewrite was skipped.
	SkipReason string

	// Written is true if the document was rewritten on disk.
	Written bool
}

// Failed reports whether this document must fail the run: a metadata parse
// failure or a surviving error-severity diagnostic.
func (pr *PipelineResult) Failed() bool {
	if pr.MetadataError != nil {
		return true
	}
	return pr.FileResult != nil && pr.FileResult.HasErrors()
}

// Pipeline orchestrates the safe processing of a single document:
// read with fingerprint, run the engine, rewrite atomically when changed.
type Pipeline struct {
	// Engine runs the rule battery.
	Engine *Engine
}

// NewPipeline creates a Pipeline over the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full pipeline for one document.
//
// A frontmatter parse failure is recorded on the result, not returned as an
// error: it fails the document, but the run continues with the next one.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, fp, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	fileResult, err := p.Engine.CheckContent(ctx, path, string(content), cfg)
	if err != nil {
		var parseErr *frontmatter.ParseError
		if errors.As(err, &parseErr) {
			result.MetadataError = err
			return result, nil
		}
		return nil, err
	}
	result.FileResult = fileResult

	if !fileResult.Changed || cfg.DryRun {
		return result, nil
	}

	// Refuse to overwrite a file someone else touched while we worked.
	modified, err := fsutil.Modified(ctx, fp)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(fileResult.Content), fp.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}
