package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"

	"github.com/yaklabco/postlint/internal/ui/pretty"
	"github.com/yaklabco/postlint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Diagnostics are grouped per posting.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil {
			continue
		}

		if file.Result.MetadataError != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Result.MetadataError)),
			)
			continue
		}

		if file.Result.FileResult == nil {
			continue
		}

		diagnostics := file.Result.FileResult.Diagnostics
		ruleErrors := file.Result.FileResult.RuleErrors
		if len(diagnostics) == 0 && len(ruleErrors) == 0 && !file.Result.Skipped {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(diagnostics)))

		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "  %s\n",
				r.styles.Warning.Render("skipped: "+file.Result.SkipReason))
		}

		for _, ruleID := range sortedRuleIDs(ruleErrors) {
			fmt.Fprintf(r.bw, "  %s\n",
				r.styles.Error.Render(fmt.Sprintf("rule %s failed: %v", ruleID, ruleErrors[ruleID])))
		}

		for _, diag := range diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag))
			total++
		}

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func sortedRuleIDs(ruleErrors map[string]error) []string {
	if len(ruleErrors) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ruleErrors))
	for id := range ruleErrors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
