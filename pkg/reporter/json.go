package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/postlint/pkg/runner"
)

// severityWarning is the default severity for unclassified diagnostics.
const severityWarning = "warning"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single posting's results.
type JSONFileResult struct {
	Path        string            `json:"path"`
	Diagnostics []JSONDiagnostic  `json:"diagnostics"`
	Suppressed  int               `json:"suppressed,omitempty"`
	Modified    bool              `json:"modified,omitempty"`
	Skipped     bool              `json:"skipped,omitempty"`
	Error       string            `json:"error,omitempty"`
	RuleErrors  map[string]string `json:"ruleErrors,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	RuleID      string `json:"ruleId"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Line        int    `json:"line,omitempty"`
	SuppressKey string `json:"suppressKey,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	TotalSuppressed int            `json:"totalSuppressed"`
	RuleFailures    int            `json:"ruleFailures,omitempty"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileResult.Modified = file.Result.Written
			fileResult.Skipped = file.Result.Skipped

			if file.Result.MetadataError != nil {
				fileResult.Error = file.Result.MetadataError.Error()
				output.Summary.FilesErrored++
			}

			if file.Result.FileResult != nil {
				fileResult.Suppressed = file.Result.FileResult.SuppressedCount
				output.Summary.TotalSuppressed += fileResult.Suppressed

				if len(file.Result.FileResult.RuleErrors) > 0 {
					fileResult.RuleErrors = make(map[string]string, len(file.Result.FileResult.RuleErrors))
					for ruleID, ruleErr := range file.Result.FileResult.RuleErrors {
						fileResult.RuleErrors[ruleID] = ruleErr.Error()
					}
					output.Summary.RuleFailures += len(fileResult.RuleErrors)
				}

				for _, diag := range file.Result.FileResult.Diagnostics {
					fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
						RuleID:      diag.RuleID,
						Severity:    string(diag.Severity),
						Message:     diag.Message,
						Line:        diag.Line,
						SuppressKey: diag.SuppressKey,
						Suggestion:  diag.Suggestion,
					})
					output.Summary.TotalIssues++

					severity := string(diag.Severity)
					if severity == "" {
						severity = severityWarning
					}
					output.Summary.BySeverity[severity]++
				}
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
