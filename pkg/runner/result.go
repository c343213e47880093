package runner

import "github.com/yaklabco/postlint/pkg/gate"

// FileOutcome wraps a PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the posting that was processed.
	Path string

	// Result contains the pipeline result for this posting.
	// May be nil if processing failed outright.
	Result *gate.PipelineResult

	// Error is set if the posting could not be processed at all, like a
	// read or write failure.
	Error error
}

// Failed reports whether this posting fails the run.
func (fo FileOutcome) Failed() bool {
	if fo.Error != nil {
		return true
	}
	return fo.Result != nil && fo.Result.Failed()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of postings found.
	FilesDiscovered int

	// FilesProcessed is the number of postings processed end to end.
	FilesProcessed int

	// FilesSkipped is the number of rewrites skipped, e.g. because the
	// posting changed on disk while the rules ran.
	FilesSkipped int

	// FilesErrored is the number of postings with read, write, or
	// frontmatter failures.
	FilesErrored int

	// FilesWithIssues is the number of postings with surviving diagnostics.
	FilesWithIssues int

	// FilesModified is the number of postings rewritten on disk.
	FilesModified int

	// DiagnosticsTotal is the number of surviving diagnostics over all
	// postings.
	DiagnosticsTotal int

	// DiagnosticsSuppressed is the number of findings silenced by
	// suppression flags over all postings.
	DiagnosticsSuppressed int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// RuleFailures is the number of rules that returned an error instead
	// of completing, over all postings.
	RuleFailures int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each posting in path order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any posting failed: a surviving
// error-severity diagnostic, a frontmatter parse failure, or a processing
// error.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	for _, fo := range r.Files {
		if fo.Failed() {
			return true
		}
	}
	return false
}

// HasIssues reports whether any diagnostics survived.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasChanges reports whether any posting was rewritten, or would have been
// rewritten in a dry run.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	for _, fo := range r.Files {
		if fo.Result == nil || fo.Result.FileResult == nil {
			continue
		}
		if fo.Result.FileResult.Changed {
			return true
		}
	}
	return false
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.MetadataError != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}

	fr := outcome.Result.FileResult
	if fr == nil {
		return
	}

	r.Stats.DiagnosticsTotal += len(fr.Diagnostics)
	r.Stats.DiagnosticsSuppressed += fr.SuppressedCount
	r.Stats.RuleFailures += len(fr.RuleErrors)
	if len(fr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range fr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
