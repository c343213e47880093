// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldConfigFile = "config_file"
	FieldWorkingDir = "working_dir"

	// Run option fields.
	FieldDryRun = "dry_run"
	FieldAll    = "all"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFilesModified   = "files_modified"
	FieldIssues          = "issues"
	FieldSuppressed      = "suppressed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldDescription = "description"
	FieldMutates     = "mutates"
)
