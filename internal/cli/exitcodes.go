package cli

import (
	"errors"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/runner"
)

// Exit codes for postlint.
const (
	// ExitSuccess indicates successful execution with no failures.
	ExitSuccess = 0

	// ExitCheckFailed indicates the run completed but a posting failed.
	ExitCheckFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65
)

// Sentinel errors used to map command failures onto exit codes.
var (
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading or validation failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeForError maps a command error onto the process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitCheckFailed
	}
}

// ExitCodeFromResult derives the process exit code from the run result.
// The code is a pure function of the surviving diagnostics and the run
// options: errors always fail; warnings fail under --strict; rewrites fail
// under --fail-on-change.
func ExitCodeFromResult(result *runner.Result, cfg *config.Config) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitCheckFailed
	}

	if cfg != nil && cfg.Strict && result.Stats.DiagnosticsBySeverity["warning"] > 0 {
		return ExitCheckFailed
	}

	if cfg != nil && cfg.FailOnChange && result.HasChanges() {
		return ExitCheckFailed
	}

	return ExitSuccess
}
