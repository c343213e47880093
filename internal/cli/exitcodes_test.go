package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/postlint/internal/cli"
	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
	"github.com/yaklabco/postlint/pkg/runner"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "usage", err: cli.ErrUsage, want: cli.ExitInvalidUsage},
		{name: "wrapped usage", err: fmt.Errorf("bad flag: %w", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: cli.ErrConfig, want: cli.ExitConfigError},
		{name: "joined config", err: errors.Join(cli.ErrConfig, errors.New("missing file")), want: cli.ExitConfigError},
		{name: "check failed", err: cli.ErrCheckFailed, want: cli.ExitCheckFailed},
		{name: "unknown", err: errors.New("boom"), want: cli.ExitCheckFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCodeForError(tt.err))
		})
	}
}

func resultWithDiagnostic(severity config.Severity, changed bool) *runner.Result {
	fr := &gate.FileResult{
		Path:    "index.md",
		Changed: changed,
	}
	if severity != "" {
		fr.Diagnostics = []gate.Diagnostic{{
			RuleID:   "test-rule",
			Message:  "finding",
			Severity: severity,
		}}
	}

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "index.md", Result: &gate.PipelineResult{FileResult: fr, Path: "index.md"}},
		},
	}
	result.Stats.FilesProcessed = 1
	result.Stats.DiagnosticsBySeverity = map[string]int{}
	if severity != "" {
		result.Stats.DiagnosticsTotal = 1
		result.Stats.DiagnosticsBySeverity[string(severity)] = 1
	}
	return result
}

func TestExitCodeFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result *runner.Result
		setup  func(*config.Config)
		want   int
	}{
		{
			name:   "nil result",
			result: nil,
			want:   cli.ExitSuccess,
		},
		{
			name:   "clean run",
			result: resultWithDiagnostic("", false),
			want:   cli.ExitSuccess,
		},
		{
			name:   "warnings pass by default",
			result: resultWithDiagnostic(config.SeverityWarning, false),
			want:   cli.ExitSuccess,
		},
		{
			name:   "errors always fail",
			result: resultWithDiagnostic(config.SeverityError, false),
			want:   cli.ExitCheckFailed,
		},
		{
			name:   "strict fails on warnings",
			result: resultWithDiagnostic(config.SeverityWarning, false),
			setup:  func(cfg *config.Config) { cfg.Strict = true },
			want:   cli.ExitCheckFailed,
		},
		{
			name:   "changes pass by default",
			result: resultWithDiagnostic("", true),
			want:   cli.ExitSuccess,
		},
		{
			name:   "fail-on-change fails on rewrites",
			result: resultWithDiagnostic("", true),
			setup:  func(cfg *config.Config) { cfg.FailOnChange = true },
			want:   cli.ExitCheckFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, cfg))
		})
	}
}
