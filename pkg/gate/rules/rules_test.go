package rules_test

import (
	"context"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
	"github.com/yaklabco/postlint/pkg/gate"
)

// newRuleContext builds a RuleContext for a full document.
func newRuleContext(t *testing.T, content string, cfg *config.Config) *gate.RuleContext {
	t.Helper()

	meta, err := frontmatter.Parse(content, "test.md")
	if err != nil {
		t.Fatalf("frontmatter.Parse: %v", err)
	}
	return gate.NewRuleContext(context.Background(), content, meta, cfg, "test.md")
}

// doc wraps a body in a minimal valid header.
func doc(body string) string {
	return "---\ntitle: T\ntags:\n  - golang\n---\n\n" + body
}

// apply runs a rule and fails the test on rule errors.
func apply(t *testing.T, rule gate.Rule, ctx *gate.RuleContext) gate.Outcome {
	t.Helper()

	outcome, err := rule.Apply(ctx)
	if err != nil {
		t.Fatalf("%s.Apply: %v", rule.ID(), err)
	}
	return outcome
}

// wantDiagnostics fails unless exactly n diagnostics were produced.
func wantDiagnostics(t *testing.T, outcome gate.Outcome, n int) {
	t.Helper()

	if len(outcome.Diagnostics) != n {
		t.Fatalf("got %d diagnostics, want %d: %+v", len(outcome.Diagnostics), n, outcome.Diagnostics)
	}
}
