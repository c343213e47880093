package rules_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate/rules"
)

func TestTrailingWhitespaceRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckWhitespacesAtEnd = true
	rule := rules.NewTrailingWhitespaceRule()

	t.Run("clean", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("clean line\nanother\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 0)
	})

	t.Run("counts offending lines", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("one \ntwo\t\nthree\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if !strings.Contains(diag.Message, "2 lines") {
			t.Errorf("message = %q, want count of 2", diag.Message)
		}
		if diag.SuppressKey != "skip_whitespaces_at_end" {
			t.Errorf("SuppressKey = %q", diag.SuppressKey)
		}
	})

	t.Run("quote lines exempt", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("> quoted hard break  \ntext\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 0)
	})
}

func TestRemoveTrailingWhitespaceRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DoRemoveWhitespacesAtEnd = true
	rule := rules.NewRemoveTrailingWhitespaceRule()

	if !rule.Mutates() {
		t.Fatal("rule must report Mutates")
	}

	t.Run("strips whitespace", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("one \ntwo\t\n> quote  \n"), cfg)
		outcome := apply(t, rule, ctx)

		if strings.Contains(outcome.Content, "one \n") {
			t.Error("trailing space survived")
		}
		if !strings.Contains(outcome.Content, "> quote  \n") {
			t.Error("quote line must keep its hard break")
		}
		wantDiagnostics(t, outcome, 1)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("one \ntwo\n"), cfg)
		first := apply(t, rule, ctx)

		again := newRuleContext(t, first.Content, cfg)
		second := apply(t, rule, again)

		if second.Content != first.Content {
			t.Error("second application changed the content again")
		}
		wantDiagnostics(t, second, 0)
	})

	t.Run("suppression disables the rewrite", func(t *testing.T) {
		t.Parallel()

		content := "---\ntitle: T\nsuppresswarnings:\n  - skip_do_remove_whitespaces_at_end\n---\n\ndirty \n"
		ctx := newRuleContext(t, content, cfg)
		outcome := apply(t, rule, ctx)

		if outcome.Content != content {
			t.Error("suppressed rewrite modified the content")
		}
		wantDiagnostics(t, outcome, 0)
	})
}
