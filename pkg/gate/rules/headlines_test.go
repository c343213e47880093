package rules_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate/rules"
)

func TestMoreSeparatorRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckFindMoreSeparator = true
	rule := rules.NewMoreSeparatorRule()

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("intro\n\n<!--more-->\n\nrest\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("no separator here\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].SuppressKey != "skip_more_separator" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})
}

func TestHeadlineLevelRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckFind3Headline = true
	cfg.CheckFind4Headline = true

	t.Run("flags configured level", func(t *testing.T) {
		t.Parallel()

		rule := rules.NewHeadlineLevelRule(3)
		ctx := newRuleContext(t, doc("## fine\n\n### too deep\n\ntext\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if diag.Message != "Headline 3 in Markdown" {
			t.Errorf("message = %q", diag.Message)
		}
		if diag.SuppressKey != "skip_headline3" {
			t.Errorf("SuppressKey = %q", diag.SuppressKey)
		}
		if diag.Line == 0 {
			t.Error("line number not set")
		}
	})

	t.Run("reports first occurrence only", func(t *testing.T) {
		t.Parallel()

		rule := rules.NewHeadlineLevelRule(3)
		ctx := newRuleContext(t, doc("### one\n\ntext\n\n### two\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 1)
	})

	t.Run("level four does not match level three marker", func(t *testing.T) {
		t.Parallel()

		rule := rules.NewHeadlineLevelRule(4)
		ctx := newRuleContext(t, doc("### three only\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("enable toggles", func(t *testing.T) {
		t.Parallel()

		off := config.NewConfig()
		if rules.NewHeadlineLevelRule(3).Enabled(off) {
			t.Error("rule enabled without its toggle")
		}
		if !rules.NewHeadlineLevelRule(3).Enabled(cfg) {
			t.Error("rule disabled despite its toggle")
		}
		if rules.NewHeadlineLevelRule(5).Enabled(cfg) {
			t.Error("level 5 enabled without its toggle")
		}
	})
}

func TestEmptyLineAfterHeaderRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckEmptyLineAfterHeader = true
	rule := rules.NewEmptyLineAfterHeaderRule()

	t.Run("clean", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("## Head\n\ntext\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("missing blank line", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("## Head\ntext directly\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if !strings.Contains(diag.Message, "## Head") {
			t.Errorf("message %q does not name the heading", diag.Message)
		}
	})

	t.Run("line numbers refer to the file", func(t *testing.T) {
		t.Parallel()

		content := doc("## Head\ntext directly\n")
		ctx := newRuleContext(t, content, cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		lines := strings.Split(content, "\n")
		got := outcome.Diagnostics[0].Line
		if got < 1 || got > len(lines) || lines[got-1] != "text directly" {
			t.Errorf("Line = %d does not point at the offending file line", got)
		}
	})

	t.Run("hash inside code fence ignored", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("```sh\n# a comment\nls\n```\n\ntext\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("heading directly after heading tolerated", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("## One\n## Two\n\ntext\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("reports once per heading", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("## Head\nfirst line\nsecond line\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 1)
	})
}
