package rules_test

import (
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate/rules"
)

// tagDoc builds a document with the given tags and body.
func tagDoc(tags []string, body string) string {
	content := "---\ntitle: T\ntags:\n"
	for _, tag := range tags {
		content += "  - " + tag + "\n"
	}
	return content + "---\n\n" + body
}

func TestMissingTagsRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckMissingTags = true
	cfg.MissingTags = []config.WordTag{
		{Word: "PostgreSQL", Tag: "postgresql"},
		{Word: "Ansible", Tag: "ansible"},
	}
	rule := rules.NewMissingTagsRule()

	t.Run("word without tag", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"golang"}, "All about PostgreSQL here.\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if diag.Message != "'postgresql' tag is missing" {
			t.Errorf("message = %q", diag.Message)
		}
		if diag.SuppressKey != "skip_missing_tags_postgresql" {
			t.Errorf("SuppressKey = %q", diag.SuppressKey)
		}
	})

	t.Run("tag present", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"postgresql"}, "All about PostgreSQL here.\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("word absent", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"golang"}, "Nothing relevant.\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("emphasized word still matches", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"golang"}, "Run *ansible* now.\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)
	})

	t.Run("no tags list", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\n---\n\nPostgreSQL\n", cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if diag.Message != "No tags found" {
			t.Errorf("message = %q", diag.Message)
		}
		if diag.SuppressKey != "" {
			t.Error("tag list problems must not be suppressable")
		}
	})

	t.Run("tags not a list", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\ntags: nope\n---\n\nbody\n", cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].Message != "Tags is not a list" {
			t.Errorf("message = %q", outcome.Diagnostics[0].Message)
		}
	})
}

func TestMissingWordsAsTagsRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckMissingWordsAsTags = true
	cfg.MissingWords = []string{"ansible"}
	rule := rules.NewMissingWordsAsTagsRule()

	t.Run("word without matching tag", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"golang"}, "Deploy with Ansible.\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].SuppressKey != "skip_missing_words_ansible" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})

	t.Run("word with matching tag", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"Ansible"}, "Deploy with ansible.\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}

func TestTagFormatRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckLowercaseTags = true
	rule := rules.NewTagFormatRule()

	tests := []struct {
		name string
		tag  string
		bad  bool
	}{
		{name: "lowercase", tag: "postgresql"},
		{name: "digits and dash", tag: "web-2.0"},
		{name: "umlaut", tag: "jährlich"},
		{name: "uppercase", tag: "PostgreSQL", bad: true},
		{name: "space", tag: "two words", bad: true},
		{name: "slash", tag: "a/b", bad: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := newRuleContext(t, tagDoc([]string{tt.tag}, "body\n"), cfg)
			outcome := apply(t, rule, ctx)

			want := 0
			if tt.bad {
				want = 1
			}
			wantDiagnostics(t, outcome, want)

			if tt.bad {
				diag := outcome.Diagnostics[0]
				if diag.Severity != config.SeverityError {
					t.Errorf("severity = %q, want error", diag.Severity)
				}
				if diag.SuppressKey != "" {
					t.Error("format violations must not be suppressable")
				}
			}
		})
	}
}

func TestCategoryFormatRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckLowercaseCategories = true
	rule := rules.NewCategoryFormatRule()

	t.Run("invalid category", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\ncategories:\n  - Development\n---\n\nbody\n", cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].Message != "Invalid category: Development" {
			t.Errorf("message = %q", outcome.Diagnostics[0].Message)
		}
	})

	t.Run("no categories", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\n---\n\nbody\n", cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].Message != "No categories found" {
			t.Errorf("message = %q", outcome.Diagnostics[0].Message)
		}
	})
}

func TestChangemeRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckChangeme = true
	rule := rules.NewChangemeRule()

	ctx := newRuleContext(t,
		"---\ntitle: T\ntags:\n  - changeme\ncategories:\n  - CHANGEME\n---\n\nbody\n", cfg)
	outcome := apply(t, rule, ctx)
	wantDiagnostics(t, outcome, 2)

	if outcome.Diagnostics[0].SuppressKey != "skip_changeme_tag" {
		t.Errorf("tag SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
	}
	if outcome.Diagnostics[1].SuppressKey != "skip_changeme_category" {
		t.Errorf("category SuppressKey = %q", outcome.Diagnostics[1].SuppressKey)
	}
}

func TestOneWayTagsRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckMissingOtherOneWay = true
	cfg.MissingOtherOneWay = []config.TagPair{{Tag1: "postgresql", Tag2: "database"}}
	rule := rules.NewOneWayTagsRule()

	t.Run("implication violated", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"postgresql"}, "body\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if diag.Message != "Found 'postgresql' tag but 'database' tag is missing" {
			t.Errorf("message = %q", diag.Message)
		}
		if diag.SuppressKey != "skip_missing_other_tags_one_way_postgresql_database" {
			t.Errorf("SuppressKey = %q", diag.SuppressKey)
		}
	})

	t.Run("reverse direction not checked", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"database"}, "body\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}

func TestBothWaysTagsRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckMissingOtherBothWays = true
	cfg.MissingOtherBothWays = []config.TagPair{{Tag1: "kvm", Tag2: "virtualization"}}
	rule := rules.NewBothWaysTagsRule()

	t.Run("forward direction", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"kvm"}, "body\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].SuppressKey != "skip_missing_other_tags_both_ways_kvm_virtualization" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})

	t.Run("reverse direction shares the canonical key", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"virtualization"}, "body\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		// The key follows the configured declaration order, not the
		// direction that triggered.
		if outcome.Diagnostics[0].SuppressKey != "skip_missing_other_tags_both_ways_kvm_virtualization" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})

	t.Run("both present", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, tagDoc([]string{"kvm", "virtualization"}, "body\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}
