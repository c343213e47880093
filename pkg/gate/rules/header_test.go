package rules_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate/rules"
)

func TestPreviewThumbnailRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckPreviewThumbnail = true
	rule := rules.NewPreviewThumbnailRule()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("body\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].SuppressKey != "skip_preview_thumbnail" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\nthumbnail: images/preview.png\n---\n\nbody\n", cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}

func TestPreviewDescriptionRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckPreviewDescription = true
	rule := rules.NewPreviewDescriptionRule()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("body\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].SuppressKey != "skip_preview_description" {
			t.Errorf("SuppressKey = %q", outcome.Diagnostics[0].SuppressKey)
		}
	})

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, "---\ntitle: T\ndescription: What this is about\n---\n\nbody\n", cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}

func TestImageInsidePreviewRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckImageInsidePreview = true
	rule := rules.NewImageInsidePreviewRule()

	t.Run("image above separator", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("![alt](img.png)\n\n<!--more-->\n\nrest\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		diag := outcome.Diagnostics[0]
		if diag.Message != "Found image in preview, move it further down" {
			t.Errorf("message = %q", diag.Message)
		}
		if diag.SuppressKey != "skip_image_inside_preview" {
			t.Errorf("SuppressKey = %q", diag.SuppressKey)
		}
	})

	t.Run("image without separator", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("text\n\n![alt](img.png)\n"), cfg)
		outcome := apply(t, rule, ctx)
		wantDiagnostics(t, outcome, 1)

		if outcome.Diagnostics[0].Message != "Found image in preview, but no preview separator" {
			t.Errorf("message = %q", outcome.Diagnostics[0].Message)
		}
	})

	t.Run("image below separator", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("intro\n\n<!--more-->\n\n![alt](img.png)\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("image syntax inside code block ignored", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("```md\n![alt](img.png)\n```\n\n<!--more-->\n\nrest\n"), cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}

func TestHeaderFieldLengthRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.CheckHeaderFieldLength = true
	cfg.HeaderFieldLength = []config.FieldLength{
		{Field: "description", Min: 10},
		{Field: "tags", Min: 2},
	}
	rule := rules.NewHeaderFieldLengthRule()

	t.Run("missing field is an unsuppressable finding", func(t *testing.T) {
		t.Parallel()

		ctx := newRuleContext(t, doc("body\n"), cfg)
		outcome := apply(t, rule, ctx)
		// description is missing, tags has only one entry.
		wantDiagnostics(t, outcome, 2)

		missing := outcome.Diagnostics[0]
		if missing.Message != "Missing Frontmatter entry: description" {
			t.Errorf("message = %q", missing.Message)
		}
		if missing.SuppressKey != "" {
			t.Error("missing field finding must not be suppressable")
		}

		short := outcome.Diagnostics[1]
		if !strings.Contains(short.Message, "tags (1 < 2 chars)") {
			t.Errorf("message = %q", short.Message)
		}
		if short.SuppressKey != "skip_header_field_length_tags" {
			t.Errorf("SuppressKey = %q", short.SuppressKey)
		}
	})

	t.Run("satisfied lengths", func(t *testing.T) {
		t.Parallel()

		content := "---\ntitle: T\ndescription: long enough text\ntags:\n  - a\n  - b\n---\n\nbody\n"
		ctx := newRuleContext(t, content, cfg)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})

	t.Run("rune count not byte count", func(t *testing.T) {
		t.Parallel()

		short := config.NewConfig()
		short.CheckHeaderFieldLength = true
		short.HeaderFieldLength = []config.FieldLength{{Field: "description", Min: 4}}

		// Four runes, eight bytes.
		ctx := newRuleContext(t, "---\ntitle: T\ndescription: äöüß\n---\n\nbody\n", short)
		wantDiagnostics(t, apply(t, rule, ctx), 0)
	})
}
