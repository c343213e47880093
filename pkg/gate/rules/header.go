package rules

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
	"github.com/yaklabco/postlint/pkg/gate"
)

// PreviewThumbnailRule checks that the header sets a non-empty 'thumbnail'
// field for the preview image.
type PreviewThumbnailRule struct {
	gate.BaseRule
}

// NewPreviewThumbnailRule creates a new preview thumbnail rule.
func NewPreviewThumbnailRule() *PreviewThumbnailRule {
	return &PreviewThumbnailRule{
		BaseRule: gate.NewBaseRule(
			"preview-thumbnail",
			"Postings should specify a preview image",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *PreviewThumbnailRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckPreviewThumbnail
}

// Apply checks the thumbnail header field.
func (r *PreviewThumbnailRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if ctx.Meta.StringField("thumbnail") != "" {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found no preview image in header").
		WithSuppressKey(gate.SuppressKey("preview_thumbnail")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// PreviewDescriptionRule checks that the header sets a non-empty
// 'description' field.
type PreviewDescriptionRule struct {
	gate.BaseRule
}

// NewPreviewDescriptionRule creates a new preview description rule.
func NewPreviewDescriptionRule() *PreviewDescriptionRule {
	return &PreviewDescriptionRule{
		BaseRule: gate.NewBaseRule(
			"preview-description",
			"Postings should specify a preview description",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *PreviewDescriptionRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckPreviewDescription
}

// Apply checks the description header field.
func (r *PreviewDescriptionRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if ctx.Meta.StringField("description") != "" {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found no preview description in header").
		WithSuppressKey(gate.SuppressKey("preview_description")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// ImageInsidePreviewRule checks that no image appears before the
// '<!--more-->' separator. Preview lists render the text above the
// separator, and an image there breaks the layout.
type ImageInsidePreviewRule struct {
	gate.BaseRule
	md goldmark.Markdown
}

// NewImageInsidePreviewRule creates a new preview image rule.
func NewImageInsidePreviewRule() *ImageInsidePreviewRule {
	return &ImageInsidePreviewRule{
		BaseRule: gate.NewBaseRule(
			"image-inside-preview",
			"The preview above the separator must not contain images",
			false,
		),
		md: goldmark.New(),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ImageInsidePreviewRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckImageInsidePreview
}

// Apply parses the preview segment as Markdown and walks the tree looking
// for image nodes. Without a separator the whole body counts as preview.
func (r *ImageInsidePreviewRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	body := ctx.Body()

	preview := body
	hasSeparator := strings.Contains(body, "<!--more-->")
	if hasSeparator {
		preview = body[:strings.Index(body, "<!--more-->")]
	}

	if !r.containsImage(preview) {
		return gate.Outcome{}, nil
	}

	msg := "Found image in preview, but no preview separator"
	if hasSeparator {
		msg = "Found image in preview, move it further down"
	}

	diag := gate.NewDiagnostic(r.ID(), msg).
		WithSuppressKey(gate.SuppressKey("image_inside_preview")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// containsImage parses the segment and reports whether the Markdown tree
// contains an image node. Image syntax inside code spans or code blocks does
// not count.
func (r *ImageInsidePreviewRule) containsImage(segment string) bool {
	source := []byte(segment)
	doc := r.md.Parser().Parse(text.NewReader(source))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindImage {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// HeaderFieldLengthRule checks minimum lengths of header fields. A missing
// field is always reported; only the too-short finding can be suppressed,
// per field.
type HeaderFieldLengthRule struct {
	gate.BaseRule
}

// NewHeaderFieldLengthRule creates a new header field length rule.
func NewHeaderFieldLengthRule() *HeaderFieldLengthRule {
	return &HeaderFieldLengthRule{
		BaseRule: gate.NewBaseRule(
			"header-field-length",
			"Header fields must satisfy their configured minimum length",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *HeaderFieldLengthRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckHeaderFieldLength
}

// Apply measures every configured field.
func (r *HeaderFieldLengthRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	var diags []gate.Diagnostic

	for _, hfl := range ctx.Config.HeaderFieldLength {
		length, present := headerFieldLength(ctx.Meta, hfl.Field)
		if !present {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Missing Frontmatter entry: %s", hfl.Field)).
				Build())
			continue
		}
		if length < hfl.Min {
			diags = append(diags, gate.NewDiagnostic(r.ID(),
				fmt.Sprintf("Frontmatter entry too short: %s (%d < %d chars)",
					hfl.Field, length, hfl.Min)).
				WithSuppressKey(gate.SuppressKey("header_field_length", hfl.Field)).
				Build())
		}
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// headerFieldLength measures a header field: the rune count for strings,
// the element count for lists, zero for anything else.
func headerFieldLength(meta *frontmatter.Metadata, field string) (length int, present bool) {
	switch field {
	case "tags":
		if !meta.HasTags && !meta.TagsMalformed {
			return 0, false
		}
		return len(meta.Tags), true
	case "categories":
		if !meta.HasCategories && !meta.CategoriesMalformed {
			return 0, false
		}
		return len(meta.Categories), true
	}

	value, ok := meta.Field(field)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case string:
		return len([]rune(v)), true
	case []any:
		return len(v), true
	default:
		return 0, true
	}
}
