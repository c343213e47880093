package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// imageExtensions are the asset types inspected for EXIF tags.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ImageSizeRule checks the size of files bundled with the posting. It scans
// the posting's own directory, so it only works for Hugo page bundles; the
// static directory is not covered. Files ignored in git never reach the
// published site and are skipped.
type ImageSizeRule struct {
	gate.BaseRule
}

// NewImageSizeRule creates a new bundled asset size rule.
func NewImageSizeRule() *ImageSizeRule {
	return &ImageSizeRule{
		BaseRule: gate.NewBaseRule(
			"image-size",
			"Bundled assets must stay below the configured size",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ImageSizeRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckImageSize
}

// Apply stats every file next to the posting.
func (r *ImageSizeRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	dir := filepath.Dir(ctx.Path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return resourceFailure(r.ID(), "scanning bundle directory", err), nil
	}

	var diags []gate.Diagnostic
	var large []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			diags = append(diags, resourceDiag(r.ID(), "stat "+entry.Name(), err))
			continue
		}
		if info.Size() <= ctx.Config.ImageSize {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if ignoredInGit(ctx, path) {
			continue
		}
		large = append(large, path)
	}

	if len(large) == 0 {
		return gate.Outcome{Diagnostics: diags}, nil
	}

	diags = append(diags, gate.NewDiagnostic(r.ID(), "Found large images, either resize them or suppress the warning").
		WithSuppressKey(gate.SuppressKey("image_size")).
		WithSuggestion("Large files: "+strings.Join(large, ", ")).
		Build())
	return gate.Outcome{Diagnostics: diags}, nil
}

// ExifTagsRule checks bundled images for EXIF tags that must not be
// published, like GPS positions or serial numbers. Tag data is read with
// exiftool; a missing exiftool surfaces as a warning on the posting, not
// a crash.
type ExifTagsRule struct {
	gate.BaseRule
}

// NewExifTagsRule creates a new forbidden EXIF tag rule.
func NewExifTagsRule() *ExifTagsRule {
	return &ExifTagsRule{
		BaseRule: gate.NewBaseRule(
			"image-exif-tags",
			"Bundled images must not carry forbidden EXIF tags",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ExifTagsRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckImageExifForbidden
}

// Apply inspects every bundled image that is not ignored in git.
func (r *ExifTagsRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	dir := filepath.Dir(ctx.Path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return resourceFailure(r.ID(), "scanning bundle directory", err), nil
	}

	var diags []gate.Diagnostic
	var flagged []string
	tagSet := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if ignoredInGit(ctx, path) {
			continue
		}

		tags, err := exifTags(ctx, path)
		if err != nil {
			diags = append(diags, resourceDiag(r.ID(), "reading EXIF data from "+path, err))
			continue
		}

		found := false
		for _, forbidden := range ctx.Config.ForbiddenExifTags {
			if _, ok := tags[forbidden]; ok {
				found = true
				tagSet[forbidden] = struct{}{}
			}
		}
		if found {
			flagged = append(flagged, path)
		}
	}

	if len(flagged) == 0 {
		return gate.Outcome{Diagnostics: diags}, nil
	}

	foundTags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		foundTags = append(foundTags, t)
	}
	sort.Strings(foundTags)

	diags = append(diags, gate.NewDiagnostic(r.ID(), "Found forbidden EXIF tags in images, either remove them or suppress the warning").
		WithSuppressKey(gate.SuppressKey("image_exif_tags_forbidden")).
		WithSuggestion(fmt.Sprintf("Images: %s; EXIF tags: %s",
			strings.Join(flagged, ", "), strings.Join(foundTags, ", "))).
		Build())
	return gate.Outcome{Diagnostics: diags}, nil
}

// resourceDiag turns a local resource failure, like an unreadable bundle
// directory or a failing exiftool invocation, into a warning on the posting
// so the rest of the run keeps going.
func resourceDiag(ruleID, what string, err error) gate.Diagnostic {
	return gate.NewDiagnostic(ruleID, fmt.Sprintf("%s: %v", what, err)).Build()
}

func resourceFailure(ruleID, what string, err error) gate.Outcome {
	return gate.Outcome{Diagnostics: []gate.Diagnostic{resourceDiag(ruleID, what, err)}}
}

func isImageFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ignoredInGit reports whether git ignores the file. Exit code 0 means
// ignored; 1 means tracked or untracked, 128 means no repository. Any
// failure counts as not ignored so the file still gets checked.
func ignoredInGit(ctx *gate.RuleContext, path string) bool {
	cmd := exec.CommandContext(ctx.Ctx, "git", "check-ignore", path)
	cmd.Stdout = nil
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return false
	}
	return stderr.Len() == 0
}

// exifTags reads the EXIF tag names of an image via exiftool's JSON output.
func exifTags(ctx *gate.RuleContext, path string) (map[string]struct{}, error) {
	out, err := exec.CommandContext(ctx.Ctx, "exiftool", "-json", path).Output()
	if err != nil {
		return nil, fmt.Errorf("running exiftool: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("parsing exiftool output: %w", err)
	}

	tags := make(map[string]struct{})
	for _, record := range records {
		for tag := range record {
			tags[tag] = struct{}{}
		}
	}
	return tags, nil
}
