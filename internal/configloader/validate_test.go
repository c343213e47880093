package configloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/postlint/internal/configloader"
	"github.com/yaklabco/postlint/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setup     func(cfg *config.Config)
		wantField string
	}{
		{
			name:  "empty config is valid",
			setup: func(_ *config.Config) {},
		},
		{
			name: "broken links without data",
			setup: func(cfg *config.Config) {
				cfg.DoReplaceBrokenLinks = true
			},
			wantField: "broken_links",
		},
		{
			name: "broken link orig with protocol",
			setup: func(cfg *config.Config) {
				cfg.DoReplaceBrokenLinks = true
				cfg.BrokenLinks = []config.LinkReplacement{
					{Orig: "https://dead.example", Replace: "https://alive.example/"},
				}
			},
			wantField: "broken_links",
		},
		{
			name: "broken link replace without protocol",
			setup: func(cfg *config.Config) {
				cfg.DoReplaceBrokenLinks = true
				cfg.BrokenLinks = []config.LinkReplacement{
					{Orig: "dead.example", Replace: "alive.example"},
				}
			},
			wantField: "broken_links",
		},
		{
			name: "valid broken link",
			setup: func(cfg *config.Config) {
				cfg.DoReplaceBrokenLinks = true
				cfg.BrokenLinks = []config.LinkReplacement{
					{Orig: "dead.example", Replace: "https://alive.example/"},
				}
			},
		},
		{
			name: "missing tags without data",
			setup: func(cfg *config.Config) {
				cfg.CheckMissingTags = true
			},
			wantField: "missing_tags",
		},
		{
			name: "missing tags entry without tag",
			setup: func(cfg *config.Config) {
				cfg.CheckMissingTags = true
				cfg.MissingTags = []config.WordTag{{Word: "PostgreSQL"}}
			},
			wantField: "missing_tags",
		},
		{
			name: "one way pair without tag2",
			setup: func(cfg *config.Config) {
				cfg.CheckMissingOtherOneWay = true
				cfg.MissingOtherOneWay = []config.TagPair{{Tag1: "kvm"}}
			},
			wantField: "missing_other_tags_one_way",
		},
		{
			name: "both ways without data",
			setup: func(cfg *config.Config) {
				cfg.CheckMissingOtherBothWays = true
			},
			wantField: "missing_other_tags_both_ways",
		},
		{
			name: "cursive without data",
			setup: func(cfg *config.Config) {
				cfg.CheckMissingCursive = true
			},
			wantField: "missing_cursive",
		},
		{
			name: "forbidden website with protocol",
			setup: func(cfg *config.Config) {
				cfg.CheckForbiddenWebsites = true
				cfg.ForbiddenWebsites = []string{"https://link-farm.example"}
			},
			wantField: "forbidden_websites",
		},
		{
			name: "image size zero",
			setup: func(cfg *config.Config) {
				cfg.CheckImageSize = true
			},
			wantField: "image_size",
		},
		{
			name: "exif without data",
			setup: func(cfg *config.Config) {
				cfg.CheckImageExifForbidden = true
			},
			wantField: "forbidden_exif_tags",
		},
		{
			name: "header field length negative",
			setup: func(cfg *config.Config) {
				cfg.CheckHeaderFieldLength = true
				cfg.HeaderFieldLength = []config.FieldLength{{Field: "description", Min: -1}}
			},
			wantField: "header_field_length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.setup(cfg)

			result := configloader.Validate(cfg)
			if tt.wantField == "" {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.Errors)
				return
			}

			require.False(t, result.Valid())
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &configloader.ValidationError{Field: "image_size", Message: "must be greater zero"}
	assert.Equal(t, "image_size: must be greater zero", err.Error())
}
