package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the config key the error refers to (e.g., "broken_links").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent the run from starting.
	Errors []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the configuration for fatal problems. A misconfigured
// check aborts before any posting is touched; half-configured runs produce
// misleading results.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	addError := func(field, message string, value any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: message,
		})
	}

	if cfg.DoReplaceBrokenLinks {
		if len(cfg.BrokenLinks) == 0 {
			addError("broken_links",
				"'do_replace_broken_links' is activated, but 'broken_links' data is not specified", nil)
		}
		for _, bl := range cfg.BrokenLinks {
			if bl.Orig == "" || bl.Replace == "" {
				addError("broken_links", "both 'orig' and 'replace' must be specified", bl)
				continue
			}
			if strings.HasPrefix(bl.Orig, "http") || strings.Contains(bl.Orig, "://") {
				addError("broken_links",
					fmt.Sprintf("the 'orig' link must not include the protocol: %s", bl.Orig), bl.Orig)
			}
			if !strings.Contains(bl.Replace, "://") {
				addError("broken_links",
					fmt.Sprintf("the 'replace' link must include the protocol: %s", bl.Replace), bl.Replace)
			}
		}
	}

	if cfg.CheckMissingTags {
		if len(cfg.MissingTags) == 0 {
			addError("missing_tags",
				"'check_missing_tags' is activated, but 'missing_tags' data is not specified", nil)
		}
		for _, mt := range cfg.MissingTags {
			if mt.Word == "" || mt.Tag == "" {
				addError("missing_tags", "both 'word' and 'tag' must be specified", mt)
			}
		}
	}

	if cfg.CheckMissingWordsAsTags && len(cfg.MissingWords) == 0 {
		addError("missing_words",
			"'check_missing_words_as_tags' is activated, but 'missing_words' data is not specified", nil)
	}

	if cfg.CheckMissingOtherOneWay {
		if len(cfg.MissingOtherOneWay) == 0 {
			addError("missing_other_tags_one_way",
				"'check_missing_other_tags_one_way' is activated, but 'missing_other_tags_one_way' data is not specified", nil)
		}
		for _, pair := range cfg.MissingOtherOneWay {
			if pair.Tag1 == "" || pair.Tag2 == "" {
				addError("missing_other_tags_one_way", "both 'tag1' and 'tag2' must be specified", pair)
			}
		}
	}

	if cfg.CheckMissingOtherBothWays {
		if len(cfg.MissingOtherBothWays) == 0 {
			addError("missing_other_tags_both_ways",
				"'check_missing_other_tags_both_ways' is activated, but 'missing_other_tags_both_ways' data is not specified", nil)
		}
		for _, pair := range cfg.MissingOtherBothWays {
			if pair.Tag1 == "" || pair.Tag2 == "" {
				addError("missing_other_tags_both_ways", "both 'tag1' and 'tag2' must be specified", pair)
			}
		}
	}

	if cfg.CheckMissingCursive && len(cfg.MissingCursive) == 0 {
		addError("missing_cursive",
			"'check_missing_cursive' is activated, but 'missing_cursive' data is not specified", nil)
	}

	if cfg.CheckForbiddenWords && len(cfg.ForbiddenWords) == 0 {
		addError("forbidden_words",
			"'check_forbidden_words' is activated, but 'forbidden_words' data is not specified", nil)
	}

	if cfg.CheckForbiddenWebsites {
		if len(cfg.ForbiddenWebsites) == 0 {
			addError("forbidden_websites",
				"'check_forbidden_websites' is activated, but 'forbidden_websites' data is not specified", nil)
		}
		for _, host := range cfg.ForbiddenWebsites {
			if strings.HasPrefix(host, "http") || strings.Contains(host, "://") {
				addError("forbidden_websites",
					fmt.Sprintf("the link must not include the protocol: %s", host), host)
			}
		}
	}

	if cfg.CheckImageSize && cfg.ImageSize <= 0 {
		addError("image_size", "image size must be greater zero", cfg.ImageSize)
	}

	if cfg.CheckImageExifForbidden && len(cfg.ForbiddenExifTags) == 0 {
		addError("forbidden_exif_tags",
			"'check_image_exif_tags_forbidden' is activated, but 'forbidden_exif_tags' data is not specified", nil)
	}

	if cfg.CheckHeaderFieldLength {
		if len(cfg.HeaderFieldLength) == 0 {
			addError("header_field_length",
				"'check_header_field_length' is activated, but 'header_field_length' data is not specified", nil)
		}
		for _, hfl := range cfg.HeaderFieldLength {
			if hfl.Field == "" {
				addError("header_field_length", "field name must be specified", hfl)
			}
			if hfl.Min < 0 {
				addError("header_field_length",
					fmt.Sprintf("length must not be negative: %s", hfl.Field), hfl.Min)
			}
		}
	}

	return result
}
