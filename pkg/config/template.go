package config

import "bytes"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every check with its parameters documented.
	// If false, generates a minimal template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# postlint configuration
# See: https://github.com/yaklabco/postlint

# Formatting checks
check_whitespaces_at_end: true
check_find_more_separator: true
check_find_3_headline: true
check_empty_line_after_header: true

# Frontmatter checks
check_lowercase_tags: true
check_lowercase_categories: true
check_changeme: true
check_preview_thumbnail: true
check_preview_description: true

# Content checks
check_http_link: true
check_hugo_localhost: true
check_code_blocks: true
check_fixme: true

# Rewrites
do_remove_whitespaces_at_end: true

# Tag rules
# check_missing_tags: true
# missing_tags:
#   - word: kubernetes
#     tag: kubernetes

# Broken link replacement
# do_replace_broken_links: true
# broken_links:
#   - orig: old.example.com
#     replace: https://new.example.com
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every check documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# postlint configuration - Full Template
# See: https://github.com/yaklabco/postlint
#
# This template lists every available check with its default settings.
# Boolean toggles also accept the legacy forms "1"/"0", "y"/"n", "yes"/"no".

# Formatting checks
check_whitespaces_at_end: true
check_find_more_separator: true
check_find_3_headline: true
check_find_4_headline: false
check_find_5_headline: false
check_empty_line_after_header: true
check_empty_line_after_list: true
check_empty_line_after_code: true
check_double_brackets: true

# Frontmatter checks
check_lowercase_tags: true
check_lowercase_categories: true
check_changeme: true
check_preview_thumbnail: true
check_preview_description: true

# Minimum lengths for frontmatter fields
# check_header_field_length: true
# header_field_length:
#   - title: 10
#   - description: 40

# Tag checks
check_missing_tags: false
# missing_tags:
#   - word: kubernetes
#     tag: kubernetes
# Additional word/tag pairs from a separate file (relative to this file)
# missing_tags_include: missing-tags.yml

check_missing_words_as_tags: false
# missing_words:
#   - ansible
# missing_words_include: missing-words.yml

# Require tag2 when tag1 is present
check_missing_other_tags_one_way: false
# missing_other_tags_one_way:
#   - tag1: postgresql
#     tag2: database

# Require each tag of a pair when the other is present
check_missing_other_tags_both_ways: false
# missing_other_tags_both_ways:
#   - tag1: kvm
#     tag2: virtualization

# Content checks
check_http_link: true
check_hugo_localhost: true
check_i_i_am: true
check_dass: false
check_fixme: true

# Words that must appear in cursive (*word*)
check_missing_cursive: false
# missing_cursive:
#   - systemd
# missing_cursive_include: missing-cursive.yml

check_forbidden_words: false
# forbidden_words:
#   - slave

check_forbidden_websites: false
# forbidden_websites:
#   - example-link-farm.com

# Code block checks
check_code_blocks: true
check_psql_code_blocks: true

# Preview checks
check_image_inside_preview: true

# Asset checks
check_image_size: false
# image_size: 1048576

check_image_exif_tags_forbidden: false
# forbidden_exif_tags:
#   - GPSLatitude
#   - GPSLongitude

# Rewrites
do_remove_whitespaces_at_end: true
do_replace_broken_links: false
# broken_links:
#   - orig: old.example.com
#     replace: https://new.example.com
`)

	return buf.Bytes()
}
