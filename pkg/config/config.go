// Package config defines core configuration types for postlint.
// These types are pure data structures; loading, merging, and validation
// live in internal/configloader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WordTag maps a word found in the posting body to a tag that must be set.
type WordTag struct {
	Word string `yaml:"word"`
	Tag  string `yaml:"tag"`
}

// TagPair relates two tags. For one-way pairs Tag2 must be present whenever
// Tag1 is; for both-ways pairs each implies the other. The declaration order
// (Tag1 before Tag2) is the canonical order for suppression keys.
type TagPair struct {
	Tag1 string `yaml:"tag1"`
	Tag2 string `yaml:"tag2"`
}

// LinkReplacement rewrites links to a dead host. Orig is a bare host without
// protocol; Replace is a full URL including the protocol.
type LinkReplacement struct {
	Orig    string `yaml:"orig"`
	Replace string `yaml:"replace"`
}

// FieldLength is a minimum length requirement for one frontmatter field.
// In YAML it is written as a single-entry mapping, e.g. "- description: 16".
type FieldLength struct {
	Field string
	Min   int
}

// UnmarshalYAML decodes the single-entry mapping form.
func (f *FieldLength) UnmarshalYAML(unmarshal func(any) error) error {
	var entry map[string]int
	if err := unmarshal(&entry); err != nil {
		return err
	}
	for field, minLen := range entry {
		f.Field = field
		f.Min = minLen
	}
	return nil
}

// Config is the root configuration for a postlint run. All checks default to
// disabled; the config file switches them on and supplies their parameters.
// A Config must be treated as immutable once a run starts.
type Config struct {
	// Read-only checks.
	CheckWhitespacesAtEnd     bool `yaml:"check_whitespaces_at_end"`
	CheckFindMoreSeparator    bool `yaml:"check_find_more_separator"`
	CheckFind3Headline        bool `yaml:"check_find_3_headline"`
	CheckFind4Headline        bool `yaml:"check_find_4_headline"`
	CheckFind5Headline        bool `yaml:"check_find_5_headline"`
	CheckMissingTags          bool `yaml:"check_missing_tags"`
	CheckMissingWordsAsTags   bool `yaml:"check_missing_words_as_tags"`
	CheckLowercaseTags        bool `yaml:"check_lowercase_tags"`
	CheckLowercaseCategories  bool `yaml:"check_lowercase_categories"`
	CheckMissingOtherOneWay   bool `yaml:"check_missing_other_tags_one_way"`
	CheckMissingOtherBothWays bool `yaml:"check_missing_other_tags_both_ways"`
	CheckMissingCursive       bool `yaml:"check_missing_cursive"`
	CheckHTTPLink             bool `yaml:"check_http_link"`
	CheckIIAm                 bool `yaml:"check_i_i_am"`
	CheckHugoLocalhost        bool `yaml:"check_hugo_localhost"`
	CheckChangeme             bool `yaml:"check_changeme"`
	CheckCodeBlocks           bool `yaml:"check_code_blocks"`
	CheckPsqlCodeBlocks       bool `yaml:"check_psql_code_blocks"`
	CheckImageInsidePreview   bool `yaml:"check_image_inside_preview"`
	CheckPreviewThumbnail     bool `yaml:"check_preview_thumbnail"`
	CheckPreviewDescription   bool `yaml:"check_preview_description"`
	CheckImageSize            bool `yaml:"check_image_size"`
	CheckImageExifForbidden   bool `yaml:"check_image_exif_tags_forbidden"`
	CheckDass                 bool `yaml:"check_dass"`
	CheckEmptyLineAfterHeader bool `yaml:"check_empty_line_after_header"`
	CheckEmptyLineAfterList   bool `yaml:"check_empty_line_after_list"`
	CheckEmptyLineAfterCode   bool `yaml:"check_empty_line_after_code"`
	CheckForbiddenWords       bool `yaml:"check_forbidden_words"`
	CheckForbiddenWebsites    bool `yaml:"check_forbidden_websites"`
	CheckHeaderFieldLength    bool `yaml:"check_header_field_length"`
	CheckDoubleBrackets       bool `yaml:"check_double_brackets"`
	CheckFixme                bool `yaml:"check_fixme"`

	// Mutating fixes.
	DoRemoveWhitespacesAtEnd bool `yaml:"do_remove_whitespaces_at_end"`
	DoReplaceBrokenLinks     bool `yaml:"do_replace_broken_links"`

	// Check parameters.
	BrokenLinks          []LinkReplacement `yaml:"broken_links"`
	MissingTags          []WordTag         `yaml:"missing_tags"`
	MissingTagsInclude   string            `yaml:"missing_tags_include"`
	MissingWords         []string          `yaml:"missing_words"`
	MissingWordsInclude  string            `yaml:"missing_words_include"`
	MissingOtherOneWay   []TagPair         `yaml:"missing_other_tags_one_way"`
	MissingOtherBothWays []TagPair         `yaml:"missing_other_tags_both_ways"`
	MissingCursive       []string          `yaml:"missing_cursive"`
	MissCursiveInclude   string            `yaml:"missing_cursive_include"`
	ForbiddenWords       []string          `yaml:"forbidden_words"`
	ForbiddenWebsites    []string          `yaml:"forbidden_websites"`
	ImageSize            int64             `yaml:"image_size"`
	ForbiddenExifTags    []string          `yaml:"forbidden_exif_tags"`
	HeaderFieldLength    []FieldLength     `yaml:"header_field_length"`

	// CLI-level options (not persisted to config files).

	// DryRun disables file rewrites.
	DryRun bool `yaml:"-"`

	// PrintDry prints the resulting content in dry-run mode.
	PrintDry bool `yaml:"-"`

	// All processes every discovered file regardless of age.
	All bool `yaml:"-"`

	// Strict treats surviving warnings as failures.
	Strict bool `yaml:"-"`

	// FailOnChange fails the run when a file was rewritten.
	FailOnChange bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of parallel workers (0 means GOMAXPROCS).
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with defaults: every check disabled, text output.
func NewConfig() *Config {
	return &Config{
		Format: FormatText,
	}
}
