// Package frontmatter parses the YAML header of a blog posting into a typed,
// immutable Metadata view. The header is parsed exactly once per document,
// before any rule runs, and is never re-derived mid-run.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---"

// Parse failure reasons.
var (
	// ErrMissingHeader indicates the document does not start with a frontmatter block.
	ErrMissingHeader = errors.New("content does not start with frontmatter")

	// ErrUnterminatedHeader indicates the opening delimiter is never closed.
	ErrUnterminatedHeader = errors.New("frontmatter is not terminated")
)

// ParseError describes a fatal frontmatter problem for one document.
// No rules run for a document whose header fails to parse.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("frontmatter: %v", e.Err)
	}
	return fmt.Sprintf("frontmatter: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Metadata is the typed view over a document's frontmatter. Raw tag and
// category values are preserved as written; membership helpers normalize
// case and surrounding whitespace.
type Metadata struct {
	// Tags holds the raw tag values in declaration order.
	Tags []string

	// HasTags is true if a "tags" key exists and is a list.
	HasTags bool

	// TagsMalformed is true if a "tags" key exists but is not a list.
	TagsMalformed bool

	// Categories holds the raw category values in declaration order.
	Categories []string

	// HasCategories is true if a "categories" key exists and is a list.
	HasCategories bool

	// CategoriesMalformed is true if a "categories" key exists but is not a list.
	CategoriesMalformed bool

	// Fields maps every other header key to its raw decoded value.
	Fields map[string]any

	suppressions map[string]struct{}
}

// Suppressed reports whether the given suppression key was declared in the
// document's "suppresswarnings" list. The test is exact string membership;
// there is no pattern or prefix matching.
func (m *Metadata) Suppressed(key string) bool {
	if m == nil || key == "" {
		return false
	}
	_, ok := m.suppressions[key]
	return ok
}

// Suppressions returns the declared suppression keys in no particular order.
func (m *Metadata) Suppressions() []string {
	keys := make([]string, 0, len(m.suppressions))
	for k := range m.suppressions {
		keys = append(keys, k)
	}
	return keys
}

// HasTag reports whether a tag is present. Comparison is case-insensitive
// and ignores surrounding whitespace.
func (m *Metadata) HasTag(tag string) bool {
	return containsFold(m.Tags, tag)
}

// HasCategory reports whether a category is present, compared like HasTag.
func (m *Metadata) HasCategory(category string) bool {
	return containsFold(m.Categories, category)
}

// Field returns the raw value of an arbitrary header field.
func (m *Metadata) Field(name string) (any, bool) {
	v, ok := m.Fields[name]
	return v, ok
}

// StringField returns a header field as a string. Missing fields and
// non-string values yield the empty string.
func (m *Metadata) StringField(name string) string {
	if s, ok := m.Fields[name].(string); ok {
		return s
	}
	return ""
}

func containsFold(values []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// Split separates a document into its raw frontmatter block and body.
// The returned frontmatter excludes the delimiters; the body is trimmed of
// leading and trailing blank lines.
func Split(content string) (header, body string, err error) {
	if !strings.HasPrefix(content, Delimiter+"\n") {
		return "", "", ErrMissingHeader
	}

	rest := content[len(Delimiter)+1:]
	end := strings.Index(rest, "\n"+Delimiter+"\n")
	if end < 0 {
		// The closing delimiter may terminate the file without a trailing newline.
		if strings.HasSuffix(rest, "\n"+Delimiter) {
			return strings.TrimSpace(rest[:len(rest)-len(Delimiter)-1]), "", nil
		}
		return "", "", ErrUnterminatedHeader
	}

	header = strings.TrimSpace(rest[:end])
	body = strings.TrimSpace(rest[end+len(Delimiter)+2:])
	return header, body, nil
}

// Parse extracts the Metadata from a full document. path is used only for
// error reporting.
func Parse(content, path string) (*Metadata, error) {
	header, _, err := Split(content)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("invalid YAML: %w", err)}
	}

	meta := &Metadata{
		Fields:       make(map[string]any),
		suppressions: make(map[string]struct{}),
	}

	for key, value := range raw {
		switch key {
		case "tags":
			meta.Tags, meta.TagsMalformed = stringList(value)
			meta.HasTags = !meta.TagsMalformed
		case "categories":
			meta.Categories, meta.CategoriesMalformed = stringList(value)
			meta.HasCategories = !meta.CategoriesMalformed
		case "suppresswarnings":
			// An empty or null list is valid: nothing is suppressed.
			flags, _ := stringList(value)
			for _, f := range flags {
				meta.suppressions[f] = struct{}{}
			}
		default:
			meta.Fields[key] = value
		}
	}

	return meta, nil
}

// stringList coerces a decoded YAML value into a list of strings.
// Non-list values report malformed=true; non-string items are stringified.
func stringList(value any) (items []string, malformed bool) {
	if value == nil {
		return nil, false
	}
	list, ok := value.([]any)
	if !ok {
		return nil, true
	}
	items = make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			items = append(items, s)
		} else {
			items = append(items, fmt.Sprint(item))
		}
	}
	return items, false
}
