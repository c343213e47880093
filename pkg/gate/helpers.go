package gate

import (
	"regexp"
	"strings"
)

// SplitLines splits content into lines without trailing newlines.
// An empty string yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Tokens splits body text into lowercase word tokens. Newlines, commas, and
// periods act as separators; emphasis markers and backticks are stripped so
// that `*word*` and `` `word` `` match a configured plain word.
func Tokens(body string) map[string]struct{} {
	body = strings.NewReplacer("\n", " ", ",", " ", ".", " ").Replace(body)

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(body) {
		tok = strings.Trim(tok, "*")
		tok = strings.Trim(tok, "`")
		if tok == "" {
			continue
		}
		tokens[strings.ToLower(tok)] = struct{}{}
	}
	return tokens
}

// RawTokens splits body text into word tokens preserving case and markers.
func RawTokens(body string) map[string]struct{} {
	body = strings.NewReplacer("\n", " ", ",", " ", ".", " ").Replace(body)

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(body) {
		if tok != "" {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// listLinePattern matches unordered list items (-, *, +), ordered list items
// (number followed by a dot), and opening Hugo shortcodes, which can wrap a
// list item.
var listLinePattern = regexp.MustCompile(`^\s*([-*+]|\d+\.|\{\{%)\s+`)

// IsListLine reports whether a line is part of a Markdown list.
func IsListLine(line string) bool {
	return listLinePattern.MatchString(line)
}

// IsFenceLine reports whether a line opens or closes a fenced code block.
func IsFenceLine(line string) bool {
	return strings.HasPrefix(line, "```")
}

// WithoutCodeBlocks returns the given lines with fenced code block content
// (and the fence lines themselves) removed.
func WithoutCodeBlocks(lines []string) []string {
	var out []string
	inFence := false
	for _, line := range lines {
		if IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		out = append(out, line)
	}
	return out
}
