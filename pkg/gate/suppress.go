package gate

import "strings"

// SuppressPrefix is the common prefix of all suppression keys.
const SuppressPrefix = "skip_"

// SuppressKey builds the suppression key for a rule instance. Dynamic tokens
// (a tag name, a word, a host) are appended in order, joined by underscores:
//
//	SuppressKey("missing_tags", "postgresql") == "skip_missing_tags_postgresql"
//
// Key construction is deterministic: a rule always derives the same key for
// the same configured instance, regardless of which side of a pair triggered
// the finding. For pairwise rules the configured order of the pair is the
// canonical token order.
func SuppressKey(short string, tokens ...string) string {
	if len(tokens) == 0 {
		return SuppressPrefix + short
	}
	return SuppressPrefix + short + "_" + strings.Join(tokens, "_")
}

// SuppressHint formats the standard suggestion naming the suppression key.
func SuppressHint(key string) string {
	return "Use '" + key + "' in 'suppresswarnings' to silence this warning"
}
