// Package rules implements the rule battery for blog postings. Rules are
// registered in a fixed execution order: read-only checks first, mutating
// fixes last, so every check sees the content the author actually wrote.
package rules

import "github.com/yaklabco/postlint/pkg/gate"

// RegisterAll registers the full rule battery on the given registry in
// execution order.
func RegisterAll(registry *gate.Registry) {
	for _, rule := range []gate.Rule{
		NewTrailingWhitespaceRule(),
		NewMoreSeparatorRule(),
		NewHeadlineLevelRule(3),
		NewHeadlineLevelRule(4),
		NewHeadlineLevelRule(5),
		NewMissingTagsRule(),
		NewMissingWordsAsTagsRule(),
		NewTagFormatRule(),
		NewCategoryFormatRule(),
		NewOneWayTagsRule(),
		NewBothWaysTagsRule(),
		NewMissingCursiveRule(),
		NewHTTPLinkRule(),
		NewHugoLocalhostRule(),
		NewIIAmRule(),
		NewChangemeRule(),
		NewCodeBlocksRule(),
		NewPsqlCodeBlocksRule(),
		NewImageInsidePreviewRule(),
		NewPreviewThumbnailRule(),
		NewPreviewDescriptionRule(),
		NewImageSizeRule(),
		NewExifTagsRule(),
		NewDassRule(),
		NewEmptyLineAfterHeaderRule(),
		NewEmptyLineAfterListRule(),
		NewEmptyLineAfterCodeRule(),
		NewForbiddenWordsRule(),
		NewForbiddenWebsitesRule(),
		NewHeaderFieldLengthRule(),
		NewDoubleBracketsRule(),
		NewFixmeRule(),
		NewRemoveTrailingWhitespaceRule(),
		NewReplaceBrokenLinksRule(),
	} {
		registry.Register(rule)
	}
}

//nolint:gochecknoinits // rule registration
func init() {
	RegisterAll(gate.DefaultRegistry)
}
