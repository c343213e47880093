package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// HTTPLinkRule checks for plain http:// links, which should be https.
type HTTPLinkRule struct {
	gate.BaseRule
}

// NewHTTPLinkRule creates a new insecure link rule.
func NewHTTPLinkRule() *HTTPLinkRule {
	return &HTTPLinkRule{
		BaseRule: gate.NewBaseRule(
			"http-link",
			"Links should use https, not http",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *HTTPLinkRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckHTTPLink
}

// Apply searches the body for the http protocol prefix.
func (r *HTTPLinkRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if !strings.Contains(ctx.Body(), "http://") {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found 'http://' link").
		WithSuppressKey(gate.SuppressKey("httplink")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// HugoLocalhostRule checks for Hugo preview links copied out of a local
// 'hugo server' session.
type HugoLocalhostRule struct {
	gate.BaseRule
}

// NewHugoLocalhostRule creates a new preview link rule.
func NewHugoLocalhostRule() *HugoLocalhostRule {
	return &HugoLocalhostRule{
		BaseRule: gate.NewBaseRule(
			"hugo-localhost",
			"Hugo preview links must not survive in postings",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *HugoLocalhostRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckHugoLocalhost
}

// Apply searches the body for the local preview URL.
func (r *HugoLocalhostRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if !strings.Contains(ctx.Body(), "http://localhost:1313/") {
		return gate.Outcome{}, nil
	}

	diag := gate.NewDiagnostic(r.ID(), "Found Hugo preview link").
		WithSuppressKey(gate.SuppressKey("hugo_localhost")).
		Build()
	return gate.Outcome{Diagnostics: []gate.Diagnostic{diag}}, nil
}

// ForbiddenWebsitesRule checks for links to configured hosts. A host matches
// in any of its four URL spellings: http or https, with or without a
// trailing slash.
type ForbiddenWebsitesRule struct {
	gate.BaseRule
}

// NewForbiddenWebsitesRule creates a new forbidden host rule.
func NewForbiddenWebsitesRule() *ForbiddenWebsitesRule {
	return &ForbiddenWebsitesRule{
		BaseRule: gate.NewBaseRule(
			"forbidden-websites",
			"Configured websites must not be linked",
			false,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ForbiddenWebsitesRule) Enabled(cfg *config.Config) bool {
	return cfg.CheckForbiddenWebsites
}

// Apply searches the body for every URL form of every configured host.
func (r *ForbiddenWebsitesRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	body := ctx.Body()

	var diags []gate.Diagnostic
	for _, host := range ctx.Config.ForbiddenWebsites {
		found := strings.Contains(body, "https://"+host+"/") ||
			strings.Contains(body, "https://"+host) ||
			strings.Contains(body, "http://"+host+"/") ||
			strings.Contains(body, "http://"+host)
		if !found {
			continue
		}
		diags = append(diags, gate.NewDiagnostic(r.ID(),
			fmt.Sprintf("Found forbidden website: %s", host)).
			WithSuppressKey(gate.SuppressKey("forbidden_websites", host)).
			Build())
	}

	return gate.Outcome{Diagnostics: diags}, nil
}

// ReplaceBrokenLinksRule rewrites links to dead hosts with their configured
// replacement URL. The slash-terminated spelling is replaced before the bare
// one so the trailing slash is consumed by the replacement instead of
// surviving after it.
type ReplaceBrokenLinksRule struct {
	gate.BaseRule
}

// NewReplaceBrokenLinksRule creates a new link rewriting rule.
func NewReplaceBrokenLinksRule() *ReplaceBrokenLinksRule {
	return &ReplaceBrokenLinksRule{
		BaseRule: gate.NewBaseRule(
			"replace-broken-links",
			"Rewrite links to dead hosts with their replacement",
			true,
		),
	}
}

// Enabled reports whether the configuration switches this rule on.
func (r *ReplaceBrokenLinksRule) Enabled(cfg *config.Config) bool {
	return cfg.DoReplaceBrokenLinks
}

// Apply rewrites every URL form of every configured host. The suppression
// key disables the rewrite itself, not just the report.
func (r *ReplaceBrokenLinksRule) Apply(ctx *gate.RuleContext) (gate.Outcome, error) {
	if ctx.Meta.Suppressed(gate.SuppressKey("do_replace_broken_links")) {
		return gate.Outcome{Content: ctx.Content}, nil
	}

	output := ctx.Content
	for _, bl := range ctx.Config.BrokenLinks {
		output = strings.ReplaceAll(output, "https://"+bl.Orig+"/", bl.Replace)
		output = strings.ReplaceAll(output, "https://"+bl.Orig, bl.Replace)
		output = strings.ReplaceAll(output, "http://"+bl.Orig+"/", bl.Replace)
		output = strings.ReplaceAll(output, "http://"+bl.Orig, bl.Replace)
	}

	outcome := gate.Outcome{Content: output}
	if output != ctx.Content {
		outcome.Diagnostics = []gate.Diagnostic{
			gate.NewDiagnostic(r.ID(), "Replacing broken links").
				WithSuppressKey(gate.SuppressKey("do_replace_broken_links")).
				Build(),
		}
	}
	return outcome, nil
}
