package gate_test

import (
	"context"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/frontmatter"
	"github.com/yaklabco/postlint/pkg/gate"
)

func newTestContext(t *testing.T, content string) *gate.RuleContext {
	t.Helper()

	meta, err := frontmatter.Parse(content, "test.md")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return gate.NewRuleContext(context.Background(), content, meta, config.NewConfig(), "test.md")
}

func TestRuleContext_Body(t *testing.T) {
	t.Parallel()

	rc := newTestContext(t, "---\ntitle: T\n---\n\nBody here.\n")
	if rc.Body() != "Body here." {
		t.Errorf("Body() = %q", rc.Body())
	}
}

func TestRuleContext_BodyFallback(t *testing.T) {
	t.Parallel()

	// When the content no longer splits, the full content is the body.
	meta := &frontmatter.Metadata{}
	rc := gate.NewRuleContext(context.Background(), "plain text", meta, config.NewConfig(), "test.md")
	if rc.Body() != "plain text" {
		t.Errorf("Body() = %q, want full content", rc.Body())
	}
}

func TestRuleContext_BodyOffset(t *testing.T) {
	t.Parallel()

	content := "---\ntitle: T\n---\n\n# Head\n\ntext\n"
	rc := newTestContext(t, content)

	offset := rc.BodyOffset()
	bodyLines := rc.BodyLines()
	fileLines := rc.Lines()

	if bodyLines[0] != "# Head" {
		t.Fatalf("bodyLines[0] = %q", bodyLines[0])
	}
	if fileLines[offset] != "# Head" {
		t.Errorf("fileLines[%d] = %q, want # Head", offset, fileLines[offset])
	}
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	meta := &frontmatter.Metadata{}
	ctx, cancel := context.WithCancel(context.Background())
	rc := gate.NewRuleContext(ctx, "x", meta, config.NewConfig(), "test.md")

	if rc.Cancelled() {
		t.Error("Cancelled() = true before cancel")
	}
	cancel()
	if !rc.Cancelled() {
		t.Error("Cancelled() = false after cancel")
	}
}
