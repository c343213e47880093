package rules_test

import (
	"context"
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
	"github.com/yaklabco/postlint/pkg/gate/rules"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := gate.NewRegistry()
	rules.RegisterAll(registry)

	all := registry.Rules()
	if len(all) == 0 {
		t.Fatal("no rules registered")
	}

	// Mutating fixes run last, after every read-only check.
	firstMutator := -1
	for i, rule := range all {
		if rule.Mutates() && firstMutator < 0 {
			firstMutator = i
		}
		if !rule.Mutates() && firstMutator >= 0 {
			t.Fatalf("read-only rule %s registered after mutator %s",
				rule.ID(), all[firstMutator].ID())
		}
	}
	if firstMutator < 0 {
		t.Fatal("no mutating rule registered")
	}

	// A few fixed positions the battery relies on.
	if all[0].ID() != "whitespaces-at-end" {
		t.Errorf("first rule = %s", all[0].ID())
	}
	if last := all[len(all)-1]; last.ID() != "replace-broken-links" {
		t.Errorf("last rule = %s", last.ID())
	}

	for _, id := range []string{
		"more-separator", "missing-tags", "tag-format", "tags-both-ways",
		"code-blocks", "image-inside-preview", "image-size", "fixme",
		"remove-whitespaces-at-end",
	} {
		if _, ok := registry.Get(id); !ok {
			t.Errorf("rule %s not registered", id)
		}
	}
}

func TestDefaultRegistryPopulated(t *testing.T) {
	t.Parallel()

	if len(gate.DefaultRegistry.Rules()) == 0 {
		t.Fatal("default registry is empty")
	}
}

func TestMutatingBattery_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DoRemoveWhitespacesAtEnd = true
	cfg.DoReplaceBrokenLinks = true
	cfg.BrokenLinks = []config.LinkReplacement{
		{Orig: "old.example", Replace: "https://new.example/"},
	}

	content := doc("Trailing spaces here.   \n" +
		"A dead [link](http://old.example/post).\n")

	engine := gate.NewEngine(gate.DefaultRegistry)

	first, err := engine.CheckContent(context.Background(), "test.md", content, cfg)
	if err != nil {
		t.Fatalf("first CheckContent: %v", err)
	}
	if !first.Changed {
		t.Fatal("first pass must rewrite")
	}

	second, err := engine.CheckContent(context.Background(), "test.md", first.Content, cfg)
	if err != nil {
		t.Fatalf("second CheckContent: %v", err)
	}
	if second.Changed {
		t.Error("second pass over rewritten content must not change anything")
	}
}
