package gate_test

import (
	"testing"

	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
)

// toggleRule is a test rule whose Enabled state is fixed.
type toggleRule struct {
	gate.BaseRule
	enabled bool
}

func (r *toggleRule) Enabled(_ *config.Config) bool { return r.enabled }

func (r *toggleRule) Apply(_ *gate.RuleContext) (gate.Outcome, error) {
	return gate.Outcome{}, nil
}

func newToggleRule(id string, enabled bool) *toggleRule {
	return &toggleRule{BaseRule: gate.NewBaseRule(id, "test rule", false), enabled: enabled}
}

func TestRegistry_Order(t *testing.T) {
	t.Parallel()

	registry := gate.NewRegistry()
	registry.Register(newToggleRule("c", true))
	registry.Register(newToggleRule("a", true))
	registry.Register(newToggleRule("b", true))

	rules := registry.Rules()
	want := []string{"c", "a", "b"}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, id := range want {
		if rules[i].ID() != id {
			t.Errorf("rules[%d].ID() = %q, want %q", i, rules[i].ID(), id)
		}
	}
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	registry := gate.NewRegistry()
	registry.Register(newToggleRule("a", true))
	registry.Register(newToggleRule("b", true))

	replacement := newToggleRule("a", false)
	registry.Register(replacement)

	rules := registry.Rules()
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].ID() != "a" {
		t.Errorf("replaced rule moved to position %d", 1)
	}

	got, ok := registry.Get("a")
	if !ok || got != gate.Rule(replacement) {
		t.Error("Get did not return the replacement")
	}
}

func TestRegistry_Enabled(t *testing.T) {
	t.Parallel()

	registry := gate.NewRegistry()
	registry.Register(newToggleRule("on-1", true))
	registry.Register(newToggleRule("off", false))
	registry.Register(newToggleRule("on-2", true))

	enabled := registry.Enabled(config.NewConfig())
	if len(enabled) != 2 {
		t.Fatalf("got %d enabled rules, want 2", len(enabled))
	}
	if enabled[0].ID() != "on-1" || enabled[1].ID() != "on-2" {
		t.Errorf("enabled order = [%s %s]", enabled[0].ID(), enabled[1].ID())
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	t.Parallel()

	registry := gate.NewRegistry()
	if _, ok := registry.Get("absent"); ok {
		t.Error("Get returned ok for an unregistered ID")
	}
}
