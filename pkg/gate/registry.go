package gate

import (
	"sync"

	"github.com/yaklabco/postlint/pkg/config"
)

// Registry holds the rule battery in registration order.
//
// Order is a load-bearing contract: the engine threads content through the
// enabled rules exactly in registration order, and a later rule detects
// against the output of earlier mutating rules.
type Registry struct {
	mu      sync.RWMutex
	ordered []Rule
	byID    map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Rule),
	}
}

// Register appends a rule to the battery. Re-registering an ID replaces the
// rule in place, keeping its original position.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rule.ID()]; ok {
		for i, existing := range r.ordered {
			if existing.ID() == rule.ID() {
				r.ordered[i] = rule
				break
			}
		}
	} else {
		r.ordered = append(r.ordered, rule)
	}
	r.byID[rule.ID()] = rule
}

// Get retrieves a rule by ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, len(r.ordered))
	copy(result, r.ordered)
	return result
}

// Enabled returns the rules the configuration switches on, in registration
// order. This is the fixed execution list for a run.
func (r *Registry) Enabled(cfg *config.Config) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var enabled []Rule
	for _, rule := range r.ordered {
		if rule.Enabled(cfg) {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
