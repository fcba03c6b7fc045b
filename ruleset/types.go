package ruleset

import (
	"fmt"
	"strings"

	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// PairConfig is the YAML/legacy-array shape of a core.PairedCallObligation.
type PairConfig struct {
	Trigger     string   `yaml:"trigger"`
	Completions []string `yaml:"completions"`
	Message     string   `yaml:"message"`
}

// EntryConfig selects which entry points a rule applies to. An empty Class
// means "any entry point the collaborator discovered"; an empty Method
// means "any method on Class".
type EntryConfig struct {
	Class  string `yaml:"class"`
	Method string `yaml:"method"`
}

// RuleConfig is one `rules:` entry in guardrail.yaml.
type RuleConfig struct {
	Name     string       `yaml:"name"`
	Entry    EntryConfig  `yaml:"entry"`
	Requires []string     `yaml:"requires"`
	Pairs    []PairConfig `yaml:"pairs"`
	Message  string       `yaml:"message"`
}

// RuleSetConfig is the full parsed configuration: scan scope plus rules.
type RuleSetConfig struct {
	Paths    []string     `yaml:"paths"`
	Excludes []string     `yaml:"excludes"`
	Rules    []RuleConfig `yaml:"rules"`

	// Source records which file this configuration was loaded from, for
	// diagnostics (e.g. "loaded from guardrail.config.php (deprecated)").
	Source string `yaml:"-"`
}

// ScanConfig translates the loaded Paths/Excludes into graph.ScanConfig.
func (c *RuleSetConfig) ScanConfig() graph.ScanConfig {
	return graph.ScanConfig{Paths: c.Paths, Excludes: c.Excludes}
}

// BuildRules validates and converts every RuleConfig into a core.Rule,
// implementing spec.md §4.10's category-1 configuration errors: an empty
// rule or a paired obligation with no completions fails the whole load, at
// construction time, never at analysis time.
func (c *RuleSetConfig) BuildRules() ([]core.Rule, error) {
	rules := make([]core.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		rule, err := rc.build()
		if err != nil {
			return nil, err
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (rc RuleConfig) build() (core.Rule, error) {
	requires := make([]core.MethodRef, 0, len(rc.Requires))
	for _, r := range rc.Requires {
		ref, err := ParseMethodRef(r)
		if err != nil {
			return core.Rule{}, fmt.Errorf("rule %q: requires: %w", rc.Name, err)
		}
		requires = append(requires, ref)
	}

	obligations := make([]core.PairedCallObligation, 0, len(rc.Pairs))
	for _, p := range rc.Pairs {
		trigger, err := ParseMethodRef(p.Trigger)
		if err != nil {
			return core.Rule{}, fmt.Errorf("rule %q: pairs.trigger: %w", rc.Name, err)
		}
		completions := make([]core.MethodRef, 0, len(p.Completions))
		for _, comp := range p.Completions {
			ref, err := ParseMethodRef(comp)
			if err != nil {
				return core.Rule{}, fmt.Errorf("rule %q: pairs.completions: %w", rc.Name, err)
			}
			completions = append(completions, ref)
		}
		obligations = append(obligations, core.PairedCallObligation{
			Trigger:     trigger,
			Completions: completions,
			Message:     p.Message,
		})
	}

	return core.Rule{
		Name:        rc.Name,
		EntryClass:  rc.Entry.Class,
		EntryMethod: rc.Entry.Method,
		Requires:    requires,
		Obligations: obligations,
		Message:     rc.Message,
	}, nil
}

// ParseMethodRef parses a "FQCN::method" reference as used throughout a
// rule's requires/pairs lists.
func ParseMethodRef(s string) (core.MethodRef, error) {
	parts := strings.SplitN(s, "::", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return core.MethodRef{}, fmt.Errorf("invalid method reference %q, want FQCN::method", s)
	}
	return core.MethodRef{Class: parts[0], Method: parts[1]}, nil
}
