// Package ruleset loads guardrail's rule configuration: the collaborator
// spec.md §6 calls out as "config file loading". guardrail.yaml is the
// primary, fully-supported format; guardrail.config.php and guardrail.php
// are accepted as a legacy path, parsed with a conservative array-literal
// extractor rather than a full PHP parse, and logged as deprecated.
//
//	cfg, err := ruleset.LoadConfig(".")
//	rules, err := cfg.BuildRules()
package ruleset
