package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethodRef_Valid(t *testing.T) {
	ref, err := ParseMethodRef("App\\Billing\\Gateway::charge")
	require.NoError(t, err)
	assert.Equal(t, "App\\Billing\\Gateway", ref.Class)
	assert.Equal(t, "charge", ref.Method)
}

func TestParseMethodRef_Invalid(t *testing.T) {
	_, err := ParseMethodRef("nope")
	assert.Error(t, err)
}

func TestBuildRules_EmptyRuleRejected(t *testing.T) {
	cfg := &RuleSetConfig{Rules: []RuleConfig{{Name: "empty"}}}
	_, err := cfg.BuildRules()
	assert.Error(t, err)
}

func TestBuildRules_ObligationWithoutCompletionsRejected(t *testing.T) {
	cfg := &RuleSetConfig{Rules: []RuleConfig{{
		Name: "dangling-pair",
		Pairs: []PairConfig{
			{Trigger: "DB::beginTransaction", Completions: nil},
		},
	}}}
	_, err := cfg.BuildRules()
	assert.Error(t, err)
}

func TestBuildRules_Valid(t *testing.T) {
	cfg := &RuleSetConfig{Rules: []RuleConfig{{
		Name:     "payment-requires-auth",
		Entry:    EntryConfig{Class: "App\\Controller\\PaymentController", Method: "charge"},
		Requires: []string{"App\\Auth\\Guard::authorize"},
		Pairs: []PairConfig{
			{Trigger: "App\\DB\\Connection::beginTransaction", Completions: []string{
				"App\\DB\\Connection::commit", "App\\DB\\Connection::rollback",
			}},
		},
		Message: "Payment charge must be authorized",
	}}}

	rules, err := cfg.BuildRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.Equal(t, "payment-requires-auth", rule.Name)
	assert.Equal(t, "App\\Controller\\PaymentController", rule.EntryClass)
	require.Len(t, rule.Requires, 1)
	assert.Equal(t, "App\\Auth\\Guard::authorize", rule.Requires[0].String())
	require.Len(t, rule.Obligations, 1)
	assert.Len(t, rule.Obligations[0].Completions, 2)
}
