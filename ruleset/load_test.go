package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "guardrail.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
paths: ["src"]
excludes: ["vendor/*"]
rules:
  - name: payment-requires-auth
    entry:
      class: App\Controller\PaymentController
      method: charge
    requires:
      - App\Auth\Guard::authorize
    pairs:
      - trigger: App\DB\Connection::beginTransaction
        completions:
          - App\DB\Connection::commit
          - App\DB\Connection::rollback
    message: Payment charge must be authorized
`), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, cfg.Paths)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "payment-requires-auth", cfg.Rules[0].Name)
	assert.False(t, IsLegacy(cfg.Source))
}

func TestLoadConfig_DirectFilePath(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("rules: []\n"), 0o644))

	cfg, err := LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, cfg.Source)
}

func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_LegacyPHP(t *testing.T) {
	dir := t.TempDir()
	phpPath := filepath.Join(dir, "guardrail.config.php")
	require.NoError(t, os.WriteFile(phpPath, []byte(`<?php
return [
    'paths' => ['src'],
    'excludes' => ['vendor/*'],
    'rules' => [
        [
            'name' => 'payment-requires-auth',
            'entry' => ['class' => 'App\\Controller\\PaymentController', 'method' => 'charge'],
            'requires' => ['App\\Auth\\Guard::authorize'],
            'pairs' => [
                ['trigger' => 'App\\DB\\Connection::beginTransaction',
                 'completions' => ['App\\DB\\Connection::commit', 'App\\DB\\Connection::rollback']],
            ],
            'message' => 'Payment charge must be authorized',
        ],
    ],
];
`), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, IsLegacy(cfg.Source))
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "payment-requires-auth", cfg.Rules[0].Name)
	assert.Equal(t, "App\\Controller\\PaymentController", cfg.Rules[0].Entry.Class)
	require.Len(t, cfg.Rules[0].Pairs, 1)
	assert.Len(t, cfg.Rules[0].Pairs[0].Completions, 2)

	rules, err := cfg.BuildRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
}

func TestLoadConfig_PrefersYAMLOverLegacy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guardrail.yaml"), []byte("rules: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guardrail.php"), []byte("<?php\nreturn [];\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.False(t, IsLegacy(cfg.Source))
}
