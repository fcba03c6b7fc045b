package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainCmdRegistration(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"explain"})
	require.NoError(t, err)
	assert.Equal(t, "explain <rule-name>", cmd.Use)
}

func TestExplainCmd_PrintsRuleDetails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guardrail.yaml"), []byte(`
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
        message: must complete the transaction
    message: Payment charge must be authorized
`), 0o644))

	cmd, _, err := rootCmd.Find([]string{"explain"})
	require.NoError(t, err)
	require.NoError(t, cmd.Flags().Set("project", dir))

	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	runErr := runExplain(cmd, []string{"payment-requires-auth"})

	w.Close()
	os.Stdout = oldStdout
	_, _ = buf.ReadFrom(r)

	require.NoError(t, runErr)
	out := buf.String()
	assert.Contains(t, out, "App\\Controller\\PaymentController::charge")
	assert.Contains(t, out, "App\\Auth\\Guard::authorize")
	assert.Contains(t, out, "App\\DB\\Connection::beginTransaction")
}

func TestExplainCmd_UnknownRule(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guardrail.yaml"), []byte("rules: []\n"), 0o644))

	cmd, _, err := rootCmd.Find([]string{"explain"})
	require.NoError(t, err)
	require.NoError(t, cmd.Flags().Set("project", dir))

	err = runExplain(cmd, []string{"nope"})
	assert.Error(t, err)
}
