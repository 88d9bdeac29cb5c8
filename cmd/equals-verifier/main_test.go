package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestDirectivesCmd(t *testing.T) {
	out, err := execute(t, "directives", "equals-verifier/store")
	require.NoError(t, err)

	assert.Contains(t, out, "equals-verifier/store.Customer\n  Address nonnull\n")
	assert.Contains(t, out, "var equals-verifier/store.DefaultCarrier nonnull\n")
	assert.NotContains(t, out, "Product")
}

func TestDirectivesCmd_Empty(t *testing.T) {
	out, err := execute(t, "annotations", "equals-verifier/warehouse")
	require.NoError(t, err)
	assert.Equal(t, "no directives found\n", out)
}

func TestDirectivesCmd_Errors(t *testing.T) {
	_, err := execute(t, "directives")
	require.Error(t, err)

	_, err = execute(t, "directives", "equals-verifier/does-not-exist")
	require.Error(t, err)
}

func TestSettingsCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	content := "suppress: [strict_hashcode, null_fields]\nlog_level: debug\nnonnull:\n  store.Customer: [Address]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, "settings", path)
	require.NoError(t, err)

	assert.Equal(t, `suppress:
    - null_fields
    - strict_hashcode
log_level: DEBUG
nonnull:
    store.Customer:
        - Address
`, out)
}

func TestSettingsCmd_Env(t *testing.T) {
	t.Setenv("EQUALSVERIFIER_SUPPRESS", "identity_equals")

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Equal(t, "suppress:\n    - identity_equals\nlog_level: WARN\n", out)
}

func TestSettingsCmd_Invalid(t *testing.T) {
	t.Setenv("EQUALSVERIFIER_SUPPRESS", "bogus")

	_, err := execute(t, "settings")
	require.Error(t, err)
}

func TestWarningsCmd(t *testing.T) {
	out, err := execute(t, "warnings")
	require.NoError(t, err)

	assert.Contains(t, out, "null_fields")
	assert.Contains(t, out, "strict_inheritance")
	assert.Contains(t, out, "subtypes and variants are not probed")
}
