package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCyd executes the CLI with the given args, stdin and extra environment,
// returning stdout, stderr and the run error
func runCyd(t *testing.T, stdin string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmdArgs := append([]string{"run", "../../main.go"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_JSONToYAML converts a JSON document to YAML over stdin/stdout
func TestCLI_JSONToYAML(t *testing.T) {
	stdout, stderr, err := runCyd(t, `{"a":1,"b":[true,null]}`, nil, "-i", "json", "-o", "yaml")
	require.NoError(t, err, "conversion failed: %s", stderr)

	assert.Contains(t, stdout, "a: 1")
	assert.Contains(t, stdout, "- true")
	assert.Contains(t, stdout, "- null")
}

// TestCLI_TOMLIdentity exercises the same-format path
func TestCLI_TOMLIdentity(t *testing.T) {
	stdout, stderr, err := runCyd(t, "title = \"x\"\n", nil, "--input", "toml", "--output", "toml")
	require.NoError(t, err, "conversion failed: %s", stderr)

	assert.Contains(t, stdout, "title = 'x'")
}

// TestCLI_CaseInsensitiveFormats accepts mixed-case format names
func TestCLI_CaseInsensitiveFormats(t *testing.T) {
	stdout, stderr, err := runCyd(t, `{"a":1}`, nil, "-i", "JSON", "-o", "YaMl")
	require.NoError(t, err, "conversion failed: %s", stderr)

	assert.Contains(t, stdout, "a: 1")
}

// TestCLI_UnknownFormat rejects format names outside the allow-list
func TestCLI_UnknownFormat(t *testing.T) {
	stdout, stderr, err := runCyd(t, `{"a":1}`, nil, "-i", "xml", "-o", "json")
	assert.Error(t, err, "CLI should fail for an unknown format")
	assert.Contains(t, stderr, "Configuration error")
	assert.Contains(t, stderr, "xml")
	assert.Empty(t, stdout)
}

// TestCLI_EmptyInput fails with a parse error for empty stdin
func TestCLI_EmptyInput(t *testing.T) {
	stdout, stderr, err := runCyd(t, "", nil, "-i", "json", "-o", "yaml")
	assert.Error(t, err, "CLI should fail for empty input")
	assert.Contains(t, stderr, "empty")
	assert.Empty(t, stdout)
}

// TestCLI_InvalidDocument surfaces the parse stage in the diagnostic
func TestCLI_InvalidDocument(t *testing.T) {
	_, stderr, err := runCyd(t, `{"broken":`, nil, "-i", "json", "-o", "yaml")
	assert.Error(t, err, "CLI should fail for invalid JSON")
	assert.Contains(t, stderr, "Parse error")
}

// TestCLI_SequenceToTOML fails because TOML has no non-table document root
func TestCLI_SequenceToTOML(t *testing.T) {
	stdout, stderr, err := runCyd(t, "- 1\n- 2\n", nil, "-i", "yaml", "-o", "toml")
	assert.Error(t, err, "CLI should fail converting a sequence root to TOML")
	assert.Contains(t, stderr, "Serialize error")
	assert.Empty(t, stdout)
}

// TestCLI_EnvFallback resolves both formats from the environment
func TestCLI_EnvFallback(t *testing.T) {
	env := []string{"CYD_INPUT=json", "CYD_OUTPUT=yaml"}
	stdout, stderr, err := runCyd(t, `{"a":1}`, env)
	require.NoError(t, err, "conversion failed: %s", stderr)

	assert.Contains(t, stdout, "a: 1")
}

// TestCLI_FlagBeatsEnv gives the flag precedence over the environment
func TestCLI_FlagBeatsEnv(t *testing.T) {
	env := []string{"CYD_INPUT=toml", "CYD_OUTPUT=toml"}
	stdout, stderr, err := runCyd(t, `{"a":1}`, env, "-i", "json", "-o", "json")
	require.NoError(t, err, "conversion failed: %s", stderr)

	assert.Equal(t, `{"a":1}`, stdout)
}

// TestCLI_MissingFormats fails when neither flags nor env provide formats
func TestCLI_MissingFormats(t *testing.T) {
	env := []string{"CYD_INPUT=", "CYD_OUTPUT="}
	_, stderr, err := runCyd(t, `{"a":1}`, env)
	assert.Error(t, err, "CLI should fail when no formats are given")
	assert.Contains(t, stderr, "Configuration error")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	stdout, stderr, err := runCyd(t, "", nil, "-v")
	require.NoError(t, err, "version flag failed: %s", stderr)
	assert.Contains(t, stdout, "cyd version")
}

// TestCLI_Help tests the help output, and that environment variable values
// never leak into it
func TestCLI_Help(t *testing.T) {
	env := []string{"CYD_INPUT=hunter2-not-a-format", "CYD_OUTPUT=hunter2-not-a-format"}
	stdout, stderr, err := runCyd(t, "", env, "--help")
	require.NoError(t, err)

	help := stdout + stderr
	assert.Contains(t, help, "-i, --input")
	assert.Contains(t, help, "-o, --output")
	assert.NotContains(t, help, "hunter2-not-a-format")
}
