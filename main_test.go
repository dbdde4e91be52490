package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs the CLI with an empty config file so the results do not
// depend on the user's environment.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0o600))

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_Help(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args    []string
		wantOut string
		wantErr bool
	}{
		{args: []string{"--help"}, wantOut: "addimports merges import and require statements"},
		{args: []string{"apply", "--help"}, wantOut: "Add import and require statements to a single file"},
		{args: []string{"batch", "--help"}, wantOut: "configured skip directories"},
		{args: []string{"version"}, wantOut: "addimports dev"},
		{args: []string{"unknown"}, wantErr: true},
	}

	for _, tt := range tests {
		out, err := execute(t, "", tt.args...)
		if tt.wantErr {
			assert.Error(t, err, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Contains(t, out, tt.wantOut, tt.args)
	}
}

func TestApply_Stdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "const foo = 1;\n", "apply", "-", "-s", `const foo = require("foo")`)
	require.NoError(t, err)
	assert.Equal(t, "const foo1 = require(\"foo\");\nconst foo = 1;\n", out)
}

func TestApply_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "import { a } from \"m\";\n", "apply", "-", "-s", `import { a, b } from "m"`, "-f", "json")
	require.NoError(t, err)

	var result applyResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Changed)
	assert.Equal(t, map[string]string{"a": "a", "b": "b"}, result.Bindings)
	assert.Equal(t, "import { a, b } from \"m\";\n", result.Output)
}

func TestApply_YAML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "apply", "-", "-s", `import x from "x"`, "-f", "yaml")
	require.NoError(t, err)

	var result applyResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, "stdin.js", result.Path)
	assert.Equal(t, map[string]string{"x": "x"}, result.Bindings)
}

func TestApply_WriteAndDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "app.js", "foo();\n")
	statements := writeFile(t, dir, "imports.js", "import a from \"a\";\nconst b = require(\"b\");\n")

	out, err := execute(t, "", "apply", path, "--statements-file", statements, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "+import a from \"a\";\n")
	assert.Contains(t, out, "+const b = require(\"b\");\n")
	assert.Contains(t, out, " foo();\n")

	_, err = execute(t, "", "apply", path, "--statements-file", statements, "--write")
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "import a from \"a\";\nconst b = require(\"b\");\nfoo();\n", string(onDisk))
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "apply", "-")
	require.ErrorIs(t, err, ErrNoStatements)

	_, err = execute(t, "", "apply", "-", "-s", "import x from", "-f", "json")
	require.Error(t, err)

	_, err = execute(t, "", "apply", "-", "-s", `import x from "x"`, "-f", "xml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = execute(t, "", "apply", "-", "-s", `import x from "x"`, "--write")
	require.ErrorIs(t, err, ErrWriteStdin)

	_, err = execute(t, "foo();\n", "apply", "-", "-s", `foo()`)
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.js", "foo();\n")
	writeFile(t, dir, "b.ts", "import { x } from \"x\";\n")

	out, err := execute(t, "", "batch", dir, "-s", `import { x } from "x"`)
	require.NoError(t, err)
	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "1 changed, 1 unchanged")

	out, err = execute(t, "", "batch", dir, "-s", `import { x } from "x"`, "-f", "json", "--write")
	require.NoError(t, err)

	var report struct {
		Files []struct {
			Path    string `json:"path"`
			Written bool   `json:"written"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)

	onDisk, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "import { x } from \"x\";\nfoo();\n", string(onDisk))
}
