package analyzer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannajonsd/addimports/config"
	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/parser"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func requested(t *testing.T, snippets ...string) []jsast.Statement {
	t.Helper()

	stmts, err := parser.ParseStatements(context.Background(), snippets...)
	require.NoError(t, err)
	return stmts
}

func newRunner(t *testing.T, cfg *config.Config) *Runner {
	t.Helper()

	r, err := New(cfg, nil, nil)
	require.NoError(t, err)
	return r
}

func defaultConfig() *config.Config {
	return &config.Config{
		Printer: config.PrinterConfig{Quote: "double", Semicolons: true},
		Batch: config.BatchConfig{
			Extensions:  config.DefaultExtensions,
			SkipDirs:    config.DefaultSkipDirs,
			MaxFileSize: config.DefaultMaxFileSize,
		},
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"a.js":                "import { b } from \"b\";\nfoo();\n",
		"src/c.ts":            "const x: number = 1;\n",
		"src/done.mjs":        "import { a } from \"b\";\n",
		"node_modules/m/i.js": "foo();\n",
		"ignored/skip.js":     "foo();\n",
		".gitignore":          "ignored/\n",
		"README.md":           "# readme\n",
		".hidden/h.js":        "foo();\n",
	})

	report, err := newRunner(t, defaultConfig()).Run(context.Background(), root, requested(t, `import { a } from "b"`), false)
	require.NoError(t, err)

	byPath := make(map[string]FileResult)
	for _, f := range report.Files {
		rel, relErr := filepath.Rel(root, f.Path)
		require.NoError(t, relErr)
		byPath[filepath.ToSlash(rel)] = f
	}
	require.Len(t, byPath, 3)

	a := byPath["a.js"]
	require.NoError(t, a.Err)
	assert.True(t, a.Changed)
	assert.False(t, a.Written)
	assert.Equal(t, "import { b, a } from \"b\";\nfoo();\n", a.After)
	assert.Equal(t, map[string]string{"a": "a"}, a.Bindings)

	c := byPath["src/c.ts"]
	require.NoError(t, c.Err)
	assert.Equal(t, "import { a } from \"b\";\nconst x: number = 1;\n", c.After)

	done := byPath["src/done.mjs"]
	assert.False(t, done.Changed)
	assert.Equal(t, map[string]string{"a": "a"}, done.Bindings)

	onDisk, err := os.ReadFile(filepath.Join(root, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "import { b } from \"b\";\nfoo();\n", string(onDisk))

	changed, unchanged, skipped, failed := report.Counts()
	assert.Equal(t, [4]int{2, 1, 0, 0}, [4]int{changed, unchanged, skipped, failed})
}

func TestRun_Write(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"index.js": "foo();\n"})

	report, err := newRunner(t, defaultConfig()).Run(context.Background(), root, requested(t, `const path = require("path")`), true)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.True(t, report.Files[0].Written)

	onDisk, err := os.ReadFile(filepath.Join(root, "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "const path = require(\"path\");\nfoo();\n", string(onDisk))
}

func TestRun_RenamesPerFile(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"one.js": "const a = 1;\n",
		"two.js": "let b;\n",
	})

	report, err := newRunner(t, defaultConfig()).Run(context.Background(), root, requested(t, `import a from "a"`), false)
	require.NoError(t, err)
	require.Len(t, report.Files, 2)

	for _, f := range report.Files {
		switch filepath.Base(f.Path) {
		case "one.js":
			assert.Equal(t, map[string]string{"a": "a1"}, f.Bindings)
		case "two.js":
			assert.Equal(t, map[string]string{"a": "a"}, f.Bindings)
		}
	}
}

func TestRun_MaxFileSize(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"big.js": "foo();\n// padding padding padding\n"})
	cfg := defaultConfig()
	cfg.Batch.MaxFileSize = "10B"

	report, err := newRunner(t, cfg).Run(context.Background(), root, requested(t, `import a from "a"`), false)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "larger than 10 B", report.Files[0].Skipped)
}

func TestRun_InvalidStatement(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.js": "foo();\n"})

	report, err := newRunner(t, defaultConfig()).Run(context.Background(), root, requested(t, `foo()`), false)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Error(t, report.Files[0].Err)
}

func TestRun_NoStatements(t *testing.T) {
	t.Parallel()

	_, err := newRunner(t, defaultConfig()).Run(context.Background(), t.TempDir(), nil, false)
	require.ErrorIs(t, err, ErrNoStatements)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.js": "foo();\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, defaultConfig()).Run(ctx, root, requested(t, `import a from "a"`), false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGitignoreParser(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{".gitignore": "# comment\n*.gen.js\n/out\ntmp/\n!keep.gen.js\nlib/*.js\n"})
	gp := NewGitignoreParser(root)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"a.gen.js", false, true},
		{"src/b.gen.js", false, true},
		{"keep.gen.js", false, false},
		{"out", true, true},
		{"src/out", true, false},
		{"tmp", true, true},
		{"tmp", false, false},
		{"lib/x.js", false, true},
		{"src/lib/x.js", false, false},
		{"index.js", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gp.ShouldIgnore(filepath.Join(root, tt.path), tt.isDir), tt.path)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	report := &Report{Root: "/r", Files: []FileResult{
		{Path: "/r/a.js", Changed: true, Written: true, Size: 2048, Bindings: map[string]string{"b": "b1", "a": "a"}},
		{Path: "/r/b.js", Size: 10},
		{Path: "/r/c.js", Skipped: "larger than 1 B"},
	}}

	var buf bytes.Buffer
	Display(&buf, report, false)
	out := buf.String()

	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "a, b→b1")
	assert.Contains(t, out, "2.0 kB")
	assert.NotContains(t, out, "b.js")
	assert.Contains(t, out, "1 changed, 1 unchanged, 1 skipped")
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	WriteDiff(&buf, "a.js", "foo();\n", "import a from \"a\";\nfoo();\n")

	assert.Equal(t, "--- a.js\n+++ a.js\n+import a from \"a\";\n foo();\n", buf.String())
}
