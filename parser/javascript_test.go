package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannajonsd/addimports/jsast"
)

func parseJS(t *testing.T, src string) *jsast.Program {
	t.Helper()

	p, err := NewJavaScriptParser()
	require.NoError(t, err)
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)

	return result.Program
}

func TestJavaScriptParser_ImportDeclarations(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, `import Foo, { a, b as c } from "x";
import * as ns from 'y';
import "side-effect";
`)
	require.Len(t, prog.Body, 3)

	first, ok := prog.Body[0].(*jsast.ImportDeclaration)
	require.True(t, ok)
	assert.Equal(t, "x", first.Source.Value)
	assert.Equal(t, `"x"`, first.Source.Raw)
	assert.Equal(t, jsast.KindUnset, first.Kind)
	require.Len(t, first.Specifiers, 3)
	assert.Equal(t, "Foo", first.Specifiers[0].(*jsast.DefaultSpecifier).LocalName())

	a := first.Specifiers[1].(*jsast.NamedSpecifier)
	assert.Nil(t, a.Imported)
	assert.Equal(t, "a", a.ImportedName())

	c := first.Specifiers[2].(*jsast.NamedSpecifier)
	assert.Equal(t, "b", c.ImportedName())
	assert.Equal(t, "c", c.LocalName())

	ns, ok := prog.Body[1].(*jsast.ImportDeclaration)
	require.True(t, ok)
	require.Len(t, ns.Specifiers, 1)
	assert.IsType(t, &jsast.NamespaceSpecifier{}, ns.Specifiers[0])
	assert.Equal(t, "'y'", ns.Source.Raw)

	side, ok := prog.Body[2].(*jsast.ImportDeclaration)
	require.True(t, ok)
	assert.Empty(t, side.Specifiers)
	assert.Equal(t, "side-effect", side.Source.Value)
}

func TestJavaScriptParser_TypeImports(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, `import type { A } from "types";
import typeof B from "b";
import { type C, D } from "c";
`)
	require.Len(t, prog.Body, 3)

	assert.Equal(t, jsast.KindType, prog.Body[0].(*jsast.ImportDeclaration).Kind)
	assert.Equal(t, jsast.KindTypeof, prog.Body[1].(*jsast.ImportDeclaration).Kind)

	mixed := prog.Body[2].(*jsast.ImportDeclaration)
	assert.Equal(t, jsast.KindUnset, mixed.Kind)
	assert.Equal(t, jsast.KindType, mixed.Specifiers[0].(*jsast.NamedSpecifier).Kind)
	assert.Equal(t, jsast.KindUnset, mixed.Specifiers[1].(*jsast.NamedSpecifier).Kind)
}

func TestJavaScriptParser_RequireDeclarations(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, `const { a, b: c } = require("x");
var d = require("d").default;
require("polyfill");
`)
	require.Len(t, prog.Body, 3)

	decl := prog.Body[0].(*jsast.VariableDeclaration)
	assert.Equal(t, "const", decl.Keyword)
	require.Len(t, decl.Declarators, 1)

	pattern := decl.Declarators[0].ID.(*jsast.ObjectPattern)
	require.Len(t, pattern.Properties, 2)
	assert.Equal(t, "a", pattern.Properties[0].Key.Name)
	assert.Equal(t, "a", pattern.Properties[0].Value.Name)
	assert.Equal(t, "b", pattern.Properties[1].Key.Name)
	assert.Equal(t, "c", pattern.Properties[1].Value.Name)

	source, ok := jsast.RequireSource(decl.Declarators[0].Init)
	require.True(t, ok)
	assert.Equal(t, "x", source)

	member := prog.Body[1].(*jsast.VariableDeclaration)
	assert.Equal(t, "var", member.Keyword)
	init, ok := member.Declarators[0].Init.(*jsast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "default", init.Property)

	stmt := prog.Body[2].(*jsast.ExpressionStatement)
	source, ok = jsast.RequireSource(stmt.Expression)
	require.True(t, ok)
	assert.Equal(t, "polyfill", source)
}

func TestJavaScriptParser_RawStatements(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, `function helper() { var inner = 1; }
class Widget {}
const answer = 42;
const typed: number = 1;
console.log(require("logged"));
const lazy = require("lazy");
`)
	require.Len(t, prog.Body, 6)

	fn := prog.Body[0].(*jsast.RawStatement)
	assert.Equal(t, []string{"helper"}, fn.Declares)
	assert.False(t, fn.InlineTypes)

	class := prog.Body[1].(*jsast.RawStatement)
	assert.Equal(t, []string{"Widget"}, class.Declares)
	assert.Equal(t, []string{"Widget"}, class.DeclaresTypes)

	answer := prog.Body[2].(*jsast.RawStatement)
	assert.Equal(t, []string{"answer"}, answer.Declares)

	typed := prog.Body[3].(*jsast.RawStatement)
	assert.Equal(t, []string{"typed"}, typed.Declares)
	assert.True(t, typed.InlineTypes)

	logged := prog.Body[4].(*jsast.RawStatement)
	assert.Empty(t, logged.Requires)

	assert.IsType(t, &jsast.VariableDeclaration{}, prog.Body[5])
}

func TestJavaScriptParser_Comments(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, `// header
/* block */
import a from "a"; // trailing

import b from "b";
// dangling
`)
	require.Len(t, prog.Body, 2)

	first := prog.Body[0].Base()
	require.Len(t, first.Comments, 2)
	assert.Equal(t, "header", first.Comments[0].Value())
	assert.True(t, first.Comments[1].Block)
	require.Len(t, first.Trailing, 1)
	assert.Equal(t, "trailing", first.Trailing[0].Value())

	second := prog.Body[1].Base()
	assert.Empty(t, second.Comments)
	assert.Equal(t, 4, second.Loc.StartRow)

	require.Len(t, prog.Comments, 1)
	assert.Equal(t, "dangling", prog.Comments[0].Value())
	assert.Equal(t, "\n", prog.Trailing)
}

func TestJavaScriptParser_CommentsInsideStatements(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, "import {a} from 'm' // note\nimport {\n  b, // why\n} from 'n'\nconst {c} = require('r') // req\n")
	require.Len(t, prog.Body, 3)

	first, ok := prog.Body[0].(*jsast.ImportDeclaration)
	require.True(t, ok)
	assert.Equal(t, "import {a} from 'm'", first.Original)
	require.Len(t, first.Trailing, 1)
	assert.Equal(t, "note", first.Trailing[0].Value())
	assert.Equal(t, 0, first.Loc.EndRow)

	second, ok := prog.Body[1].(*jsast.ImportDeclaration)
	require.True(t, ok)
	require.Len(t, second.Specifiers, 1)
	require.Len(t, second.Inner, 1)
	assert.Equal(t, "why", second.Inner[0].Value())
	assert.Empty(t, second.Comments)

	third, ok := prog.Body[2].(*jsast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "const {c} = require('r')", third.Original)
	require.Len(t, third.Trailing, 1)
	assert.Equal(t, "req", third.Trailing[0].Value())
}

func TestJavaScriptParser_Prologue(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, "#!/usr/bin/env node\n'use strict';\nimport {\"a-b\" as ab} from 'm'\n")
	assert.Equal(t, "#!/usr/bin/env node\n", prog.Interpreter)
	assert.Empty(t, prog.Leading)
	require.Len(t, prog.Body, 2)

	directive, ok := prog.Body[0].(*jsast.RawStatement)
	require.True(t, ok)
	assert.True(t, directive.Directive)
	assert.Equal(t, 1, directive.Loc.StartRow)

	decl, ok := prog.Body[1].(*jsast.ImportDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Specifiers, 1)
	spec := decl.Specifiers[0].(*jsast.NamedSpecifier)
	assert.Equal(t, "a-b", spec.ImportedName())
	assert.Equal(t, "ab", spec.LocalName())
}

func TestJavaScriptParser_OriginalText(t *testing.T) {
	t.Parallel()

	prog := parseJS(t, "import {a,b} from 'x'\n")
	require.Len(t, prog.Body, 1)

	base := prog.Body[0].Base()
	assert.Equal(t, "import {a,b} from 'x'", base.Original)
	assert.Equal(t, jsast.Fingerprint(prog.Body[0]), base.Fingerprint)
}

func TestJavaScriptParser_ErrorsBecomeRaw(t *testing.T) {
	t.Parallel()

	p, err := NewJavaScriptParser()
	require.NoError(t, err)
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte("import a from \"a\";\nconst = ;\n"))
	require.NoError(t, err)
	assert.True(t, result.HasErrors)
	require.NotEmpty(t, result.Program.Body)
	assert.IsType(t, &jsast.ImportDeclaration{}, result.Program.Body[0])
}

func TestTypeScriptParser_ParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mod.ts")
	require.NoError(t, os.WriteFile(path, []byte("import { x } from \"x\";\nlet y = <number>x;\n"), 0o600))

	p, err := CreateParser(path)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "typescript", p.GetLanguage())

	result, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.FilePath)
	assert.False(t, result.HasErrors)
	require.Len(t, result.Program.Body, 2)
	assert.True(t, result.Program.Body[1].(*jsast.RawStatement).InlineTypes)
}

func TestCreateParser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		language string
		wantErr  bool
	}{
		{path: "a.js", language: "javascript"},
		{path: "a.jsx", language: "javascript"},
		{path: "a.mjs", language: "javascript"},
		{path: "a.cjs", language: "javascript"},
		{path: "a.tsx", language: "javascript"},
		{path: "a.ts", language: "typescript"},
		{path: "a.mts", language: "typescript"},
		{path: "a.py", wantErr: true},
		{path: "Makefile", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, !tt.wantErr, IsSupported(tt.path))

			p, err := CreateParser(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			defer p.Close()
			assert.Equal(t, tt.language, p.GetLanguage())
		})
	}
}

func TestExtractStringValueEscapes(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`plain`:        "plain",
		`a\nb`:         "a\nb",
		`\x41`:         "A",
		`\u0042`:       "B",
		`\u{1F600}`:    "\U0001F600",
		`\uD83D\uDE00`: "\U0001F600",
		`\uD83Dx`:      "\uFFFDx",
		`it\'s`:        "it's",
		`trailing\\`:   `trailing\`,
	}

	for in, want := range tests {
		assert.Equal(t, want, unescapeJS(in), in)
	}
}
