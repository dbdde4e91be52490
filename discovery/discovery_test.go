package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/parser"
)

func parse(t *testing.T, src string) *jsast.Program {
	t.Helper()

	p, err := parser.NewJavaScriptParser()
	require.NoError(t, err)
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)

	return result.Program
}

func statements(t *testing.T, snippets ...string) []jsast.Statement {
	t.Helper()

	stmts, err := parser.ParseStatements(context.Background(), snippets...)
	require.NoError(t, err)

	return stmts
}

func TestExtractBindings(t *testing.T) {
	t.Parallel()

	prog := parse(t, `import D, * as NS from "m";
import { type T, a as b } from "n";
const whole = require("r");
const { x, y: z } = require("s");
const def = require("t").default;
const deep = require("u").a.b;
function f() { return require("v"); }
`)

	want := []Binding{
		{Source: "m", Local: "D", Imported: ImportedDefault, Kind: jsast.KindValue, Style: StyleImport},
		{Source: "m", Local: "NS", Imported: ImportedNamespace, Kind: jsast.KindValue, Style: StyleImport},
		{Source: "n", Local: "T", Imported: "T", Kind: jsast.KindType, Style: StyleImport},
		{Source: "n", Local: "b", Imported: "a", Kind: jsast.KindValue, Style: StyleImport},
		{Source: "r", Local: "whole", Imported: ImportedNamespace, Kind: jsast.KindValue, Style: StyleRequire},
		{Source: "s", Local: "x", Imported: "x", Kind: jsast.KindValue, Style: StyleDestructured},
		{Source: "s", Local: "z", Imported: "y", Kind: jsast.KindValue, Style: StyleDestructured},
		{Source: "t", Local: "def", Imported: ImportedDefault, Kind: jsast.KindValue, Style: StyleMember},
	}

	assert.Equal(t, want, ExtractBindings(prog))
}

func TestFindPreexisting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		code      string
		requested []string
		want      map[string]string
	}{
		{
			name:      "aliased import satisfies destructured require",
			code:      `import {foo as bar} from 'baz'`,
			requested: []string{`const {foo: qux} = require('baz')`},
			want:      map[string]string{"qux": "bar"},
		},
		{
			name:      "default import",
			code:      `import Baz from 'baz'`,
			requested: []string{`import Foo from 'baz'`},
			want:      map[string]string{"Foo": "Baz"},
		},
		{
			name:      "explicit default specifier",
			code:      `import {default as Baz} from 'baz'`,
			requested: []string{`import {default as Foo} from 'baz'`},
			want:      map[string]string{"Foo": "Baz"},
		},
		{
			name:      "namespace import",
			code:      `import * as React from 'react'`,
			requested: []string{`import * as R from 'react'`},
			want:      map[string]string{"R": "React"},
		},
		{
			name:      "whole module require satisfies default and namespace",
			code:      `const bar = require('foo')`,
			requested: []string{`import foo from 'foo'`, `import * as ns from 'foo'`},
			want:      map[string]string{"foo": "bar", "ns": "bar"},
		},
		{
			name:      "require default member",
			code:      `const bar = require('foo').default`,
			requested: []string{`import foo from 'foo'`},
			want:      map[string]string{"foo": "bar"},
		},
		{
			name:      "destructured default",
			code:      `const {default: bar} = require('foo')`,
			requested: []string{`import foo from 'foo'`},
			want:      map[string]string{"foo": "bar"},
		},
		{
			name:      "destructuring a default export binds nothing",
			code:      `const {bar} = require('foo').default`,
			requested: []string{`import foo from 'foo'`},
			want:      map[string]string{},
		},
		{
			name: "kinds must match",
			code: `import {foo as bar} from 'baz'
import type {foo as qlob} from 'baz'`,
			requested: []string{`import type {foo as qux} from 'baz'`, `import typeof {foo as t} from 'baz'`},
			want:      map[string]string{"qux": "qlob"},
		},
		{
			name:      "other sources are ignored",
			code:      `import {foo} from 'foo'`,
			requested: []string{`import {foo} from 'bar'`, `require('foo')`},
			want:      map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found, err := FindPreexisting(parse(t, tt.code), statements(t, tt.requested...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
		})
	}
}

func TestFindPreexisting_InvalidDeclarator(t *testing.T) {
	t.Parallel()

	prog := parse(t, `import Baz from 'baz'`)
	requested := statements(t, `const foo = require('baz'), bar = invalid(true)`)

	_, err := FindPreexisting(prog, requested)
	require.ErrorIs(t, err, ErrInvalidStatement)
	assert.Contains(t, err.Error(), "bar")
}

func TestFindPreexisting_RawStatement(t *testing.T) {
	t.Parallel()

	_, err := FindPreexisting(parse(t, ``), []jsast.Statement{&jsast.RawStatement{Text: "foo()"}})
	require.ErrorIs(t, err, ErrInvalidStatement)
}
