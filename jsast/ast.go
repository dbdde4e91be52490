// Package jsast holds the program model the import merger works on: the
// import and require declarations it understands, plus opaque statements for
// everything else.
package jsast

import (
	"regexp"
	"strings"
)

// ImportKind distinguishes value imports from Flow/TypeScript type imports.
type ImportKind string

const (
	KindUnset  ImportKind = ""
	KindValue  ImportKind = "value"
	KindType   ImportKind = "type"
	KindTypeof ImportKind = "typeof"
)

// Effective maps an unset kind to value.
func (k ImportKind) Effective() ImportKind {
	if k == KindUnset {
		return KindValue
	}
	return k
}

// IsTypeLike reports whether the kind is type or typeof.
func (k ImportKind) IsTypeLike() bool {
	return strings.HasPrefix(string(k), string(KindType))
}

// Span is a position in the parsed source. Rows are zero based.
type Span struct {
	Start    int
	End      int
	StartRow int
	EndRow   int
}

// Comment is a line or block comment, including its delimiters.
type Comment struct {
	Text  string
	Block bool
	Span  *Span
	// Before is the blank space between a trailing comment and what precedes
	// it on the line.
	Before string
}

// Value returns the comment body without delimiters or surrounding space.
func (c *Comment) Value() string {
	text := c.Text
	if c.Block {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	} else {
		text = strings.TrimPrefix(text, "//")
	}
	return strings.TrimSpace(text)
}

var flowPragma = regexp.MustCompile(`^@flow\b`)

// IsFlowPragma reports whether a comment body starts with the @flow token.
func IsFlowPragma(value string) bool {
	return flowPragma.MatchString(strings.TrimSpace(value))
}

// Node carries the bookkeeping shared by every statement.
type Node struct {
	// Comments are the leading comments on the lines above the statement.
	Comments []*Comment
	// Trailing are comments that follow the statement on its last line.
	Trailing []*Comment
	// Inner are comments inside a structured statement. Original keeps them;
	// a reprinted statement carries them after itself.
	Inner []*Comment
	Loc      *Span
	// Original is the source text of a parsed statement and Fingerprint its
	// structure at parse time. The printer reuses Original while the two agree.
	Original    string
	Fingerprint string
}

// Base returns the statement bookkeeping.
func (n *Node) Base() *Node { return n }

// Statement is a top-level program statement.
type Statement interface {
	Base() *Node
	isStatement()
}

func (*ImportDeclaration) isStatement()   {}
func (*VariableDeclaration) isStatement() {}
func (*ExpressionStatement) isStatement() {}
func (*RawStatement) isStatement()        {}

// Program is the root of a parsed file.
type Program struct {
	// Interpreter is a leading #! line, including its line break.
	Interpreter string
	Body        []Statement
	// Comments are dangling comments after the last statement.
	Comments []*Comment
	// Leading and Trailing are the whitespace around the first and last tokens.
	Leading  string
	Trailing string
}

type Identifier struct {
	Name string
}

type StringLiteral struct {
	Value string
	// Raw is the quoted source form; empty for constructed literals.
	Raw string
}

type ImportDeclaration struct {
	Node
	Kind       ImportKind
	Specifiers []Specifier
	Source     *StringLiteral
}

// Specifier is one binding of an import declaration.
type Specifier interface {
	LocalName() string
	isSpecifier()
}

func (*DefaultSpecifier) isSpecifier()   {}
func (*NamespaceSpecifier) isSpecifier() {}
func (*NamedSpecifier) isSpecifier()     {}

// DefaultSpecifier is `import Local from ...`. Kind is only set when a type
// kind was pushed down from its declaration.
type DefaultSpecifier struct {
	Local *Identifier
	Kind  ImportKind
}

// NamespaceSpecifier is `import * as Local from ...`.
type NamespaceSpecifier struct {
	Local *Identifier
}

// NamedSpecifier is `import {Imported as Local}`; Imported is nil when the
// specifier is not aliased.
type NamedSpecifier struct {
	Imported *Identifier
	Local    *Identifier
	Kind     ImportKind
}

func (s *DefaultSpecifier) LocalName() string   { return s.Local.Name }
func (s *NamespaceSpecifier) LocalName() string { return s.Local.Name }
func (s *NamedSpecifier) LocalName() string     { return s.Local.Name }

// ImportedName is the exported name the specifier refers to.
func (s *NamedSpecifier) ImportedName() string {
	if s.Imported != nil {
		return s.Imported.Name
	}
	return s.Local.Name
}

type VariableDeclaration struct {
	Node
	Keyword     string
	Declarators []*VariableDeclarator
}

type VariableDeclarator struct {
	ID   Pattern
	Init Expression
}

// Pattern is the binding target of a declarator.
type Pattern interface{ isPattern() }

func (*Identifier) isPattern()    {}
func (*ObjectPattern) isPattern() {}

type ObjectPattern struct {
	Properties []*ObjectProperty
}

// ObjectProperty is `Key: Value` or the shorthand `Key` when both names agree.
type ObjectProperty struct {
	Key   *Identifier
	Value *Identifier
}

// Expression is a declarator initializer or statement expression.
type Expression interface{ isExpression() }

func (*RequireCall) isExpression()      {}
func (*MemberExpression) isExpression() {}
func (*RawExpression) isExpression()    {}

// RequireCall is `require("source")`.
type RequireCall struct {
	Source *StringLiteral
}

// MemberExpression is a property access on a require call, e.g. `require("x").default`.
type MemberExpression struct {
	Object   Expression
	Property string
}

// RawExpression is any other expression, kept as source text.
type RawExpression struct {
	Text string
}

type ExpressionStatement struct {
	Node
	Expression Expression
}

// RawStatement is a statement the merger never rewrites.
type RawStatement struct {
	Node
	Text string
	// Declares and DeclaresTypes are the program-level names the statement binds.
	Declares      []string
	DeclaresTypes []string
	// Requires are sources of require calls that are the statement expression
	// or a top-level declarator initializer.
	Requires []string
	// InlineTypes is set when the statement contains type annotation syntax
	// or a @flow comment.
	InlineTypes bool
	// Directive marks a string literal expression statement such as
	// 'use strict'. At the start of the program these form the prologue.
	Directive bool
}

// RequireSource returns the source of a bare require call.
func RequireSource(expr Expression) (string, bool) {
	call, ok := expr.(*RequireCall)
	if !ok || call.Source == nil {
		return "", false
	}
	return call.Source.Value, true
}

// RequireRoot returns the require call at the bottom of a member chain.
func RequireRoot(expr Expression) (*RequireCall, bool) {
	for {
		switch e := expr.(type) {
		case *RequireCall:
			return e, true
		case *MemberExpression:
			expr = e.Object
		default:
			return nil, false
		}
	}
}
