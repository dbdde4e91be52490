package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hannajonsd/addimports/jsast"
)

// Tree-sitter node types used by the converter.
const (
	nodeComment            = "comment"
	nodeImportStatement    = "import_statement"
	nodeImportClause       = "import_clause"
	nodeNamespaceImport    = "namespace_import"
	nodeNamedImports       = "named_imports"
	nodeImportSpecifier    = "import_specifier"
	nodeLexicalDeclaration = "lexical_declaration"
	nodeVariableDecl       = "variable_declaration"
	nodeVariableDeclarator = "variable_declarator"
	nodeExpressionStmt     = "expression_statement"
	nodeCallExpression     = "call_expression"
	nodeMemberExpression   = "member_expression"
	nodeIdentifier         = "identifier"
	nodePropertyIdentifier = "property_identifier"
	nodeObjectPattern      = "object_pattern"
	nodeString             = "string"
	nodeArguments          = "arguments"
	nodeHashBang           = "hash_bang_line"
)

// converter turns a tree-sitter tree into the jsast view. In request mode
// declarators and expressions that are not require calls are kept as raw
// expressions so the merger can reject them.
type converter struct {
	src     []byte
	request bool
}

func newConverter(source []byte, request bool) *converter {
	return &converter{src: source, request: request}
}

func (c *converter) program(root *sitter.Node) *jsast.Program {
	prog := &jsast.Program{}

	text := string(c.src)
	if strings.HasPrefix(text, "#!") {
		end := len(text)
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			end = nl + 1
		}
		prog.Interpreter = text[:end]
		text = text[end:]
	}
	trimmed := strings.TrimLeft(text, " \t\r\n")
	prog.Leading = text[:len(text)-len(trimmed)]
	if trimmed != "" {
		prog.Trailing = text[len(strings.TrimRight(text, " \t\r\n")):]
	}

	var pending []*jsast.Comment
	var prev jsast.Statement

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() == nodeHashBang || int(n.EndByte()) <= len(prog.Interpreter) {
			continue
		}

		if n.Type() == nodeComment {
			comment := c.comment(n)
			if prev != nil && len(pending) == 0 && int(n.StartPoint().Row) == prev.Base().Loc.EndRow {
				c.attachTrailing(prev.Base(), comment)
				continue
			}
			pending = append(pending, comment)
			continue
		}

		stmt, tail := c.statement(n)
		stmt.Base().Comments = pending
		pending = nil

		for _, comment := range tail {
			if len(pending) == 0 && comment.Span.StartRow == stmt.Base().Loc.EndRow {
				c.attachTrailing(stmt.Base(), comment)
				continue
			}
			pending = append(pending, comment)
		}

		prog.Body = append(prog.Body, stmt)
		prev = stmt
	}
	prog.Comments = pending

	return prog
}

// statement converts one top-level statement. Comments after the last token
// of a structured statement are returned as its tail; tree-sitter places them
// inside the node when the statement has no semicolon.
func (c *converter) statement(n *sitter.Node) (jsast.Statement, []*jsast.Comment) {
	var stmt jsast.Statement

	if !n.HasError() {
		switch n.Type() {
		case nodeImportStatement:
			if decl, ok := c.importDeclaration(n); ok {
				stmt = decl
			}
		case nodeLexicalDeclaration, nodeVariableDecl:
			if decl, ok := c.variableDeclaration(n); ok {
				stmt = decl
			}
		case nodeExpressionStmt:
			if es, ok := c.expressionStatement(n); ok {
				stmt = es
			}
		}
	}

	if stmt == nil {
		raw := c.raw(n)
		raw.Loc = span(n)
		raw.Original = n.Content(c.src)
		raw.Fingerprint = jsast.Fingerprint(raw)
		return raw, nil
	}

	last := lastToken(n)
	var tail []*jsast.Comment
	base := stmt.Base()
	for _, cn := range comments(n) {
		if cn.StartByte() >= last.EndByte() {
			tail = append(tail, c.comment(cn))
		} else {
			base.Inner = append(base.Inner, c.comment(cn))
		}
	}

	base.Loc = &jsast.Span{
		Start:    int(n.StartByte()),
		End:      int(last.EndByte()),
		StartRow: int(n.StartPoint().Row),
		EndRow:   int(last.EndPoint().Row),
	}
	base.Original = string(c.src[n.StartByte():last.EndByte()])
	base.Fingerprint = jsast.Fingerprint(stmt)

	return stmt, tail
}

func (c *converter) attachTrailing(base *jsast.Node, comment *jsast.Comment) {
	end := base.Loc.End
	if n := len(base.Trailing); n > 0 {
		end = base.Trailing[n-1].Span.End
	}
	if end >= comment.Span.Start {
		base.Trailing = append(base.Trailing, comment)
		return
	}
	if gap := string(c.src[end:comment.Span.Start]); strings.Trim(gap, " \t") == "" {
		comment.Before = gap
	}
	base.Trailing = append(base.Trailing, comment)
}

func (c *converter) comment(n *sitter.Node) *jsast.Comment {
	text := n.Content(c.src)
	return &jsast.Comment{
		Text:  text,
		Block: strings.HasPrefix(text, "/*"),
		Span:  span(n),
	}
}

func (c *converter) importDeclaration(n *sitter.Node) (*jsast.ImportDeclaration, bool) {
	decl := &jsast.ImportDeclaration{}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		switch child.Type() {
		case "type":
			if !child.IsNamed() {
				decl.Kind = jsast.KindType
			}
		case "typeof":
			if !child.IsNamed() {
				decl.Kind = jsast.KindTypeof
			}
		case nodeImportClause:
			specs, ok := c.importClause(child)
			if !ok {
				return nil, false
			}
			decl.Specifiers = specs
		case nodeString:
			decl.Source = c.stringLiteral(child)
		case "import_require_clause", "import_attribute":
			return nil, false
		}
	}

	if decl.Source == nil {
		return nil, false
	}

	return decl, true
}

func (c *converter) importClause(n *sitter.Node) ([]jsast.Specifier, bool) {
	var specs []jsast.Specifier

	for _, child := range namedChildren(n) {
		switch child.Type() {
		case nodeIdentifier:
			// Default import: import foo from "module"
			specs = append(specs, &jsast.DefaultSpecifier{Local: jsast.NewIdentifier(child.Content(c.src))})
		case nodeNamespaceImport:
			// Namespace import: import * as foo from "module"
			local := lastNamedOfType(child, nodeIdentifier)
			if local == nil {
				return nil, false
			}
			specs = append(specs, &jsast.NamespaceSpecifier{Local: jsast.NewIdentifier(local.Content(c.src))})
		case nodeNamedImports:
			// Named imports: import { a, b as c, type d } from "module"
			for _, specNode := range namedChildren(child) {
				if specNode.Type() != nodeImportSpecifier {
					return nil, false
				}
				spec, ok := c.importSpecifier(specNode)
				if !ok {
					return nil, false
				}
				specs = append(specs, spec)
			}
		default:
			return nil, false
		}
	}

	return specs, true
}

func (c *converter) importSpecifier(n *sitter.Node) (*jsast.NamedSpecifier, bool) {
	name := n.ChildByFieldName("name")
	alias := n.ChildByFieldName("alias")
	if name == nil {
		return nil, false
	}

	var imported string
	switch name.Type() {
	case nodeIdentifier:
		imported = name.Content(c.src)
	case nodeString:
		// import { "a-b" as ab } needs the alias.
		if alias == nil {
			return nil, false
		}
		imported = ExtractStringValue(name, c.src)
	default:
		return nil, false
	}

	spec := &jsast.NamedSpecifier{Local: jsast.NewIdentifier(imported)}
	if alias != nil {
		spec.Imported = jsast.NewIdentifier(imported)
		spec.Local = jsast.NewIdentifier(alias.Content(c.src))
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			continue
		}
		switch child.Type() {
		case "type":
			spec.Kind = jsast.KindType
		case "typeof":
			spec.Kind = jsast.KindTypeof
		}
	}

	return spec, true
}

func (c *converter) variableDeclaration(n *sitter.Node) (*jsast.VariableDeclaration, bool) {
	if n.ChildCount() == 0 {
		return nil, false
	}

	decl := &jsast.VariableDeclaration{Keyword: n.Child(0).Type()}

	for _, child := range namedChildren(n) {
		if child.Type() != nodeVariableDeclarator {
			return nil, false
		}

		d, ok := c.declarator(child)
		if !ok {
			return nil, false
		}
		decl.Declarators = append(decl.Declarators, d)
	}

	if len(decl.Declarators) == 0 {
		return nil, false
	}

	return decl, true
}

func (c *converter) declarator(n *sitter.Node) (*jsast.VariableDeclarator, bool) {
	if n.ChildByFieldName("type") != nil {
		return nil, false
	}

	id, ok := c.pattern(n.ChildByFieldName("name"))
	if !ok {
		return nil, false
	}

	value := n.ChildByFieldName("value")
	if value == nil {
		if c.request {
			return &jsast.VariableDeclarator{ID: id}, true
		}
		return nil, false
	}

	init, ok := c.expression(value)
	if !ok {
		if !c.request {
			return nil, false
		}
		init = &jsast.RawExpression{Text: value.Content(c.src)}
	}

	return &jsast.VariableDeclarator{ID: id, Init: init}, true
}

func (c *converter) pattern(n *sitter.Node) (jsast.Pattern, bool) {
	if n == nil {
		return nil, false
	}

	switch n.Type() {
	case nodeIdentifier:
		return jsast.NewIdentifier(n.Content(c.src)), true
	case nodeObjectPattern:
		pattern := &jsast.ObjectPattern{}
		for _, child := range namedChildren(n) {
			prop, ok := c.objectProperty(child)
			if !ok {
				return nil, false
			}
			pattern.Properties = append(pattern.Properties, prop)
		}
		return pattern, true
	}

	return nil, false
}

func (c *converter) objectProperty(n *sitter.Node) (*jsast.ObjectProperty, bool) {
	switch n.Type() {
	case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		name := n.Content(c.src)
		return jsast.NewObjectProperty(name, name), true
	case "pair_pattern", "pair":
		key := n.ChildByFieldName("key")
		value := n.ChildByFieldName("value")
		if key == nil || value == nil || key.Type() != nodePropertyIdentifier || value.Type() != nodeIdentifier {
			return nil, false
		}
		return jsast.NewObjectProperty(key.Content(c.src), value.Content(c.src)), true
	}

	return nil, false
}

// expression recognizes require("x") and property chains on it.
func (c *converter) expression(n *sitter.Node) (jsast.Expression, bool) {
	switch n.Type() {
	case nodeCallExpression:
		source, ok := c.requireSource(n)
		if !ok {
			return nil, false
		}
		return &jsast.RequireCall{Source: source}, true
	case nodeMemberExpression:
		object := n.ChildByFieldName("object")
		property := n.ChildByFieldName("property")
		if object == nil || property == nil || property.Type() != nodePropertyIdentifier {
			return nil, false
		}
		inner, ok := c.expression(object)
		if !ok {
			return nil, false
		}
		return &jsast.MemberExpression{Object: inner, Property: property.Content(c.src)}, true
	}

	return nil, false
}

func (c *converter) requireSource(call *sitter.Node) (*jsast.StringLiteral, bool) {
	fn := call.ChildByFieldName("function")
	args := call.ChildByFieldName("arguments")
	if fn == nil || args == nil || fn.Type() != nodeIdentifier || fn.Content(c.src) != "require" {
		return nil, false
	}
	if args.Type() != nodeArguments {
		return nil, false
	}
	argNodes := namedChildren(args)
	if len(argNodes) != 1 {
		return nil, false
	}

	arg := argNodes[0]
	if arg.Type() != nodeString {
		return nil, false
	}

	return c.stringLiteral(arg), true
}

func (c *converter) expressionStatement(n *sitter.Node) (*jsast.ExpressionStatement, bool) {
	children := namedChildren(n)
	if len(children) != 1 {
		return nil, false
	}

	exprNode := children[0]
	expr, ok := c.expression(exprNode)
	if ok {
		if _, isCall := expr.(*jsast.RequireCall); isCall {
			return &jsast.ExpressionStatement{Expression: expr}, true
		}
	}

	if !c.request {
		return nil, false
	}

	return &jsast.ExpressionStatement{Expression: &jsast.RawExpression{Text: exprNode.Content(c.src)}}, true
}

func (c *converter) raw(n *sitter.Node) *jsast.RawStatement {
	values, types := DeclaredNames(n, c.src)

	return &jsast.RawStatement{
		Text:          n.Content(c.src),
		Declares:      values,
		DeclaresTypes: types,
		Requires:      c.topLevelRequires(n),
		InlineTypes:   HasInlineTypes(n, c.src),
		Directive:     isDirective(n),
	}
}

func isDirective(n *sitter.Node) bool {
	if n.Type() != nodeExpressionStmt {
		return false
	}
	children := namedChildren(n)
	return len(children) == 1 && children[0].Type() == nodeString
}

// topLevelRequires finds require calls that a raw statement evaluates at the
// top level: the statement expression or a declarator initializer.
func (c *converter) topLevelRequires(n *sitter.Node) []string {
	var sources []string

	switch n.Type() {
	case nodeExpressionStmt:
		if children := namedChildren(n); len(children) > 0 && children[0].Type() == nodeCallExpression {
			if source, ok := c.requireSource(children[0]); ok {
				sources = append(sources, source.Value)
			}
		}
	case nodeLexicalDeclaration, nodeVariableDecl:
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() != nodeVariableDeclarator {
				continue
			}
			value := child.ChildByFieldName("value")
			if value == nil || value.Type() != nodeCallExpression {
				continue
			}
			if source, ok := c.requireSource(value); ok {
				sources = append(sources, source.Value)
			}
		}
	}

	return sources
}

func (c *converter) stringLiteral(n *sitter.Node) *jsast.StringLiteral {
	return &jsast.StringLiteral{
		Value: ExtractStringValue(n, c.src),
		Raw:   n.Content(c.src),
	}
}

// namedChildren lists the named children of n other than comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() != nodeComment {
			children = append(children, child)
		}
	}
	return children
}

// comments lists the comment nodes anywhere below n.
func comments(n *sitter.Node) []*sitter.Node {
	var found []*sitter.Node
	WalkAST(n, nil, func(node *sitter.Node) bool {
		if node.Type() == nodeComment {
			found = append(found, node)
			return false
		}
		return true
	})
	return found
}

// lastToken returns the last non-empty leaf below n that is not a comment.
func lastToken(n *sitter.Node) *sitter.Node {
	var last *sitter.Node
	WalkAST(n, nil, func(node *sitter.Node) bool {
		if node.Type() == nodeComment {
			return false
		}
		if node.ChildCount() == 0 && node.EndByte() > node.StartByte() &&
			(last == nil || node.EndByte() >= last.EndByte()) {
			last = node
		}
		return true
	})
	if last == nil {
		return n
	}
	return last
}

func lastNamedOfType(n *sitter.Node, typ string) *sitter.Node {
	var found *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == typ {
			found = child
		}
	}
	return found
}

func span(n *sitter.Node) *jsast.Span {
	return &jsast.Span{
		Start:    int(n.StartByte()),
		End:      int(n.EndByte()),
		StartRow: int(n.StartPoint().Row),
		EndRow:   int(n.EndPoint().Row),
	}
}
