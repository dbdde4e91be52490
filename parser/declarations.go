package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hannajonsd/addimports/jsast"
)

// inlineTypeNodes are grammar nodes that only appear in typed sources.
var inlineTypeNodes = map[string]bool{
	"type_annotation":            true,
	"type_alias_declaration":     true,
	"interface_declaration":      true,
	"type_arguments":             true,
	"type_parameters":            true,
	"type_predicate_annotation":  true,
	"as_expression":              true,
	"satisfies_expression":       true,
	"non_null_expression":        true,
	"type_assertion":             true,
	"ambient_declaration":        true,
	"abstract_class_declaration": true,
	"implements_clause":          true,
	"enum_declaration":           true,
}

// functionNodes open a new function scope.
var functionNodes = map[string]bool{
	"function":            true,
	"function_expression": true,
	"arrow_function":      true,
	"generator_function":  true,
	"method_definition":   true,
	"class":               true,
	"class_body":          true,
}

// DeclaredNames reports the value and type names a statement declares in the
// program scope. Blocks are entered, function bodies are not.
func DeclaredNames(node *sitter.Node, source []byte) (values, types []string) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		name := func() string {
			if id := n.ChildByFieldName("name"); id != nil {
				return id.Content(source)
			}
			return ""
		}

		switch n.Type() {
		case "function_declaration", "generator_function_declaration", "function_signature":
			if id := name(); id != "" {
				values = append(values, id)
			}
			return
		case "class_declaration", "abstract_class_declaration", "enum_declaration":
			if id := name(); id != "" {
				values = append(values, id)
				types = append(types, id)
			}
			return
		case "type_alias_declaration", "interface_declaration":
			if id := name(); id != "" {
				types = append(types, id)
			}
			return
		case nodeVariableDeclarator:
			values = append(values, PatternNames(n.ChildByFieldName("name"), source)...)
			return
		case nodeImportClause:
			values = append(values, ImportClauseLocals(n, source)...)
			return
		case nodeComment:
			return
		}

		if functionNodes[n.Type()] {
			return
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}

	walk(node)
	return values, types
}

// PatternNames lists the identifiers bound by a binding pattern.
func PatternNames(n *sitter.Node, source []byte) []string {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case nodeIdentifier, "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		return []string{n.Content(source)}
	case "pair_pattern", "pair":
		return PatternNames(n.ChildByFieldName("value"), source)
	case "object_assignment_pattern", "assignment_pattern":
		return PatternNames(n.ChildByFieldName("left"), source)
	case nodeObjectPattern, "array_pattern", "rest_pattern":
		var names []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			names = append(names, PatternNames(n.NamedChild(i), source)...)
		}
		return names
	}

	return nil
}

// ImportClauseLocals lists the local names an import clause binds.
func ImportClauseLocals(clause *sitter.Node, source []byte) []string {
	var names []string

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)

		switch child.Type() {
		case nodeIdentifier:
			names = append(names, child.Content(source))
		case nodeNamespaceImport:
			if id := lastNamedOfType(child, nodeIdentifier); id != nil {
				names = append(names, id.Content(source))
			}
		case nodeNamedImports:
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != nodeImportSpecifier {
					continue
				}
				local := spec.ChildByFieldName("alias")
				if local == nil {
					local = spec.ChildByFieldName("name")
				}
				if local != nil {
					names = append(names, local.Content(source))
				}
			}
		}
	}

	return names
}

// HasInlineTypes reports whether the subtree contains type syntax or a @flow comment.
func HasInlineTypes(node *sitter.Node, source []byte) bool {
	found := false

	WalkAST(node, source, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if inlineTypeNodes[n.Type()] {
			found = true
			return false
		}
		if n.Type() == nodeComment {
			comment := &jsast.Comment{Text: n.Content(source)}
			comment.Block = len(comment.Text) > 1 && comment.Text[1] == '*'
			if jsast.IsFlowPragma(comment.Value()) {
				found = true
			}
			return false
		}
		return true
	})

	return found
}
