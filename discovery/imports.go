package discovery

import (
	"errors"
	"fmt"

	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/printer"
)

// ErrInvalidStatement is returned for a requested statement that is not an
// import declaration, a require declaration or a bare require call.
var ErrInvalidStatement = errors.New("statement must be an import or require")

// ExtractBindings lists the bindings of the program's top-level imports and
// requires, in source order.
func ExtractBindings(prog *jsast.Program) []Binding {
	var bindings []Binding

	for _, stmt := range prog.Body {
		switch st := stmt.(type) {
		case *jsast.ImportDeclaration:
			bindings = append(bindings, importBindings(st)...)
		case *jsast.VariableDeclaration:
			for _, d := range st.Declarators {
				bindings = append(bindings, requireBindings(d)...)
			}
		}
	}

	return bindings
}

// requestedBindings lists the bindings a requested statement asks for.
// Expression statements bind nothing.
func requestedBindings(stmt jsast.Statement) ([]Binding, error) {
	switch st := stmt.(type) {
	case *jsast.ImportDeclaration:
		return importBindings(st), nil
	case *jsast.VariableDeclaration:
		var bindings []Binding
		for _, d := range st.Declarators {
			if _, ok := jsast.RequireRoot(d.Init); !ok {
				return nil, fmt.Errorf("%w: declarator %s is not initialized with require()",
					ErrInvalidStatement, printer.Pattern(d.ID))
			}
			bindings = append(bindings, requireBindings(d)...)
		}
		return bindings, nil
	case *jsast.ExpressionStatement:
		return nil, nil
	default:
		return nil, ErrInvalidStatement
	}
}

func importBindings(decl *jsast.ImportDeclaration) []Binding {
	var bindings []Binding

	for _, spec := range decl.Specifiers {
		b := Binding{
			Source: decl.Source.Value,
			Local:  spec.LocalName(),
			Kind:   decl.Kind.Effective(),
			Style:  StyleImport,
		}

		switch sp := spec.(type) {
		case *jsast.DefaultSpecifier:
			b.Imported = ImportedDefault
			if sp.Kind != jsast.KindUnset {
				b.Kind = sp.Kind.Effective()
			}
		case *jsast.NamespaceSpecifier:
			b.Imported = ImportedNamespace
		case *jsast.NamedSpecifier:
			b.Imported = sp.ImportedName()
			if sp.Kind != jsast.KindUnset {
				b.Kind = sp.Kind.Effective()
			}
		}

		bindings = append(bindings, b)
	}

	return bindings
}

func requireBindings(d *jsast.VariableDeclarator) []Binding {
	switch init := d.Init.(type) {
	case *jsast.RequireCall:
		source := init.Source.Value

		switch id := d.ID.(type) {
		case *jsast.Identifier:
			return []Binding{{
				Source:   source,
				Local:    id.Name,
				Imported: ImportedNamespace,
				Kind:     jsast.KindValue,
				Style:    StyleRequire,
			}}
		case *jsast.ObjectPattern:
			bindings := make([]Binding, 0, len(id.Properties))
			for _, prop := range id.Properties {
				bindings = append(bindings, Binding{
					Source:   source,
					Local:    prop.Value.Name,
					Imported: prop.Key.Name,
					Kind:     jsast.KindValue,
					Style:    StyleDestructured,
				})
			}
			return bindings
		}

	case *jsast.MemberExpression:
		// Only one property deep: require("m").default or require("m").a.
		call, ok := init.Object.(*jsast.RequireCall)
		id, isIdent := d.ID.(*jsast.Identifier)
		if !ok || !isIdent {
			return nil
		}
		return []Binding{{
			Source:   call.Source.Value,
			Local:    id.Name,
			Imported: init.Property,
			Kind:     jsast.KindValue,
			Style:    StyleMember,
		}}
	}

	return nil
}
