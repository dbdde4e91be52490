package addimports

import "github.com/hannajonsd/addimports/jsast"

// findExistingImports returns the top-level imports of the statement's
// source. The import kind must match too unless the program uses inline
// types, in which case kinds are reconciled per specifier.
func findExistingImports(prog *jsast.Program, stmt *jsast.ImportDeclaration, inlineTypes bool) []*jsast.ImportDeclaration {
	return topImports(prog, func(decl *jsast.ImportDeclaration) bool {
		if decl.Source.Value != stmt.Source.Value {
			return false
		}
		return inlineTypes || decl.Kind == stmt.Kind
	})
}

// lastCompatible picks the last declaration the specifier can join without
// producing an import clause JavaScript rejects.
func lastCompatible(decls []*jsast.ImportDeclaration, spec jsast.Specifier, incoming jsast.ImportKind) *jsast.ImportDeclaration {
	for i := len(decls) - 1; i >= 0; i-- {
		if accepts(decls[i], spec, incoming) {
			return decls[i]
		}
	}
	return nil
}

func accepts(decl *jsast.ImportDeclaration, spec jsast.Specifier, incoming jsast.ImportKind) bool {
	var hasDefault, hasNamespace, hasNamed bool
	for _, existing := range decl.Specifiers {
		switch existing.(type) {
		case *jsast.DefaultSpecifier:
			hasDefault = true
		case *jsast.NamespaceSpecifier:
			hasNamespace = true
		case *jsast.NamedSpecifier:
			hasNamed = true
		}
	}

	if hasNamespace && decl.Kind.Effective() != incoming {
		return false
	}

	switch spec.(type) {
	case *jsast.DefaultSpecifier:
		return !hasDefault
	case *jsast.NamespaceSpecifier:
		return !hasNamespace && !hasNamed
	case *jsast.NamedSpecifier:
		return !hasNamespace
	}

	return false
}

// findExistingRequire returns the last top-level declarator that binds the
// same pattern kind from the same require expression. require("m") and
// require("m").default never match each other.
func findExistingRequire(prog *jsast.Program, d *jsast.VariableDeclarator) *jsast.VariableDeclarator {
	var match *jsast.VariableDeclarator

	for _, stmt := range prog.Body {
		decl, ok := stmt.(*jsast.VariableDeclaration)
		if !ok {
			continue
		}
		for _, existing := range decl.Declarators {
			if samePatternKind(existing.ID, d.ID) && sameRequire(existing.Init, d.Init) {
				match = existing
			}
		}
	}

	return match
}

func samePatternKind(a, b jsast.Pattern) bool {
	switch a.(type) {
	case *jsast.Identifier:
		_, ok := b.(*jsast.Identifier)
		return ok
	case *jsast.ObjectPattern:
		_, ok := b.(*jsast.ObjectPattern)
		return ok
	}
	return false
}

func sameRequire(a, b jsast.Expression) bool {
	switch x := a.(type) {
	case *jsast.RequireCall:
		y, ok := b.(*jsast.RequireCall)
		return ok && x.Source.Value == y.Source.Value
	case *jsast.MemberExpression:
		y, ok := b.(*jsast.MemberExpression)
		return ok && x.Property == y.Property && sameRequire(x.Object, y.Object)
	}
	return false
}
