package addimports

import (
	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/scope"
)

// topImports returns the top-level import declarations accepted by pred.
func topImports(prog *jsast.Program, pred func(*jsast.ImportDeclaration) bool) []*jsast.ImportDeclaration {
	var imports []*jsast.ImportDeclaration

	for _, stmt := range prog.Body {
		decl, ok := stmt.(*jsast.ImportDeclaration)
		if !ok {
			continue
		}
		if pred == nil || pred(decl) {
			imports = append(imports, decl)
		}
	}

	return imports
}

// topRequires returns the sources of require calls that are a top-level
// expression statement or a top-level declarator initializer. A program that
// binds its own require has none.
func topRequires(prog *jsast.Program, pred func(source string) bool) []string {
	if scope.NewClassicScope(prog).LookupValue("require") {
		return nil
	}

	var sources []string
	add := func(source string) {
		if pred == nil || pred(source) {
			sources = append(sources, source)
		}
	}

	for _, stmt := range prog.Body {
		switch st := stmt.(type) {
		case *jsast.ExpressionStatement:
			if source, ok := jsast.RequireSource(st.Expression); ok {
				add(source)
			}
		case *jsast.VariableDeclaration:
			for _, d := range st.Declarators {
				if source, ok := jsast.RequireSource(d.Init); ok {
					add(source)
				}
			}
		case *jsast.RawStatement:
			for _, source := range st.Requires {
				add(source)
			}
		}
	}

	return sources
}

// isSourcePresent reports whether a top-level import or require already
// loads source.
func isSourcePresent(prog *jsast.Program, source string) bool {
	imports := topImports(prog, func(decl *jsast.ImportDeclaration) bool {
		return decl.Source.Value == source
	})
	if len(imports) > 0 {
		return true
	}

	return len(topRequires(prog, func(s string) bool { return s == source })) > 0
}
