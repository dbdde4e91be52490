package addimports

import "github.com/hannajonsd/addimports/jsast"

// usesInlineTypes reports whether the program definitely uses inline type
// syntax: a type import, a type annotation, or a comment starting with @flow.
func usesInlineTypes(prog *jsast.Program) bool {
	for _, stmt := range prog.Body {
		base := stmt.Base()
		if hasFlowPragma(base.Comments) || hasFlowPragma(base.Trailing) || hasFlowPragma(base.Inner) {
			return true
		}

		switch st := stmt.(type) {
		case *jsast.ImportDeclaration:
			if st.Kind.IsTypeLike() {
				return true
			}
			for _, spec := range st.Specifiers {
				if specifierKind(spec).IsTypeLike() {
					return true
				}
			}
		case *jsast.RawStatement:
			if st.InlineTypes {
				return true
			}
		}
	}

	return hasFlowPragma(prog.Comments)
}

func hasFlowPragma(comments []*jsast.Comment) bool {
	for _, c := range comments {
		if jsast.IsFlowPragma(c.Value()) {
			return true
		}
	}
	return false
}
