package scope

import (
	"github.com/hannajonsd/addimports/jsast"
)

// ClassicScope is built from the converted program alone. It tracks value and
// type bindings separately; a name is bound if either lookup finds it.
type ClassicScope struct {
	values map[string]bool
	types  map[string]bool
}

func NewClassicScope(prog *jsast.Program) *ClassicScope {
	s := &ClassicScope{
		values: make(map[string]bool),
		types:  make(map[string]bool),
	}

	for _, stmt := range prog.Body {
		switch st := stmt.(type) {
		case *jsast.ImportDeclaration:
			for _, spec := range st.Specifiers {
				if specifierKind(st, spec).IsTypeLike() {
					s.types[spec.LocalName()] = true
				} else {
					s.values[spec.LocalName()] = true
				}
			}
		case *jsast.VariableDeclaration:
			for _, d := range st.Declarators {
				for _, name := range PatternNames(d.ID) {
					s.values[name] = true
				}
			}
		case *jsast.RawStatement:
			for _, name := range st.Declares {
				s.values[name] = true
			}
			for _, name := range st.DeclaresTypes {
				s.types[name] = true
			}
		}
	}

	return s
}

// LookupValue reports a value binding.
func (s *ClassicScope) LookupValue(name string) bool {
	return s.values[name]
}

// LookupType reports a type binding, such as `import type` or a class.
func (s *ClassicScope) LookupType(name string) bool {
	return s.types[name]
}

func (s *ClassicScope) IsBound(name string) bool {
	return s.LookupValue(name) || s.LookupType(name)
}

// PatternNames lists the identifiers a declarator pattern binds.
func PatternNames(p jsast.Pattern) []string {
	switch pat := p.(type) {
	case *jsast.Identifier:
		return []string{pat.Name}
	case *jsast.ObjectPattern:
		names := make([]string, 0, len(pat.Properties))
		for _, prop := range pat.Properties {
			names = append(names, prop.Value.Name)
		}
		return names
	}
	return nil
}

func specifierKind(decl *jsast.ImportDeclaration, spec jsast.Specifier) jsast.ImportKind {
	switch sp := spec.(type) {
	case *jsast.DefaultSpecifier:
		if sp.Kind != jsast.KindUnset {
			return sp.Kind
		}
	case *jsast.NamedSpecifier:
		if sp.Kind != jsast.KindUnset {
			return sp.Kind
		}
	}
	return decl.Kind
}
