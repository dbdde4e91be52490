package addimports

import (
	"fmt"
	"log/slog"

	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/printer"
	"github.com/hannajonsd/addimports/scope"
)

// merger applies requested statements to one program. found maps requested
// local names to the names the program binds them under.
type merger struct {
	prog        *jsast.Program
	found       map[string]string
	resolver    *scope.Resolver
	printer     *printer.Printer
	logger      *slog.Logger
	inlineTypes bool
}

func (m *merger) add(stmt jsast.Statement) error {
	switch st := stmt.(type) {
	case *jsast.ImportDeclaration:
		m.addImport(st)
		return nil
	case *jsast.VariableDeclaration:
		m.addRequire(st)
		return nil
	case *jsast.ExpressionStatement:
		source, ok := jsast.RequireSource(st.Expression)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidStatement, m.printer.Expression(st.Expression))
		}
		m.addSideEffect(source, stmt)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatement, m.printer.Statement(stmt))
	}
}

func (m *merger) addSideEffect(source string, stmt jsast.Statement) {
	if isSourcePresent(m.prog, source) {
		m.logger.Debug("source already loaded", slog.String("source", source))
		return
	}
	m.insert(jsast.CloneStatement(stmt))
}

func (m *merger) addImport(stmt *jsast.ImportDeclaration) {
	if len(stmt.Specifiers) == 0 {
		m.addSideEffect(stmt.Source.Value, stmt)
		return
	}

	for _, spec := range stmt.Specifiers {
		local := spec.LocalName()
		if _, ok := m.found[local]; ok {
			continue
		}

		name := m.resolver.Resolve(local)
		m.found[local] = name
		spec = renameSpecifier(spec, name)

		incoming := specifierKind(spec)
		if incoming == jsast.KindUnset {
			incoming = stmt.Kind
		}
		incoming = incoming.Effective()

		existing := findExistingImports(m.prog, stmt, m.inlineTypes)
		if decl := lastCompatible(existing, spec, incoming); decl != nil {
			mergeSpecifier(decl, spec, incoming)
			m.logger.Debug("merged specifier",
				slog.String("source", stmt.Source.Value),
				slog.String("local", name))
			continue
		}

		m.insert(jsast.NewImportDeclaration([]jsast.Specifier{spec}, stmt.Source.Value, stmt.Kind))
	}
}

// mergeSpecifier appends spec to decl, reconciling import kinds. A type
// declaration receiving a differently kinded specifier has its kind pushed
// down onto each of its specifiers.
func mergeSpecifier(decl *jsast.ImportDeclaration, spec jsast.Specifier, incoming jsast.ImportKind) {
	if decl.Kind.Effective() != incoming {
		if decl.Kind.IsTypeLike() {
			for _, existing := range decl.Specifiers {
				setSpecifierKind(existing, decl.Kind)
			}
			decl.Kind = jsast.KindUnset
		}
		setSpecifierKind(spec, incoming)
	} else if decl.Kind != jsast.KindValue && decl.Kind == incoming {
		setSpecifierKind(spec, jsast.KindUnset)
	}

	decl.Specifiers = append(decl.Specifiers, spec)
}

func (m *merger) addRequire(stmt *jsast.VariableDeclaration) {
	for _, d := range stmt.Declarators {
		switch id := d.ID.(type) {
		case *jsast.ObjectPattern:
			for _, prop := range id.Properties {
				local := prop.Value.Name
				if _, ok := m.found[local]; ok {
					continue
				}

				name := m.resolver.Resolve(local)
				m.found[local] = name
				added := jsast.NewObjectProperty(prop.Key.Name, name)

				if existing := findExistingRequire(m.prog, d); existing != nil {
					pattern := existing.ID.(*jsast.ObjectPattern)
					pattern.Properties = append(pattern.Properties, added)
					m.logger.Debug("merged property",
						slog.String("key", prop.Key.Name),
						slog.String("local", name))
					continue
				}

				m.insert(jsast.NewVariableDeclaration("const",
					jsast.NewVariableDeclarator(jsast.NewObjectPattern(added), jsast.CloneExpression(d.Init))))
			}

		case *jsast.Identifier:
			if _, ok := m.found[id.Name]; ok {
				continue
			}

			name := m.resolver.Resolve(id.Name)
			m.found[id.Name] = name

			m.insert(jsast.NewVariableDeclaration("const",
				jsast.NewVariableDeclarator(jsast.NewIdentifier(name), jsast.CloneExpression(d.Init))))
		}
	}
}

func (m *merger) insert(stmt jsast.Statement) {
	insertStatements(m.prog, stmt)
	m.logger.Debug("inserted statement", slog.String("statement", m.printer.Statement(stmt)))
}

func specifierKind(spec jsast.Specifier) jsast.ImportKind {
	switch sp := spec.(type) {
	case *jsast.DefaultSpecifier:
		return sp.Kind
	case *jsast.NamedSpecifier:
		return sp.Kind
	}
	return jsast.KindUnset
}

func setSpecifierKind(spec jsast.Specifier, kind jsast.ImportKind) {
	switch sp := spec.(type) {
	case *jsast.DefaultSpecifier:
		sp.Kind = kind
	case *jsast.NamedSpecifier:
		sp.Kind = kind
	}
}
