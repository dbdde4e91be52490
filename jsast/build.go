package jsast

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{Value: value}
}

func NewImportDeclaration(specifiers []Specifier, source string, kind ImportKind) *ImportDeclaration {
	return &ImportDeclaration{
		Kind:       kind,
		Specifiers: specifiers,
		Source:     NewStringLiteral(source),
	}
}

func NewRequireCall(source string) *RequireCall {
	return &RequireCall{Source: NewStringLiteral(source)}
}

func NewVariableDeclaration(keyword string, declarators ...*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{Keyword: keyword, Declarators: declarators}
}

func NewVariableDeclarator(id Pattern, init Expression) *VariableDeclarator {
	return &VariableDeclarator{ID: id, Init: init}
}

func NewObjectPattern(properties ...*ObjectProperty) *ObjectPattern {
	return &ObjectPattern{Properties: properties}
}

func NewObjectProperty(key, value string) *ObjectProperty {
	return &ObjectProperty{Key: NewIdentifier(key), Value: NewIdentifier(value)}
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: expr}
}

// CloneStatement deep-copies an import, require or expression statement. The
// copy carries no position, original text or comments. Raw statements are
// returned as is.
func CloneStatement(s Statement) Statement {
	switch st := s.(type) {
	case *ImportDeclaration:
		specs := make([]Specifier, 0, len(st.Specifiers))
		for _, spec := range st.Specifiers {
			specs = append(specs, CloneSpecifier(spec))
		}
		return &ImportDeclaration{Kind: st.Kind, Specifiers: specs, Source: cloneLiteral(st.Source)}
	case *VariableDeclaration:
		decls := make([]*VariableDeclarator, 0, len(st.Declarators))
		for _, d := range st.Declarators {
			decls = append(decls, &VariableDeclarator{ID: ClonePattern(d.ID), Init: CloneExpression(d.Init)})
		}
		return &VariableDeclaration{Keyword: st.Keyword, Declarators: decls}
	case *ExpressionStatement:
		return &ExpressionStatement{Expression: CloneExpression(st.Expression)}
	default:
		return s
	}
}

func CloneSpecifier(s Specifier) Specifier {
	switch spec := s.(type) {
	case *DefaultSpecifier:
		return &DefaultSpecifier{Local: cloneIdentifier(spec.Local), Kind: spec.Kind}
	case *NamespaceSpecifier:
		return &NamespaceSpecifier{Local: cloneIdentifier(spec.Local)}
	case *NamedSpecifier:
		return &NamedSpecifier{Imported: cloneIdentifier(spec.Imported), Local: cloneIdentifier(spec.Local), Kind: spec.Kind}
	}
	return s
}

func ClonePattern(p Pattern) Pattern {
	switch pat := p.(type) {
	case *Identifier:
		return cloneIdentifier(pat)
	case *ObjectPattern:
		props := make([]*ObjectProperty, 0, len(pat.Properties))
		for _, prop := range pat.Properties {
			props = append(props, &ObjectProperty{Key: cloneIdentifier(prop.Key), Value: cloneIdentifier(prop.Value)})
		}
		return &ObjectPattern{Properties: props}
	}
	return p
}

func CloneExpression(e Expression) Expression {
	switch expr := e.(type) {
	case *RequireCall:
		return &RequireCall{Source: cloneLiteral(expr.Source)}
	case *MemberExpression:
		return &MemberExpression{Object: CloneExpression(expr.Object), Property: expr.Property}
	case *RawExpression:
		return &RawExpression{Text: expr.Text}
	}
	return e
}

func cloneIdentifier(id *Identifier) *Identifier {
	if id == nil {
		return nil
	}
	return &Identifier{Name: id.Name}
}

func cloneLiteral(lit *StringLiteral) *StringLiteral {
	if lit == nil {
		return nil
	}
	return &StringLiteral{Value: lit.Value, Raw: lit.Raw}
}
