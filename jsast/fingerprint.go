package jsast

import "strings"

// Fingerprint describes the structure of a statement, ignoring formatting,
// positions and comments. Two statements with equal fingerprints print the same.
func Fingerprint(s Statement) string {
	var b strings.Builder
	switch st := s.(type) {
	case *ImportDeclaration:
		b.WriteString("import:")
		b.WriteString(string(st.Kind))
		for _, spec := range st.Specifiers {
			b.WriteByte('|')
			writeSpecifier(&b, spec)
		}
		b.WriteString("|from:")
		writeLiteral(&b, st.Source)
	case *VariableDeclaration:
		b.WriteString(st.Keyword)
		for _, d := range st.Declarators {
			b.WriteByte('|')
			writePattern(&b, d.ID)
			b.WriteByte('=')
			writeExpression(&b, d.Init)
		}
	case *ExpressionStatement:
		b.WriteString("expr:")
		writeExpression(&b, st.Expression)
	case *RawStatement:
		b.WriteString("raw:")
		b.WriteString(st.Text)
	}
	return b.String()
}

func writeSpecifier(b *strings.Builder, s Specifier) {
	switch spec := s.(type) {
	case *DefaultSpecifier:
		b.WriteString("default:")
		b.WriteString(string(spec.Kind))
		b.WriteByte(':')
		b.WriteString(spec.Local.Name)
	case *NamespaceSpecifier:
		b.WriteString("ns:")
		b.WriteString(spec.Local.Name)
	case *NamedSpecifier:
		b.WriteString("named:")
		b.WriteString(string(spec.Kind))
		b.WriteByte(':')
		if spec.Imported != nil {
			b.WriteString(spec.Imported.Name)
			b.WriteString(">")
		}
		b.WriteString(spec.Local.Name)
	}
}

func writePattern(b *strings.Builder, p Pattern) {
	switch pat := p.(type) {
	case *Identifier:
		b.WriteString(pat.Name)
	case *ObjectPattern:
		b.WriteByte('{')
		for i, prop := range pat.Properties {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(prop.Key.Name)
			b.WriteByte(':')
			b.WriteString(prop.Value.Name)
		}
		b.WriteByte('}')
	}
}

func writeExpression(b *strings.Builder, e Expression) {
	switch expr := e.(type) {
	case *RequireCall:
		b.WriteString("require(")
		writeLiteral(b, expr.Source)
		b.WriteByte(')')
	case *MemberExpression:
		writeExpression(b, expr.Object)
		b.WriteByte('.')
		b.WriteString(expr.Property)
	case *RawExpression:
		b.WriteString(expr.Text)
	}
}

func writeLiteral(b *strings.Builder, lit *StringLiteral) {
	if lit == nil {
		return
	}
	b.WriteString(lit.Value)
}
