// Package printer turns a jsast program back into source text. Statements the
// merger left untouched are printed exactly as they were parsed.
package printer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/hannajonsd/addimports/jsast"
)

// Quote selects the delimiter for string literals the printer creates.
type Quote string

const (
	QuoteDouble Quote = "double"
	QuoteSingle Quote = "single"
)

// ErrInvalidQuote is returned by Validate for an unknown quote style.
var ErrInvalidQuote = errors.New("invalid quote style")

// Config controls the canonical form of rewritten statements.
type Config struct {
	Quote      Quote
	Semicolons bool
}

// DefaultConfig prints double quotes and semicolons.
func DefaultConfig() Config {
	return Config{Quote: QuoteDouble, Semicolons: true}
}

// Validate checks the quote style.
func (c Config) Validate() error {
	switch c.Quote {
	case QuoteDouble, QuoteSingle:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidQuote, c.Quote)
	}
}

// Printer serializes programs. It is safe for concurrent use.
type Printer struct {
	cfg Config
}

func New(cfg Config) *Printer {
	if cfg.Quote == "" {
		cfg.Quote = QuoteDouble
	}
	return &Printer{cfg: cfg}
}

// Config returns the printer's configuration.
func (p *Printer) Config() Config {
	return p.cfg
}

// String prints a whole program.
func (p *Printer) String(prog *jsast.Program) string {
	var b strings.Builder
	p.emit(&b, prog)
	return b.String()
}

// Fprint writes a whole program to w.
func (p *Printer) Fprint(w io.Writer, prog *jsast.Program) error {
	if _, err := io.WriteString(w, p.String(prog)); err != nil {
		return fmt.Errorf("failed to write program: %w", err)
	}
	return nil
}

// emitter lays out statements and comments. Parsed items keep their relative
// rows: one blank line is kept where the source had any, items that shared a
// row stay on it. Inserted items go on their own line.
type emitter struct {
	b       *strings.Builder
	lastRow int
	started bool
}

func (e *emitter) item(text string, loc *jsast.Span) {
	if e.started {
		switch {
		case loc != nil && e.lastRow >= 0 && loc.StartRow == e.lastRow:
			e.b.WriteByte(' ')
		case loc != nil && e.lastRow >= 0 && loc.StartRow > e.lastRow+1:
			e.b.WriteString("\n\n")
		default:
			e.b.WriteByte('\n')
		}
	}
	e.b.WriteString(text)
	e.started = true

	if loc != nil {
		e.lastRow = loc.EndRow
	}
}

func (p *Printer) emit(b *strings.Builder, prog *jsast.Program) {
	leading, trailing := prog.Leading, prog.Trailing
	if !hasParsedItems(prog) {
		// Whitespace-only input: keep its newlines after the new statements.
		leading, trailing = "", leading+trailing
		if trailing == "" && len(prog.Body) > 0 {
			trailing = "\n"
		}
	}

	if prog.Interpreter != "" {
		b.WriteString(prog.Interpreter)
		if !strings.HasSuffix(prog.Interpreter, "\n") && (len(prog.Body) > 0 || len(prog.Comments) > 0) {
			b.WriteByte('\n')
		}
	}

	b.WriteString(leading)
	e := &emitter{b: b, lastRow: -1}

	for _, stmt := range prog.Body {
		base := stmt.Base()
		for _, c := range base.Comments {
			e.item(c.Text, c.Span)
		}
		e.item(p.Statement(stmt), base.Loc)
		if !unchanged(stmt) {
			for _, c := range base.Inner {
				b.WriteByte(' ')
				b.WriteString(c.Text)
			}
		}
		for _, c := range base.Trailing {
			if c.Before != "" {
				b.WriteString(c.Before)
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(c.Text)
		}
	}
	for _, c := range prog.Comments {
		e.item(c.Text, c.Span)
	}

	b.WriteString(trailing)
}

func hasParsedItems(prog *jsast.Program) bool {
	if len(prog.Comments) > 0 {
		return true
	}
	for _, stmt := range prog.Body {
		if stmt.Base().Loc != nil {
			return true
		}
	}
	return false
}

// Statement prints one statement without its comments. A parsed statement
// whose structure has not changed is printed with its original text.
func (p *Printer) Statement(stmt jsast.Statement) string {
	if unchanged(stmt) {
		return stmt.Base().Original
	}

	switch s := stmt.(type) {
	case *jsast.ImportDeclaration:
		return p.importDeclaration(s)
	case *jsast.VariableDeclaration:
		return p.variableDeclaration(s)
	case *jsast.ExpressionStatement:
		return p.Expression(s.Expression) + p.semi()
	case *jsast.RawStatement:
		return s.Text
	}

	return ""
}

func unchanged(stmt jsast.Statement) bool {
	base := stmt.Base()
	return base.Original != "" && base.Fingerprint == jsast.Fingerprint(stmt)
}

func (p *Printer) semi() string {
	if p.cfg.Semicolons {
		return ";"
	}
	return ""
}

func (p *Printer) importDeclaration(s *jsast.ImportDeclaration) string {
	var b strings.Builder
	b.WriteString("import ")

	if s.Kind.IsTypeLike() {
		b.WriteString(string(s.Kind))
		b.WriteByte(' ')
	}

	var defaults, namespaces, named []string
	for _, spec := range s.Specifiers {
		switch sp := spec.(type) {
		case *jsast.DefaultSpecifier:
			if sp.Kind.IsTypeLike() && sp.Kind != s.Kind {
				named = append(named, string(sp.Kind)+" default as "+sp.Local.Name)
				continue
			}
			defaults = append(defaults, sp.Local.Name)
		case *jsast.NamespaceSpecifier:
			namespaces = append(namespaces, "* as "+sp.Local.Name)
		case *jsast.NamedSpecifier:
			named = append(named, p.namedSpecifier(sp, s.Kind))
		}
	}

	clause := append(defaults, namespaces...)
	if len(named) > 0 {
		clause = append(clause, "{ "+strings.Join(named, ", ")+" }")
	}

	if len(clause) > 0 {
		b.WriteString(strings.Join(clause, ", "))
		b.WriteString(" from ")
	}

	b.WriteString(p.literal(s.Source))
	b.WriteString(p.semi())

	return b.String()
}

func (p *Printer) namedSpecifier(s *jsast.NamedSpecifier, declKind jsast.ImportKind) string {
	var b strings.Builder

	if s.Kind.IsTypeLike() && s.Kind != declKind {
		b.WriteString(string(s.Kind))
		b.WriteByte(' ')
	}

	imported := s.ImportedName()
	if isIdentifierName(imported) {
		b.WriteString(imported)
	} else {
		b.WriteString(Quoted(imported, p.cfg.Quote))
	}
	if imported != s.Local.Name {
		b.WriteString(" as ")
		b.WriteString(s.Local.Name)
	}

	return b.String()
}

func (p *Printer) variableDeclaration(s *jsast.VariableDeclaration) string {
	parts := make([]string, 0, len(s.Declarators))
	for _, d := range s.Declarators {
		text := Pattern(d.ID)
		if d.Init != nil {
			text += " = " + p.Expression(d.Init)
		}
		parts = append(parts, text)
	}

	return s.Keyword + " " + strings.Join(parts, ", ") + p.semi()
}

// Pattern prints a binding pattern.
func Pattern(pat jsast.Pattern) string {
	switch pt := pat.(type) {
	case *jsast.Identifier:
		return pt.Name
	case *jsast.ObjectPattern:
		if len(pt.Properties) == 0 {
			return "{}"
		}
		props := make([]string, 0, len(pt.Properties))
		for _, prop := range pt.Properties {
			if prop.Key.Name == prop.Value.Name {
				props = append(props, prop.Key.Name)
				continue
			}
			props = append(props, prop.Key.Name+": "+prop.Value.Name)
		}
		return "{ " + strings.Join(props, ", ") + " }"
	}
	return ""
}

// Expression prints a require call, a member chain on it, or raw text.
func (p *Printer) Expression(expr jsast.Expression) string {
	switch e := expr.(type) {
	case *jsast.RequireCall:
		return "require(" + p.literal(e.Source) + ")"
	case *jsast.MemberExpression:
		return p.Expression(e.Object) + "." + e.Property
	case *jsast.RawExpression:
		return e.Text
	}
	return ""
}

func (p *Printer) literal(lit *jsast.StringLiteral) string {
	if lit == nil {
		return `""`
	}
	if lit.Raw != "" {
		return lit.Raw
	}
	return Quoted(lit.Value, p.cfg.Quote)
}

// Quoted renders a JavaScript string literal with the given delimiter.
func Quoted(value string, quote Quote) string {
	delim := byte('"')
	if quote == QuoteSingle {
		delim = '\''
	}

	var b strings.Builder
	b.WriteByte(delim)
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\x00`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r == rune(delim) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(delim)

	return b.String()
}

// isIdentifierName reports whether name can be written without quotes as an
// import or export name.
func isIdentifierName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '$' || r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || r == '\u200c' || r == '\u200d'):
		default:
			return false
		}
	}
	return true
}
