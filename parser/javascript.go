// parser/javascript.go - tree-sitter backed parsers for JavaScript, Flow and TypeScript
package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// JavaScriptParser parses JavaScript, JSX and Flow-style type imports with the
// TSX grammar, which accepts `import type`, `import typeof` and `{type x}`.
type JavaScriptParser struct {
	BaseParser
}

func NewJavaScriptParser() (*JavaScriptParser, error) {
	parser := sitter.NewParser()
	language := tsx.GetLanguage()
	parser.SetLanguage(language)

	return &JavaScriptParser{
		BaseParser: BaseParser{
			parser:   parser,
			language: language,
			langName: "javascript",
		},
	}, nil
}

func (p *JavaScriptParser) ParseFile(filePath string) (*ParseResult, error) {
	return p.ParseFileGeneric(filePath)
}

func (p *JavaScriptParser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	return p.parse(ctx, source)
}

// TypeScriptParser uses the plain TypeScript grammar, which keeps `<T>expr`
// casts that TSX rejects.
type TypeScriptParser struct {
	BaseParser
}

func NewTypeScriptParser() (*TypeScriptParser, error) {
	parser := sitter.NewParser()
	language := typescript.GetLanguage()
	parser.SetLanguage(language)

	return &TypeScriptParser{
		BaseParser: BaseParser{
			parser:   parser,
			language: language,
			langName: "typescript",
		},
	}, nil
}

func (p *TypeScriptParser) ParseFile(filePath string) (*ParseResult, error) {
	return p.ParseFileGeneric(filePath)
}

func (p *TypeScriptParser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	return p.parse(ctx, source)
}
