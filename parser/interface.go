package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hannajonsd/addimports/jsast"
)

// Parser defines the interface for grammar-specific source parsers
type Parser interface {
	GetLanguage() string
	Close()
	ParseFile(filePath string) (*ParseResult, error)
	Parse(ctx context.Context, source []byte) (*ParseResult, error)
}

// BaseParser provides common functionality for all grammar parsers
type BaseParser struct {
	parser   *sitter.Parser
	language *sitter.Language
	langName string
}

// ParseResult contains the converted program and metadata for a source file
type ParseResult struct {
	Program  *jsast.Program
	Source   []byte
	Language string
	FilePath string
	// HasErrors is set when tree-sitter recovered from syntax errors; the
	// affected statements are kept as raw text.
	HasErrors bool
}
