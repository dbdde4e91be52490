package parser

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractStringValue removes quotes from a string literal node and decodes its escapes
func ExtractStringValue(node *sitter.Node, source []byte) string {
	text := node.Content(source)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') {
		text = text[1 : len(text)-1]
	}
	return unescapeJS(text)
}

// unescapeJS decodes the escape sequences allowed in JavaScript string literals.
func unescapeJS(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if r, ok := parseHex(s, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				end := strings.IndexByte(s[i:], '}')
				if end > 0 {
					if r, ok := parseHex(s, i+2, end-2); ok {
						b.WriteRune(r)
						i += end
						continue
					}
				}
				b.WriteByte('u')
			} else if r, ok := parseUTF16(s, i+1); ok {
				i += 4
				if utf16.IsSurrogate(r) && i+6 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
					if low, ok := parseUTF16(s, i+3); ok {
						if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
							r = pair
							i += 6
						}
					}
				}
				b.WriteRune(r)
			} else {
				b.WriteByte('u')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parseUTF16 reads the four hex digits of a \uXXXX escape. Unlike parseHex it
// accepts surrogate halves.
func parseUTF16(s string, start int) (rune, bool) {
	if start+4 > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+4], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func parseHex(s string, start, n int) (rune, bool) {
	if n <= 0 || start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// WalkAST recursively traverses an AST and applies a visitor function to each node.
// Returning false from the visitor skips the node's children.
func WalkAST(node *sitter.Node, source []byte, visitor func(*sitter.Node) bool) {
	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		WalkAST(node.Child(i), source, visitor)
	}
}

// ParseFileGeneric provides common file parsing functionality for all grammar parsers
func (bp *BaseParser) ParseFileGeneric(filePath string) (*ParseResult, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	result, err := bp.parse(context.Background(), source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}
	result.FilePath = filePath

	return result, nil
}

func (bp *BaseParser) parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := bp.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	conv := newConverter(source, false)

	return &ParseResult{
		Program:   conv.program(root),
		Source:    source,
		Language:  bp.langName,
		HasErrors: root.HasError(),
	}, nil
}

// GetLanguage returns the language name for this parser
func (bp *BaseParser) GetLanguage() string {
	return bp.langName
}

// Close releases the tree-sitter parser
func (bp *BaseParser) Close() {
	bp.parser.Close()
}
