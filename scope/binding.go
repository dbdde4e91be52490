package scope

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/hannajonsd/addimports/parser"
)

// ErrScopeUnavailable is returned when the source cannot be analyzed as plain
// JavaScript, for example because it carries Flow or TypeScript annotations.
var ErrScopeUnavailable = errors.New("binding scope unavailable")

// BindingScope holds every name bound at program level: imports, top-level
// declarations and var declarations hoisted out of nested blocks.
type BindingScope struct {
	names map[string]bool
}

// NewBindingScope analyzes source with the JavaScript grammar.
func NewBindingScope(ctx context.Context, source []byte) (*BindingScope, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScopeUnavailable, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: source has syntax the JavaScript grammar rejects", ErrScopeUnavailable)
	}

	s := &BindingScope{names: make(map[string]bool)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		values, types := parser.DeclaredNames(root.NamedChild(i), source)
		for _, name := range values {
			s.names[name] = true
		}
		for _, name := range types {
			s.names[name] = true
		}
	}

	return s, nil
}

func (s *BindingScope) IsBound(name string) bool {
	return s.names[name]
}
