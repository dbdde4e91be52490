package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/hannajonsd/addimports/jsast"
)

// ErrSyntax is returned when a statement snippet does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// ParseStatements parses snippets such as `import {foo} from "bar"` into
// statements to request from the merger. Declarators and expressions that are
// not require calls are preserved so the merger can reject them.
func ParseStatements(ctx context.Context, snippets ...string) ([]jsast.Statement, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsx.GetLanguage())

	var statements []jsast.Statement

	for _, snippet := range snippets {
		source := []byte(snippet)

		tree, err := parser.ParseCtx(ctx, nil, source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse statement %q: %w", snippet, err)
		}

		root := tree.RootNode()
		if root.HasError() {
			line := firstErrorRow(root) + 1
			tree.Close()
			return nil, fmt.Errorf("%w in statement %q at line %d", ErrSyntax, snippet, line)
		}

		conv := newConverter(source, true)
		for i := 0; i < int(root.NamedChildCount()); i++ {
			n := root.NamedChild(i)
			if n.Type() == nodeComment {
				continue
			}
			stmt, _ := conv.statement(n)
			statements = append(statements, stmt)
		}
		tree.Close()
	}

	return statements, nil
}

func firstErrorRow(root *sitter.Node) int {
	row := int(root.StartPoint().Row)
	found := false

	WalkAST(root, nil, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			row = int(n.StartPoint().Row)
			found = true
			return false
		}
		return n.HasError()
	})

	return row
}
