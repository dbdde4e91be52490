// Package addimports merges requested import and require statements into a
// program. Bindings that already exist are reused, new specifiers join
// existing declarations of the same module where possible, and new names are
// chosen so they never collide with names the program already binds.
package addimports

import (
	"context"
	"io"
	"log/slog"

	"github.com/hannajonsd/addimports/discovery"
	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/printer"
)

// Options configures AddImportsWithOptions. Zero values are replaced by
// defaults.
type Options struct {
	Logger *slog.Logger
	// Printer renders the program for the binding scope analysis and for
	// log and error messages.
	Printer *printer.Printer
}

// AddImports merges statements into prog with default options. See
// AddImportsWithOptions.
func AddImports(prog *jsast.Program, statements ...jsast.Statement) (map[string]string, error) {
	return AddImportsWithOptions(context.Background(), prog, Options{}, statements...)
}

// AddImportsWithOptions makes every binding the statements request available
// in prog, mutating it in place. Each statement must be an import
// declaration, a declaration initialized with require() or a bare require()
// call. The result maps each requested local name to the name the program
// binds it under.
//
// Statements are applied in order and the call is not transactional: when a
// statement is rejected with ErrInvalidStatement, earlier statements stay
// applied and the returned map covers them.
func AddImportsWithOptions(ctx context.Context, prog *jsast.Program, opts Options, statements ...jsast.Statement) (map[string]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := opts.Printer
	if p == nil {
		p = printer.New(printer.DefaultConfig())
	}

	found, err := discovery.FindPreexisting(prog, statements)
	if err != nil {
		return nil, err
	}

	m := &merger{
		prog:        prog,
		found:       found,
		resolver:    newResolver(ctx, prog, p, logger),
		printer:     p,
		logger:      logger,
		inlineTypes: usesInlineTypes(prog),
	}

	for _, stmt := range statements {
		if err := m.add(stmt); err != nil {
			return m.found, err
		}
	}

	return m.found, nil
}
