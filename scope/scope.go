// Package scope answers whether a name is already bound at program level, so
// new import bindings can be given names that do not collide.
package scope

import (
	"context"
	"io"
	"log/slog"

	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/printer"
)

// NameConflictChecker reports whether a name is already bound in a program.
type NameConflictChecker interface {
	IsBound(name string) bool
}

// New returns the binding scope of prog when its printed source parses as
// plain JavaScript, and the classic scope otherwise.
func New(ctx context.Context, prog *jsast.Program, p *printer.Printer, logger *slog.Logger) NameConflictChecker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	binding, err := NewBindingScope(ctx, []byte(p.String(prog)))
	if err != nil {
		logger.Debug("binding scope unavailable, using classic scope",
			slog.String("error", err.Error()))
		return NewClassicScope(prog)
	}

	return binding
}
