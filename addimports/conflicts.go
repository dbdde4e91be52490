package addimports

import (
	"context"
	"log/slog"

	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/printer"
	"github.com/hannajonsd/addimports/scope"
)

// newResolver picks the name conflict checker for prog once per call.
func newResolver(ctx context.Context, prog *jsast.Program, p *printer.Printer, logger *slog.Logger) *scope.Resolver {
	return scope.NewResolver(scope.New(ctx, prog, p, logger))
}

// renameSpecifier copies spec with the local name set to name. A renamed
// named specifier keeps the export it refers to.
func renameSpecifier(spec jsast.Specifier, name string) jsast.Specifier {
	renamed := jsast.CloneSpecifier(spec)
	if spec.LocalName() == name {
		return renamed
	}

	switch sp := renamed.(type) {
	case *jsast.DefaultSpecifier:
		sp.Local = jsast.NewIdentifier(name)
	case *jsast.NamespaceSpecifier:
		sp.Local = jsast.NewIdentifier(name)
	case *jsast.NamedSpecifier:
		sp.Imported = jsast.NewIdentifier(sp.ImportedName())
		sp.Local = jsast.NewIdentifier(name)
	}

	return renamed
}
