package discovery

import (
	"github.com/hannajonsd/addimports/jsast"
)

// FindPreexisting maps each local name the requested statements bind to the
// local name of an existing top-level import or require that already provides
// the same export of the same module with the same import kind.
func FindPreexisting(prog *jsast.Program, statements []jsast.Statement) (map[string]string, error) {
	var requested []Binding
	for _, stmt := range statements {
		bindings, err := requestedBindings(stmt)
		if err != nil {
			return nil, err
		}
		requested = append(requested, bindings...)
	}

	existing := ExtractBindings(prog)
	found := make(map[string]string)

	for _, req := range requested {
		if _, ok := found[req.Local]; ok {
			continue
		}
		for _, ex := range existing {
			if Satisfies(ex, req) {
				found[req.Local] = ex.Local
				break
			}
		}
	}

	return found, nil
}

// Satisfies reports whether the existing binding provides what req asks for.
// A whole-module require stands in for both the default and the namespace.
func Satisfies(existing, req Binding) bool {
	if existing.Source != req.Source || existing.Kind.Effective() != req.Kind.Effective() {
		return false
	}

	if existing.Imported == req.Imported {
		return true
	}

	return existing.Style == StyleRequire &&
		(req.Imported == ImportedDefault || req.Imported == ImportedNamespace)
}
