package discovery

import "github.com/hannajonsd/addimports/jsast"

// Exported names a binding can refer to besides plain named exports.
const (
	ImportedDefault   = "default"
	ImportedNamespace = "*"
)

// Import styles a binding was declared with.
const (
	StyleImport       = "import"       // import x from "m", import {a} from "m"
	StyleRequire      = "require"      // const x = require("m")
	StyleDestructured = "destructured" // const {a} = require("m")
	StyleMember       = "member"       // const x = require("m").a
)

// Binding is one local name an import or require brings into scope.
type Binding struct {
	Source   string           // "lodash", "./util", etc.
	Local    string           // "_", "merge", etc.
	Imported string           // "default", "*" or the exported name
	Kind     jsast.ImportKind // value, type or typeof; never unset
	Style    string
}
