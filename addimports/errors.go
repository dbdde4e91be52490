package addimports

import "github.com/hannajonsd/addimports/discovery"

// ErrInvalidStatement is returned when a requested statement is not an import
// declaration, a require declaration or a bare require call.
var ErrInvalidStatement = discovery.ErrInvalidStatement
