package addimports

import "github.com/hannajonsd/addimports/jsast"

// insertStatements places new declarations right after the last top-level
// import. Without imports they go after the directive prologue, or at the
// start of the program when there is none; in that case the comments heading
// the program move onto the first new statement.
func insertStatements(prog *jsast.Program, stmts ...jsast.Statement) {
	if len(stmts) == 0 {
		return
	}

	last := -1
	for i, stmt := range prog.Body {
		if _, ok := stmt.(*jsast.ImportDeclaration); ok {
			last = i
		}
	}

	if last < 0 {
		for i, stmt := range prog.Body {
			raw, ok := stmt.(*jsast.RawStatement)
			if !ok || !raw.Directive {
				break
			}
			last = i
		}
	}

	if last >= 0 {
		body := make([]jsast.Statement, 0, len(prog.Body)+len(stmts))
		body = append(body, prog.Body[:last+1]...)
		body = append(body, stmts...)
		body = append(body, prog.Body[last+1:]...)
		prog.Body = body
		return
	}

	var moved []*jsast.Comment
	if len(prog.Body) > 0 {
		first := prog.Body[0].Base()
		moved, first.Comments = first.Comments, nil
	} else {
		moved, prog.Comments = prog.Comments, nil
	}

	if len(moved) > 0 {
		for _, c := range moved {
			c.Span = nil
		}
		head := stmts[0].Base()
		head.Comments = append(moved, head.Comments...)
	}

	body := make([]jsast.Statement, 0, len(prog.Body)+len(stmts))
	body = append(body, stmts...)
	prog.Body = append(body, prog.Body...)
}
