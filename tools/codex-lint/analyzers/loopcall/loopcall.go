// Package loopcall detects backend calls made once per loop iteration
// where the port offers a batch form.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports single-item backend calls inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects single-item embedder, form index and archive calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// batched maps single-item methods to the call that should replace them.
var batched = map[string]string{
	"Embed":     "EmbedBatch",
	"SaveForms": "one SaveForms with every form",
	"SaveRun":   "one SaveRun per build",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Work handed to goroutines is fan-out, not a per-item round trip.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if instead, ok := batched[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(),
					"%s called inside loop - use %s",
					sel.Sel.Name, instead)
			}

			return true
		})
	})

	return nil, nil
}
