// Package noexit reports calls that terminate the process from main.main:
// os.Exit and the log.Fatal family. Such calls skip deferred cleanup, so the
// storage would not be closed and the logger would not be flushed.
package noexit

import (
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "noexit",
	Doc:      "prohibits os.Exit and log.Fatal* directly in main.main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var forbidden = map[string]map[string]bool{
	"os":  {"Exit": true},
	"log": {"Fatal": true, "Fatalf": true, "Fatalln": true},
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{(*ast.FuncDecl)(nil)}
	inspect.Preorder(nodeFilter, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
			return
		}
		if isGoBuildCacheFile(pass.Fset.File(fn.Pos()).Name()) {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			// Closures run later, possibly after main has returned.
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

			callee, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok || callee.Pkg() == nil {
				return true
			}
			if forbidden[callee.Pkg().Path()][callee.Name()] {
				pass.Reportf(call.Pos(), "avoid using %s.%s in main.main", callee.Pkg().Name(), callee.Name())
			}

			return true
		})
	})

	return nil, nil
}

func isGoBuildCacheFile(path string) bool {
	path = filepath.ToSlash(path)
	return strings.Contains(path, "/go-build/")
}
