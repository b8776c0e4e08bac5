package main

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// OSExitAnalyzer reports os.Exit calls in func main of package main.
var OSExitAnalyzer = &analysis.Analyzer{
	Name:     "osexitlint",
	Doc:      "reports os.Exit calls in func main of package main",
	Run:      runOSExit,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

// FmtPrintAnalyzer reports fmt.Print* calls in internal packages.
var FmtPrintAnalyzer = &analysis.Analyzer{
	Name:     "fmtprintlint",
	Doc:      "reports fmt.Print, fmt.Printf and fmt.Println in internal packages",
	Run:      runFmtPrint,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func render(fset *token.FileSet, x any) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, x); err != nil {
		return ""
	}
	return buf.String()
}

// pkgCall returns the package path and function name of a call like pkg.Fn().
func pkgCall(pass *analysis.Pass, call *ast.CallExpr) (string, string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", "", false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", "", false
	}
	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", "", false
	}
	return pkgName.Imported().Path(), sel.Sel.Name, true
}

func runOSExit(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Body == nil || fn.Recv != nil || fn.Name.Name != "main" {
			return
		}
		if strings.Contains(pass.Fset.File(fn.Pos()).Name(), "go-build") {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if path, name, ok := pkgCall(pass, call); ok && path == "os" && name == "Exit" {
				pass.Reportf(call.Pos(), "os.Exit call is forbidden in main function: %s", render(pass.Fset, call))
			}
			return true
		})
	})

	return nil, nil
}

func runFmtPrint(pass *analysis.Pass) (any, error) {
	path := pass.Pkg.Path()
	if !strings.Contains(path, "/internal/") && !strings.HasPrefix(path, "internal/") {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}

		pkg, name, ok := pkgCall(pass, call)
		if !ok || pkg != "fmt" {
			return
		}
		switch name {
		case "Print", "Printf", "Println":
			pass.Reportf(call.Pos(), "fmt.%s in internal package: log with zap or use a Notifier", name)
		}
	})

	return nil, nil
}
