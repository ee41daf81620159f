package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"

	"github.com/fzipp/gocyclo"

	"github.com/codeatlas/codeatlas/internal/domain"
)

// GoParser extracts facts from Go sources using go/ast. Complexity is the
// mean cyclomatic complexity reported by gocyclo.
type GoParser struct{}

func NewGoParser() *GoParser {
	return &GoParser{}
}

func (p *GoParser) Parse(file domain.SourceFile) (domain.RawFacts, error) {
	fset := token.NewFileSet()
	f, err := goparser.ParseFile(fset, file.Path, file.Content, goparser.ParseComments)
	if err != nil {
		return domain.RawFacts{}, fmt.Errorf("parsing %s: %w", file.Path, err)
	}

	facts := domain.RawFacts{
		Functions: []string{},
		Classes:   []string{},
	}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				switch ts.Type.(type) {
				case *ast.StructType, *ast.InterfaceType:
					facts.Classes = append(facts.Classes, ts.Name.Name)
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil && len(d.Recv.List) > 0 {
				name = receiverType(d.Recv.List[0].Type) + "." + name
			}
			facts.Functions = append(facts.Functions, name)
		}
	}

	stats := gocyclo.AnalyzeASTFile(f, fset, nil)
	facts.Complexity = 1
	if len(stats) > 0 {
		facts.Complexity = roundFacts(stats.AverageComplexity())
	}
	facts.NestingDepth = maxNesting(f)
	return facts, nil
}

type frame struct {
	node  ast.Node
	nests bool
}

// maxNesting returns the deepest chain of nested control blocks. An else-if
// continues its chain rather than opening a new level.
func maxNesting(f *ast.File) int {
	var stack []frame
	depth, deepest := 0, 0
	ast.Inspect(f, func(n ast.Node) bool {
		if n == nil {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.nests {
				depth--
			}
			return true
		}
		nests := opensBlock(n)
		if ifs, ok := n.(*ast.IfStmt); ok && len(stack) > 0 {
			if parent, ok := stack[len(stack)-1].node.(*ast.IfStmt); ok && parent.Else == ifs {
				nests = false
			}
		}
		if nests {
			depth++
			deepest = max(deepest, depth)
		}
		stack = append(stack, frame{node: n, nests: nests})
		return true
	})
	return deepest
}

func opensBlock(n ast.Node) bool {
	switch n.(type) {
	case *ast.FuncDecl, *ast.FuncLit,
		*ast.IfStmt, *ast.ForStmt, *ast.RangeStmt,
		*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		return true
	}
	return false
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	default:
		return ""
	}
}
