// Package predicate supplies the filter predicates the explorer offers:
// a fixed set of named builtins over node facts, and user expressions
// compiled through CEL against the same facts.
package predicate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/objex/pkg/explore"
)

// builtins maps the toggleable filter names to their tests. Every test
// reads cached facts only, so applying a filter never touches the
// underlying object graph.
var builtins = map[string]func(*explore.Node) bool{
	"callable":   func(n *explore.Node) bool { return n.Facts.Callable },
	"class":      func(n *explore.Node) bool { return n.Facts.Class },
	"function":   func(n *explore.Node) bool { return n.Facts.Function },
	"method":     func(n *explore.Node) bool { return n.Facts.Method },
	"module":     func(n *explore.Node) bool { return n.Facts.Module },
	"builtin":    func(n *explore.Node) bool { return n.Facts.Builtin },
	"selectable": func(n *explore.Node) bool { return n.Selectable() },
	"mapping":    func(n *explore.Node) bool { return n.Kind == explore.KindMapping },
	"sequence":   func(n *explore.Node) bool { return n.Kind == explore.KindSequence },
	"set":        func(n *explore.Node) bool { return n.Kind == explore.KindSet },
	"documented": func(n *explore.Node) bool { return n.Facts.Doc != explore.NoDoc },
}

// Builtin looks up a named builtin filter.
func Builtin(name string) (explore.Predicate, bool) {
	test, ok := builtins[name]
	if !ok {
		return explore.Predicate{}, false
	}
	return explore.Predicate{Name: name, Test: test}, true
}

// BuiltinNames lists the builtin filter names in display order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry compiles user filter expressions. The environment is built
// once and shared by every compilation.
type Registry struct {
	env *cel.Env
}

// NewRegistry creates a registry whose expressions see one variable per
// node fact.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("path", cel.StringType),
		cel.Variable("type", cel.StringType),
		cel.Variable("repr", cel.StringType),
		cel.Variable("doc", cel.StringType),
		cel.Variable("length", cel.IntType),
		cel.Variable("callable", cel.BoolType),
		cel.Variable("class", cel.BoolType),
		cel.Variable("function", cel.BoolType),
		cel.Variable("method", cel.BoolType),
		cel.Variable("module", cel.BoolType),
		cel.Variable("builtin", cel.BoolType),
		cel.Variable("selectable", cel.BoolType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Registry{env: env}, nil
}

// Compile turns a CEL expression into a predicate. The expression must
// type-check to bool; expression errors at evaluation time exclude the
// node rather than abort the filter pass.
func (r *Registry) Compile(expr string) (explore.Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return explore.Predicate{}, fmt.Errorf("empty filter expression")
	}

	ast, issues := r.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return explore.Predicate{}, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if ast.OutputType().String() != cel.BoolType.String() {
		return explore.Predicate{}, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := r.env.Program(ast)
	if err != nil {
		return explore.Predicate{}, fmt.Errorf("program error: %w", err)
	}

	return explore.Predicate{
		Name: expr,
		Test: func(n *explore.Node) bool {
			out, _, err := prg.Eval(activation(n))
			if err != nil {
				return false
			}
			b, ok := out.(types.Bool)
			return ok && bool(b)
		},
	}, nil
}

func activation(n *explore.Node) map[string]any {
	length := 0
	if n.Facts.Length != "" {
		if v, err := strconv.Atoi(n.Facts.Length); err == nil {
			length = v
		}
	}
	return map[string]any{
		"name":       n.Name,
		"path":       n.PathLabel,
		"type":       n.Facts.TypeLabel,
		"repr":       n.Facts.Repr,
		"doc":        n.Facts.Doc,
		"length":     length,
		"callable":   n.Facts.Callable,
		"class":      n.Facts.Class,
		"function":   n.Facts.Function,
		"method":     n.Facts.Method,
		"module":     n.Facts.Module,
		"builtin":    n.Facts.Builtin,
		"selectable": n.Selectable(),
	}
}
