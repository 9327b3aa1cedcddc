// Package ast is Mython's evaluator: every node here is a tree-walk
// interpreter for itself, implementing a single Execute method that
// takes a closure and a context and produces a value handle - the
// contract spec.md §4.3 describes. This mirrors the teacher's own
// per-type dispatch already used for Callable in pkg/eval/ast.go
// (Fn.Call, Class.Call, BuiltinFn.Call each carry their own method
// body) generalized to every statement and expression, which is
// closer to the original C++'s per-class virtual Execute than to the
// teacher's separate type-switch interpreter (pkg/eval/eval.go).
package ast

import "github.com/mython-lang/mython/pkg/runtime"

// Node is the evaluator's node interface. It is structurally
// identical to runtime.Executable; every concrete type below
// satisfies both without runtime ever importing this package.
type Node interface {
	Execute(runtime.Closure, *runtime.Context) (runtime.Value, error)
}

type NumberLiteral struct{ Val int64 }

func (n NumberLiteral) Execute(runtime.Closure, *runtime.Context) (runtime.Value, error) {
	return runtime.Number{Val: n.Val}, nil
}

type StringLiteral struct{ Val string }

func (s StringLiteral) Execute(runtime.Closure, *runtime.Context) (runtime.Value, error) {
	return runtime.String{Val: s.Val}, nil
}

type BoolLiteral struct{ Val bool }

func (b BoolLiteral) Execute(runtime.Closure, *runtime.Context) (runtime.Value, error) {
	return runtime.Bool{Val: b.Val}, nil
}

// NoneLiteral evaluates to the None handle, i.e. a nil runtime.Value.
type NoneLiteral struct{}

func (NoneLiteral) Execute(runtime.Closure, *runtime.Context) (runtime.Value, error) {
	return nil, nil
}
