package ast

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/runtime"
)

// arithOp names an arithmetic operator. Only Add delegates to a
// user-defined dunder (__add__) on an Instance left operand; per
// spec.md §4.3, "Others: Number only" - Sub/Mult/Div never consult an
// Instance's methods, matching the fixed dunder set (__init__/__str__/
// __eq__/__lt__/__add__) and the original's arithmetic only ever
// delegating __add__.
type arithOp struct {
	symbol string
	dunder string // empty for Number-only operators
}

var (
	addOp = arithOp{"+", "__add__"}
	subOp = arithOp{"-", ""}
	mulOp = arithOp{"*", ""}
	divOp = arithOp{"/", ""}
)

func evalArith(op arithOp, lhs, rhs Node, c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	l, err := lhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	r, err := rhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	switch a := l.(type) {
	case runtime.Number:
		b, ok := r.(runtime.Number)
		if !ok {
			return nil, typeErr(op.symbol, l, r)
		}
		switch op.symbol {
		case "+":
			return runtime.Number{Val: a.Val + b.Val}, nil
		case "-":
			return runtime.Number{Val: a.Val - b.Val}, nil
		case "*":
			return runtime.Number{Val: a.Val * b.Val}, nil
		case "/":
			if b.Val == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return runtime.Number{Val: a.Val / b.Val}, nil
		}
	case runtime.String:
		b, ok := r.(runtime.String)
		if !ok || op.symbol != "+" {
			return nil, typeErr(op.symbol, l, r)
		}
		return runtime.String{Val: a.Val + b.Val}, nil
	case *runtime.Instance:
		if op.dunder == "" {
			return nil, typeErr(op.symbol, l, r)
		}
		if !a.HasMethod(op.dunder, 1) {
			return nil, fmt.Errorf("%s has no %s method, cannot apply %s", a.Class.Name, op.dunder, op.symbol)
		}
		return a.CallMethod(op.dunder, []runtime.Value{r}, ctx)
	}
	return nil, typeErr(op.symbol, l, r)
}

func typeErr(op string, l, r runtime.Value) error {
	return fmt.Errorf("cannot apply %s to %T and %T", op, l, r)
}

type Add struct{ Lhs, Rhs Node }

func (n Add) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	return evalArith(addOp, n.Lhs, n.Rhs, c, ctx)
}

type Sub struct{ Lhs, Rhs Node }

func (n Sub) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	return evalArith(subOp, n.Lhs, n.Rhs, c, ctx)
}

type Mult struct{ Lhs, Rhs Node }

func (n Mult) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	return evalArith(mulOp, n.Lhs, n.Rhs, c, ctx)
}

type Div struct{ Lhs, Rhs Node }

func (n Div) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	return evalArith(divOp, n.Lhs, n.Rhs, c, ctx)
}
